// Package audit emite el audit trail de mutaciones exitosas.
//
// El sink es best-effort: una falla al escribir el registro se loguea en warn
// y jamás revierte ni falla la operación principal.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Acciones registradas (mismas keys que el resto del sistema).
const (
	ActionRegisterTenant = "REGISTER_TENANT"
	ActionUpdateTenant   = "UPDATE_TENANT"
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionCreateProject  = "CREATE_PROJECT"
	ActionUpdateProject  = "UPDATE_PROJECT"
	ActionDeleteProject  = "DELETE_PROJECT"
	ActionCreateTask     = "CREATE_TASK"
	ActionUpdateTask     = "UPDATE_TASK"
	ActionDeleteTask     = "DELETE_TASK"
)

// Recorder registra eventos de auditoría.
type Recorder interface {
	Record(ctx context.Context, tenantID *string, accountID, action, entityType, entityID string)
}

// storeRecorder escribe en el AuditStore.
type storeRecorder struct {
	audit store.AuditStore
}

func NewRecorder(audit store.AuditStore) Recorder {
	return &storeRecorder{audit: audit}
}

func (r *storeRecorder) Record(ctx context.Context, tenantID *string, accountID, action, entityType, entityID string) {
	e := &domain.AuditEntry{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		AccountID:  accountID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.audit.Insert(ctx, e); err != nil {
		logger.From(ctx).Warn("audit write failed",
			logger.Action(action),
			logger.Err(err),
		)
	}
}

// Nop descarta todos los eventos. Para tests.
type Nop struct{}

func (Nop) Record(context.Context, *string, string, string, string, string) {}
