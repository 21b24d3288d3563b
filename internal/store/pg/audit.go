package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
)

type auditRepo struct{ pool *pgxpool.Pool }

func (r *auditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, tenant_id, user_id, action, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.TenantID, e.AccountID, e.Action, e.EntityType, e.EntityID, e.CreatedAt,
	)
	return mapErr(err)
}
