// Package tenants contiene el service de administración de tenants.
package tenants

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/tenants"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/tenantdir"
	"github.com/dropDatabas3/taskforge/internal/validation"
)

var (
	// ErrRestrictedFields: una cuenta no privilegiada intentó tocar status,
	// plan o límites.
	ErrRestrictedFields = errors.New("tenants: restricted fields require cross-tenant role")
	ErrMissingFields    = errors.New("tenants: missing required fields")
)

// Service expone las operaciones sobre tenants.
type Service interface {
	Get(ctx context.Context, id domain.Identity, tenantID string) (*dto.DetailData, error)
	Update(ctx context.Context, id domain.Identity, tenantID string, req dto.UpdateRequest) (*domain.Tenant, error)
	List(ctx context.Context, id domain.Identity, f store.TenantFilter) (*dto.ListData, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Tenants   store.TenantStore
	Directory *tenantdir.Directory
	Audit     audit.Recorder
}

type service struct {
	deps Deps
}

// New crea el service de tenants.
func New(deps Deps) Service {
	return &service{deps: deps}
}

// Get devuelve el detalle de un tenant con sus contadores de uso. Sólo para
// miembros del tenant o la cuenta cross-tenant.
func (s *service) Get(ctx context.Context, id domain.Identity, tenantID string) (*dto.DetailData, error) {
	if !authz.CanManageTenant(id, tenantID) {
		return nil, authz.ErrForbidden
	}

	t, err := s.deps.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stats, err := s.deps.Tenants.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &dto.DetailData{Tenant: *t, Stats: *stats}, nil
}

// Update aplica un patch parcial sobre un tenant. El nombre lo puede cambiar
// el tenant_admin del propio tenant; status, plan y límites sólo la cuenta
// cross-tenant. Invalida el cache del directorio para que una suspensión se
// haga efectiva de inmediato.
func (s *service) Update(ctx context.Context, id domain.Identity, tenantID string, req dto.UpdateRequest) (*domain.Tenant, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("tenants"),
		logger.TenantID(tenantID),
	)

	if !authz.CanManageTenant(id, tenantID) || !id.IsAdmin() {
		return nil, authz.ErrForbidden
	}
	if !id.CrossTenant && req.HasRestricted() {
		return nil, ErrRestrictedFields
	}
	if req.Name != nil && !validation.NonEmpty(*req.Name) {
		return nil, ErrMissingFields
	}

	t, err := s.deps.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if id.CrossTenant {
		if req.Status != nil {
			t.Status = *req.Status
		}
		if req.SubscriptionPlan != nil {
			t.SubscriptionPlan = *req.SubscriptionPlan
		}
		if req.MaxUsers != nil {
			t.MaxUsers = *req.MaxUsers
		}
		if req.MaxProjects != nil {
			t.MaxProjects = *req.MaxProjects
		}
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.deps.Tenants.Update(ctx, t); err != nil {
		return nil, err
	}

	// El status viejo no debe sobrevivir en el cache.
	s.deps.Directory.Invalidate(t)

	log.Info("tenant updated")
	s.deps.Audit.Record(ctx, &t.ID, id.AccountID, audit.ActionUpdateTenant, "tenant", t.ID)
	return t, nil
}

// List devuelve todos los tenants. Operación exclusiva de la cuenta
// cross-tenant.
func (s *service) List(ctx context.Context, id domain.Identity, f store.TenantFilter) (*dto.ListData, error) {
	if !id.CrossTenant {
		return nil, authz.ErrForbidden
	}

	items, total, err := s.deps.Tenants.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListData{
		Tenants:    items,
		Total:      total,
		Pagination: pagination.Of(f.Page, f.Limit, total),
	}, nil
}
