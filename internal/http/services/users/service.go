// Package users contiene el service de gestión de usuarios de un tenant.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/users"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/security/password"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/validation"
)

var (
	ErrMissingFields = errors.New("users: missing required fields")
	ErrInvalidRole   = errors.New("users: invalid role")
	// ErrEmailTaken: el email ya existe dentro del tenant. El mismo email en
	// OTRO tenant no es conflicto.
	ErrEmailTaken = errors.New("users: email already exists in tenant")
	// ErrLimitReached: el tenant llegó a maxUsers.
	ErrLimitReached = errors.New("users: subscription limit reached")
	// ErrSelfDelete: una cuenta no puede borrarse a sí misma.
	ErrSelfDelete = errors.New("users: cannot delete self")
)

// Service expone las operaciones de usuarios.
type Service interface {
	Add(ctx context.Context, id domain.Identity, tenantID string, req dto.AddRequest) (*domain.Account, error)
	List(ctx context.Context, id domain.Identity, tenantID string, f store.AccountFilter) (*dto.ListData, error)
	Update(ctx context.Context, id domain.Identity, userID string, req dto.UpdateRequest) (*domain.Account, error)
	Delete(ctx context.Context, id domain.Identity, userID string) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Accounts store.AccountStore
	Tenants  store.TenantStore
	Tasks    store.TaskStore
	Audit    audit.Recorder
}

type service struct {
	deps Deps
}

// New crea el service de usuarios.
func New(deps Deps) Service {
	return &service{deps: deps}
}

// Add da de alta una cuenta dentro del tenant. Sólo el tenant_admin del
// propio tenant puede hacerlo, y el alta respeta maxUsers.
//
// El chequeo de límite es check-then-insert sin transacción: dos altas
// concurrentes pueden pasar el conteo antes de que cualquiera inserte, así que
// el límite puede excederse por el grado de solapamiento. Carrera conocida.
func (s *service) Add(ctx context.Context, id domain.Identity, tenantID string, req dto.AddRequest) (*domain.Account, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("users"),
		logger.TenantID(tenantID),
	)

	// Paso 1: sólo el admin del propio tenant
	if id.Role != domain.RoleTenantAdmin || !id.InTenant(tenantID) {
		return nil, authz.ErrForbidden
	}

	// Paso 2: validar input
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	if !validation.ValidEmail(req.Email) || !validation.ValidPassword(req.Password) || !validation.NonEmpty(req.FullName) {
		return nil, ErrMissingFields
	}
	// Dentro de un tenant sólo existen roles tenant-scoped.
	if req.Role != domain.RoleUser && req.Role != domain.RoleTenantAdmin {
		return nil, ErrInvalidRole
	}

	// Paso 3: límite del plan
	tenant, err := s.deps.Tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	count, err := s.deps.Accounts.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if count >= tenant.MaxUsers {
		log.Info("user limit reached")
		return nil, ErrLimitReached
	}

	// Paso 4: unicidad de email dentro del tenant
	exists, err := s.deps.Accounts.ExistsInTenant(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(password.Default, req.Password)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		TenantID:     &tenant.ID,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.deps.Accounts.Create(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Perdimos la carrera del chequeo de unicidad.
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Info("user created", logger.AccountID(account.ID))
	s.deps.Audit.Record(ctx, &tenant.ID, id.AccountID, audit.ActionCreateUser, "user", account.ID)
	return account, nil
}

// List devuelve los usuarios del tenant. Cualquier miembro puede listar a sus
// pares; la cuenta cross-tenant puede listar cualquier tenant.
func (s *service) List(ctx context.Context, id domain.Identity, tenantID string, f store.AccountFilter) (*dto.ListData, error) {
	if !authz.CanManageTenant(id, tenantID) {
		return nil, authz.ErrForbidden
	}

	items, total, err := s.deps.Accounts.List(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	return &dto.ListData{
		Users:      items,
		Total:      total,
		Pagination: pagination.Of(f.Page, f.Limit, total),
	}, nil
}

// Update aplica un patch sobre una cuenta. Una cuenta puede cambiar su propio
// fullName; role e isActive requieren un rol administrativo.
func (s *service) Update(ctx context.Context, id domain.Identity, userID string, req dto.UpdateRequest) (*domain.Account, error) {
	target, err := s.deps.Accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Frontera de tenant primero.
	if !id.CrossTenant {
		if target.TenantID == nil || !id.InTenant(*target.TenantID) {
			return nil, authz.ErrForbidden
		}
	}

	isSelf := id.AccountID == userID
	if !id.IsAdmin() && !isSelf {
		return nil, authz.ErrForbidden
	}
	if req.HasAdminFields() && !id.IsAdmin() {
		return nil, authz.ErrForbidden
	}
	if req.Role != nil && !domain.ValidRole(*req.Role) {
		return nil, ErrInvalidRole
	}
	if req.FullName != nil && !validation.NonEmpty(*req.FullName) {
		return nil, ErrMissingFields
	}

	if req.FullName != nil {
		target.FullName = *req.FullName
	}
	if req.Role != nil {
		target.Role = *req.Role
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}
	target.UpdatedAt = time.Now().UTC()

	if err := s.deps.Accounts.Update(ctx, target); err != nil {
		return nil, err
	}

	s.deps.Audit.Record(ctx, target.TenantID, id.AccountID, audit.ActionUpdateUser, "user", target.ID)
	return target, nil
}

// Delete borra una cuenta. Nunca la propia; requiere tenant_admin del mismo
// tenant o la cuenta cross-tenant. Las tareas asignadas quedan sin asignar
// antes del borrado.
func (s *service) Delete(ctx context.Context, id domain.Identity, userID string) error {
	if id.AccountID == userID {
		return ErrSelfDelete
	}

	target, err := s.deps.Accounts.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !id.CrossTenant {
		if id.Role != domain.RoleTenantAdmin || target.TenantID == nil || !id.InTenant(*target.TenantID) {
			return authz.ErrForbidden
		}
	}

	if err := s.deps.Tasks.UnassignAccount(ctx, userID); err != nil {
		return err
	}
	if err := s.deps.Accounts.Delete(ctx, userID); err != nil {
		return err
	}

	logger.From(ctx).Info("user deleted",
		logger.Layer("service"),
		logger.Component("users"),
		logger.AccountID(userID),
	)
	s.deps.Audit.Record(ctx, target.TenantID, id.AccountID, audit.ActionDeleteUser, "user", userID)
	return nil
}
