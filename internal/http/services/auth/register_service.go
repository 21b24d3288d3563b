package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/auth"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/security/password"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/validation"
)

// Defaults del plan free al registrar un tenant.
const (
	defaultPlan        = "free"
	defaultMaxUsers    = 5
	defaultMaxProjects = 3
)

// RegisterDeps contiene las dependencias del registro de tenants.
type RegisterDeps struct {
	Store store.Store
	Audit audit.Recorder
}

type registerService struct {
	deps RegisterDeps
}

// NewRegisterService crea el servicio de registro.
func NewRegisterService(deps RegisterDeps) RegisterService {
	return &registerService{deps: deps}
}

// RegisterTenant da de alta un tenant nuevo junto con su cuenta tenant_admin,
// en una sola transacción: o quedan los dos o no queda ninguno.
func (s *registerService) RegisterTenant(ctx context.Context, req dto.RegisterTenantRequest) (*dto.RegisterTenantData, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.register"),
		logger.Subdomain(req.Subdomain),
	)

	if !validation.NonEmpty(req.TenantName) || req.Subdomain == "" ||
		req.AdminEmail == "" || req.AdminPassword == "" || !validation.NonEmpty(req.AdminFullName) {
		return nil, ErrMissingFields
	}
	if !validation.ValidSubdomain(req.Subdomain) {
		return nil, ErrMissingFields
	}
	if !validation.ValidEmail(req.AdminEmail) {
		return nil, ErrMissingFields
	}
	if !validation.ValidPassword(req.AdminPassword) {
		return nil, ErrMissingFields
	}

	hash, err := password.Hash(password.Default, req.AdminPassword)
	if err != nil {
		log.Error("password hash failed", logger.Err(err))
		return nil, err
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:               uuid.NewString(),
		Name:             req.TenantName,
		Subdomain:        req.Subdomain,
		Status:           domain.TenantActive,
		SubscriptionPlan: defaultPlan,
		MaxUsers:         defaultMaxUsers,
		MaxProjects:      defaultMaxProjects,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	admin := &domain.Account{
		ID:           uuid.NewString(),
		TenantID:     &tenant.ID,
		Email:        req.AdminEmail,
		PasswordHash: hash,
		FullName:     req.AdminFullName,
		Role:         domain.RoleTenantAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.deps.Store.RegisterTenant(ctx, tenant, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrSubdomainTaken
		}
		log.Error("tenant registration failed", logger.Err(err))
		return nil, err
	}

	log.Info("tenant registered", logger.TenantID(tenant.ID))
	s.deps.Audit.Record(ctx, &tenant.ID, admin.ID, audit.ActionRegisterTenant, "tenant", tenant.ID)

	return &dto.RegisterTenantData{
		TenantID:  tenant.ID,
		Subdomain: tenant.Subdomain,
		AdminUser: AccountInfoOf(admin),
	}, nil
}
