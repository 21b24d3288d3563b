package auth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// MeDeps contiene las dependencias del servicio de perfil.
type MeDeps struct {
	Accounts store.AccountStore
	Tenants  store.TenantStore
}

type meService struct {
	deps MeDeps
}

// NewMeService crea el servicio de perfil.
func NewMeService(deps MeDeps) MeService {
	return &meService{deps: deps}
}

// Me re-lee la cuenta del token y la devuelve junto a su tenant. El tenant es
// nil para la cuenta cross-tenant. Si la cuenta desapareció después de emitido
// el token, el error del store se propaga tal cual (el controller lo mapea).
func (s *meService) Me(ctx context.Context, id domain.Identity) (*MeData, error) {
	account, err := s.deps.Accounts.GetByID(ctx, id.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	out := &MeData{Account: account}
	if account.TenantID != nil {
		t, err := s.deps.Tenants.GetByID(ctx, *account.TenantID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		out.Tenant = t
	}
	return out, nil
}
