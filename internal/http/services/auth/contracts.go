// Package auth contiene los services de autenticación: resolución de cuentas,
// login, registro de tenants y perfil.
package auth

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/auth"
)

// Errores de login/registro. Los controllers los mapean a la taxonomía HTTP;
// los services nunca escriben respuestas.
var (
	ErrMissingFields = fmt.Errorf("missing required fields")

	// ErrInvalidCredentials cubre a propósito "el email no existe" y
	// "password incorrecto": política anti-enumeración.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// ErrTenantRequired: el email matchea cuentas en varios tenants y no vino
	// hint. Acá las credenciales NO se verificaron todavía.
	ErrTenantRequired = fmt.Errorf("tenant hint required")

	ErrTenantNotFound   = fmt.Errorf("tenant not found")
	ErrTenantInactive   = fmt.Errorf("tenant not active")
	ErrAccountDisabled  = fmt.Errorf("account disabled")
	ErrSubdomainTaken   = fmt.Errorf("subdomain already exists")
	ErrTokenIssueFailed = fmt.Errorf("failed to issue token")
)

// LoginService resuelve y autentica cuentas.
type LoginService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginData, error)
}

// RegisterService da de alta un tenant con su cuenta admin.
type RegisterService interface {
	RegisterTenant(ctx context.Context, req dto.RegisterTenantRequest) (*dto.RegisterTenantData, error)
}

// MeService arma la vista de la cuenta autenticada.
type MeService interface {
	Me(ctx context.Context, id domain.Identity) (*MeData, error)
}

// MeData es la cuenta autenticada más su tenant (nil para cross-tenant).
type MeData struct {
	Account *domain.Account `json:"account"`
	Tenant  *domain.Tenant  `json:"tenant"`
}

// AccountInfoOf proyecta una cuenta a su vista pública.
func AccountInfoOf(a *domain.Account) dto.AccountInfo {
	return dto.AccountInfo{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		Role:     a.Role,
		TenantID: a.TenantID,
	}
}
