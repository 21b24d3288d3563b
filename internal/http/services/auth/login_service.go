package auth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/taskforge/internal/domain"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/auth"
	"github.com/dropDatabas3/taskforge/internal/metrics"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/security/password"
	"github.com/dropDatabas3/taskforge/internal/tenantdir"
	"github.com/dropDatabas3/taskforge/internal/token"
)

// LoginDeps contiene las dependencias del login service.
type LoginDeps struct {
	Accounts  AccountFinder
	Directory *tenantdir.Directory
	Issuer    *token.Issuer
}

// AccountFinder es el recorte de AccountStore que necesita el resolver.
type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) ([]domain.Account, error)
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea el servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

// Login implementa la resolución de cuentas y autenticación.
//
// El mismo email puede existir en varios tenants (más, opcionalmente, una
// cuenta privilegiada sin tenant), así que primero se desambigua el conjunto
// de candidatas y recién después se verifica el password. El orden importa:
// ErrTenantRequired se devuelve ANTES de tocar ningún password, y todo otro
// fallo de selección colapsa en ErrInvalidCredentials para no revelar qué
// cuentas existen.
func (s *loginService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginData, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.login"),
	)

	// Sin normalizar: el match de email es byte-exacto.
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	// Paso 1: resolver el hint de tenant, si vino
	var target *domain.Tenant
	switch {
	case req.TenantSubdomain != "":
		t, err := s.deps.Directory.ResolveActive(ctx, req.TenantSubdomain)
		if err != nil {
			return nil, mapDirectoryErr(err)
		}
		target = t
	case req.TenantID != "":
		t, err := s.deps.Directory.ByID(ctx, req.TenantID)
		if err != nil {
			return nil, mapDirectoryErr(err)
		}
		if !t.IsActive() {
			metrics.LoginAttempts.WithLabelValues("tenant_inactive").Inc()
			return nil, ErrTenantInactive
		}
		target = t
	}

	// Paso 2: conjunto S de cuentas con ese email, a través de todos los tenants
	candidates, err := s.deps.Accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Error("account lookup failed", logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	// Paso 3: sin candidatas no distinguimos "no existe" de "password malo"
	if len(candidates) == 0 {
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	// Pasos 4/5: desambiguar
	account, err := selectAccount(candidates, target)
	if err != nil {
		switch {
		case errors.Is(err, ErrTenantRequired):
			metrics.LoginAttempts.WithLabelValues("tenant_required").Inc()
		default:
			metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		}
		return nil, err
	}

	log = log.With(logger.AccountID(account.ID))

	// Paso 6: recién ahora el password
	ok, err := password.Verify(req.Password, account.PasswordHash)
	if err != nil {
		// Hash ilegible en el store: se loguea con contexto completo pero el
		// caller ve credenciales inválidas, nunca el detalle.
		log.Error("stored password hash unreadable", logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, ErrInvalidCredentials
	}
	if !ok {
		log.Debug("password mismatch")
		metrics.LoginAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	// Paso 7: cuenta desactivada
	if !account.IsActive {
		log.Info("account disabled")
		metrics.LoginAttempts.WithLabelValues("disabled").Inc()
		return nil, ErrAccountDisabled
	}

	// Paso 8: emitir el capability token. El token preserva el tenant de la
	// CUENTA: una super_admin que entra "por" un tenant sigue sin tenant.
	signed, _, err := s.deps.Issuer.Issue(account.ID, account.TenantID, account.Role)
	if err != nil {
		log.Error("token issue failed", logger.Err(err))
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, ErrTokenIssueFailed
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	metrics.TokensIssued.Inc()
	log.Info("login ok")

	return &dto.LoginData{
		User:      AccountInfoOf(account),
		Token:     signed,
		ExpiresIn: int64(s.deps.Issuer.AccessTTL.Seconds()),
	}, nil
}

// selectAccount aplica las reglas de desambiguación sobre el conjunto de
// candidatas. No verifica passwords.
func selectAccount(candidates []domain.Account, target *domain.Tenant) (*domain.Account, error) {
	if target != nil {
		// 4a. match exacto de tenant
		for i := range candidates {
			if c := &candidates[i]; c.TenantID != nil && *c.TenantID == target.ID {
				return c, nil
			}
		}
		// 4b. la cuenta privilegiada sin tenant puede entrar a cualquier
		// tenant activo
		for i := range candidates {
			if c := &candidates[i]; c.TenantID == nil && c.Role == domain.RoleSuperAdmin {
				return c, nil
			}
		}
		// 4c. una cuenta de OTRO tenant nunca se considera
		return nil, ErrInvalidCredentials
	}

	// 5a. sin hint: primero la privilegiada
	for i := range candidates {
		if c := &candidates[i]; c.Role == domain.RoleSuperAdmin {
			return c, nil
		}
	}
	// 5b. única candidata: el tenant se infiere solo
	if len(candidates) == 1 {
		return &candidates[0], nil
	}
	// 5c. ambiguo: pedir hint sin chequear ningún password
	return nil, ErrTenantRequired
}

func mapDirectoryErr(err error) error {
	switch {
	case errors.Is(err, tenantdir.ErrNotFound):
		metrics.LoginAttempts.WithLabelValues("tenant_not_found").Inc()
		return ErrTenantNotFound
	case errors.Is(err, tenantdir.ErrInactive):
		metrics.LoginAttempts.WithLabelValues("tenant_inactive").Inc()
		return ErrTenantInactive
	default:
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return err
	}
}
