// Package authz implementa el guard de frontera de tenant.
//
// Toda operación sobre un recurso con dueño (proyecto, tarea, cuenta) pasa por
// acá después de autenticarse: se compara el tenant del recurso contra el del
// token y sólo la capability cross-tenant puede saltarse el match.
package authz

import (
	"errors"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/metrics"
)

var (
	// ErrForbidden: identidad autenticada pero sin acceso al tenant del recurso.
	ErrForbidden = errors.New("authz: forbidden")
	// ErrNoTenant: token sin tenant y sin capability cross-tenant. Una cuenta
	// no privilegiada siempre debe portar un tenant concreto.
	ErrNoTenant = errors.New("authz: identity has no tenant")
)

// CheckTenant decide si la identidad puede operar sobre un recurso que
// pertenece a resourceTenantID.
//
//   - match exacto: permitido
//   - mismatch + capability cross-tenant: permitido (override privilegiado)
//   - token sin tenant y no privilegiado: ErrNoTenant
//   - mismatch: ErrForbidden
func CheckTenant(id domain.Identity, resourceTenantID string) error {
	if id.CrossTenant {
		return nil
	}
	if id.TenantID == nil {
		metrics.AuthzDenials.WithLabelValues("no_tenant").Inc()
		return ErrNoTenant
	}
	if *id.TenantID != resourceTenantID {
		metrics.AuthzDenials.WithLabelValues("forbidden").Inc()
		return ErrForbidden
	}
	return nil
}

// RequireTenant devuelve el tenant efectivo para una operación que lo exige
// (crear proyectos, listar recursos propios). Falla con ErrNoTenant si la
// identidad no porta tenant; la cuenta cross-tenant no tiene tenant implícito
// y debe nombrar recursos explícitamente.
func RequireTenant(id domain.Identity) (string, error) {
	if id.TenantID == nil {
		metrics.AuthzDenials.WithLabelValues("no_tenant").Inc()
		return "", ErrNoTenant
	}
	return *id.TenantID, nil
}

// CanManageTenant decide si la identidad puede administrar el tenant dado
// (ver detalle, agregar usuarios): debe pertenecer a él o ser cross-tenant.
func CanManageTenant(id domain.Identity, tenantID string) bool {
	return id.CrossTenant || id.InTenant(tenantID)
}
