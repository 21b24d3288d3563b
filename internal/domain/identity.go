package domain

// Identity es la identidad ya autenticada que viaja en el contexto de cada
// request. Se deriva del capability token, nunca de parámetros del cliente.
//
// CrossTenant es la capability explícita del rol privilegiado: cuando es true
// la identidad puede actuar sobre cualquier tenant. Se calcula una sola vez al
// verificar el token para que guard y scoping no tengan que comparar strings
// de rol en cada chequeo.
type Identity struct {
	AccountID   string
	TenantID    *string // nil para la cuenta privilegiada sin tenant
	Role        string
	CrossTenant bool
}

// NewIdentity arma la identidad derivando la capability cross-tenant del rol.
func NewIdentity(accountID string, tenantID *string, role string) Identity {
	return Identity{
		AccountID:   accountID,
		TenantID:    tenantID,
		Role:        role,
		CrossTenant: role == RoleSuperAdmin,
	}
}

// IsAdmin reporta si la identidad tiene un rol administrativo
// (tenant_admin dentro de su tenant, o super_admin global).
func (i Identity) IsAdmin() bool {
	return i.Role == RoleTenantAdmin || i.Role == RoleSuperAdmin
}

// InTenant reporta si la identidad pertenece exactamente al tenant dado.
func (i Identity) InTenant(tenantID string) bool {
	return i.TenantID != nil && *i.TenantID == tenantID
}
