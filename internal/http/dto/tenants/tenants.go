// Package tenants contiene los DTOs del dominio tenants.
package tenants

import (
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
)

// DetailData es el payload de GET /v1/tenants/{tenantID}: el tenant más sus
// contadores de uso.
type DetailData struct {
	domain.Tenant
	Stats domain.TenantStats `json:"stats"`
}

// UpdateRequest es el body de PATCH /v1/tenants/{tenantID}. Todos los campos
// son opcionales; status, subscriptionPlan y límites son campos restringidos.
type UpdateRequest struct {
	Name             *string `json:"name"`
	Status           *string `json:"status"`
	SubscriptionPlan *string `json:"subscriptionPlan"`
	MaxUsers         *int    `json:"maxUsers"`
	MaxProjects      *int    `json:"maxProjects"`
}

// HasRestricted reporta si el request toca campos que sólo la cuenta
// cross-tenant puede modificar.
func (r UpdateRequest) HasRestricted() bool {
	return r.Status != nil || r.SubscriptionPlan != nil || r.MaxUsers != nil || r.MaxProjects != nil
}

// ListData es el payload de GET /v1/tenants.
type ListData struct {
	Tenants    []domain.Tenant       `json:"tenants"`
	Total      int                   `json:"total"`
	Pagination pagination.Pagination `json:"pagination"`
}
