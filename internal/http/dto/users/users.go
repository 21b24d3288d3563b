// Package users contiene los DTOs del dominio users.
package users

import (
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
)

// AddRequest es el body de POST /v1/tenants/{tenantID}/users. Role vacío
// defaultea a "user".
type AddRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// UpdateRequest es el body de PATCH /v1/users/{userID}. FullName lo puede
// tocar la propia cuenta; role e isActive sólo un admin.
type UpdateRequest struct {
	FullName *string `json:"fullName"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// HasAdminFields reporta si el request toca campos reservados a admins.
func (r UpdateRequest) HasAdminFields() bool {
	return r.Role != nil || r.IsActive != nil
}

// ListData es el payload de GET /v1/tenants/{tenantID}/users.
type ListData struct {
	Users      []domain.Account      `json:"users"`
	Total      int                   `json:"total"`
	Pagination pagination.Pagination `json:"pagination"`
}
