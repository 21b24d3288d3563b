// Package projects contiene los DTOs del dominio projects.
package projects

import (
	"time"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
)

// CreateRequest es el body de POST /v1/projects. Status vacío defaultea a
// "active".
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateRequest es el body de PATCH /v1/projects/{projectID}.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// CreatorRef identifica al creador en las vistas de lectura.
type CreatorRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

// View es la proyección de lectura de un proyecto, con contadores derivados.
type View struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenantId"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Status             string     `json:"status"`
	CreatedBy          CreatorRef `json:"createdBy"`
	CreatedAt          time.Time  `json:"createdAt"`
	TaskCount          int        `json:"taskCount"`
	CompletedTaskCount int        `json:"completedTaskCount"`
}

// ViewOf proyecta un domain.Project a su vista de lectura.
func ViewOf(p *domain.Project) View {
	return View{
		ID:                 p.ID,
		TenantID:           p.TenantID,
		Name:               p.Name,
		Description:        p.Description,
		Status:             p.Status,
		CreatedBy:          CreatorRef{ID: p.CreatedBy, FullName: p.CreatorName},
		CreatedAt:          p.CreatedAt,
		TaskCount:          p.TaskCount,
		CompletedTaskCount: p.CompletedTaskCount,
	}
}

// ListData es el payload de GET /v1/projects.
type ListData struct {
	Projects   []View                `json:"projects"`
	Total      int                   `json:"total"`
	Pagination pagination.Pagination `json:"pagination"`
}
