// Package tasks contiene los DTOs del dominio tasks.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
)

// NullableString distingue tres estados en un PATCH JSON: campo ausente,
// null explícito (desasignar) y valor presente.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// NullableTime es el equivalente para fechas.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// CreateRequest es el body de POST /v1/projects/{projectID}/tasks. Priority
// vacía defaultea a "medium"; el status inicial es siempre "todo".
type CreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *string    `json:"assignedTo"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateRequest es el body de PATCH /v1/tasks/{taskID}. assignedTo y dueDate
// aceptan null explícito para limpiar el campo.
type UpdateRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssignedTo  NullableString `json:"assignedTo"`
	DueDate     NullableTime   `json:"dueDate"`
}

// StatusRequest es el body de PATCH /v1/tasks/{taskID}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// AssigneeRef identifica al asignado en las vistas de lectura.
type AssigneeRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// View es la proyección de lectura de una tarea.
type View struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	TenantID    string       `json:"tenantId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	AssignedTo  *AssigneeRef `json:"assignedTo"`
	DueDate     *time.Time   `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ViewOf proyecta una tarea con su asignado (nil si no tiene).
func ViewOf(t *domain.Task) View {
	v := View{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		TenantID:    t.TenantID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		v.AssignedTo = &AssigneeRef{ID: *t.AssignedTo, FullName: t.AssigneeName, Email: t.AssigneeEmail}
	}
	return v
}

// ListData es el payload de GET /v1/projects/{projectID}/tasks.
type ListData struct {
	Tasks      []View                `json:"tasks"`
	Total      int                   `json:"total"`
	Pagination pagination.Pagination `json:"pagination"`
}

// StatusData es el payload de PATCH /v1/tasks/{taskID}/status.
type StatusData struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}
