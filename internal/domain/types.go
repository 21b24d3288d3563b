// Package domain contiene los tipos centrales del tracker multi-tenant.
package domain

import "time"

// Roles de cuenta.
const (
	RoleUser        = "user"
	RoleTenantAdmin = "tenant_admin"
	RoleSuperAdmin  = "super_admin"
)

// Estados de tenant.
const (
	TenantActive    = "active"
	TenantSuspended = "suspended"
)

// Estados de tarea.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Prioridades de tarea.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Tenant es una organización aislada; unidad de partición de datos.
type Tenant struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Subdomain        string    `json:"subdomain"`
	Status           string    `json:"status"`
	SubscriptionPlan string    `json:"subscriptionPlan"`
	MaxUsers         int       `json:"maxUsers"`
	MaxProjects      int       `json:"maxProjects"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// IsActive indica si el tenant puede operar.
func (t *Tenant) IsActive() bool { return t.Status == TenantActive }

// TenantStats agrupa los contadores de uso de un tenant.
type TenantStats struct {
	TotalUsers    int `json:"totalUsers"`
	TotalProjects int `json:"totalProjects"`
	TotalTasks    int `json:"totalTasks"`
}

// Account es una identidad de login. TenantID es nil únicamente para el rol
// privilegiado cross-tenant (super_admin); para el resto, (email, tenant_id)
// es único dentro del tenant pero el mismo email puede existir en varios tenants.
type Account struct {
	ID           string    `json:"id"`
	TenantID     *string   `json:"tenantId"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Project pertenece exactamente a un tenant.
type Project struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Contadores derivados (sólo en lecturas con JOIN).
	TaskCount          int    `json:"taskCount,omitempty"`
	CompletedTaskCount int    `json:"completedTaskCount,omitempty"`
	CreatorName        string `json:"-"`
}

// Task pertenece al tenant de su proyecto. AssignedTo, si está presente,
// debe ser una cuenta del mismo tenant.
type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	TenantID    string     `json:"tenantId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedTo  *string    `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Datos del asignado (sólo en lecturas con JOIN).
	AssigneeName  string `json:"-"`
	AssigneeEmail string `json:"-"`
}

// AuditEntry es el registro best-effort que se emite tras cada mutación exitosa.
type AuditEntry struct {
	ID         string
	TenantID   *string
	AccountID  string
	Action     string
	EntityType string
	EntityID   string
	CreatedAt  time.Time
}

// ValidRole reporta si el rol es uno de los conocidos.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleTenantAdmin || r == RoleSuperAdmin
}

// ValidTaskStatus reporta si el estado de tarea es válido.
func ValidTaskStatus(s string) bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskCompleted
}

// ValidTaskPriority reporta si la prioridad es válida.
func ValidTaskPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
