// Package store define los contratos de persistencia del tracker.
//
// Los services dependen de estas interfaces chicas (no del agregador) para que
// la lógica de autorización sea testeable con fakes en memoria, sin motor de
// almacenamiento. El adapter de postgres vive en store/pg.
package store

import (
	"context"

	"github.com/dropDatabas3/taskforge/internal/domain"
)

// TenantFilter filtra el listado de tenants (sólo super_admin).
type TenantFilter struct {
	Status           string
	SubscriptionPlan string
	Page             int
	Limit            int
}

// AccountFilter filtra el listado de cuentas de un tenant.
type AccountFilter struct {
	Search string // match parcial sobre email o full_name
	Role   string
	Page   int
	Limit  int
}

// ProjectFilter filtra el listado de proyectos.
type ProjectFilter struct {
	TenantID string // vacío = todos (sólo cross-tenant)
	Status   string
	Search   string // match parcial sobre name
	Page     int
	Limit    int
}

// TaskFilter filtra el listado de tareas de un proyecto.
type TaskFilter struct {
	Status     string
	AssignedTo string
	Priority   string
	Search     string
	Page       int
	Limit      int
}

// TenantStore persiste tenants.
type TenantStore interface {
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
	List(ctx context.Context, f TenantFilter) ([]domain.Tenant, int, error)
	Update(ctx context.Context, t *domain.Tenant) error
	Stats(ctx context.Context, id string) (*domain.TenantStats, error)
}

// AccountStore persiste cuentas.
type AccountStore interface {
	// FindByEmail devuelve TODAS las cuentas con ese email exacto
	// (case-sensitive), a través de todos los tenants, incluida la cuenta
	// privilegiada sin tenant. Es el insumo del resolver de login.
	FindByEmail(ctx context.Context, email string) ([]domain.Account, error)

	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, tenantID string, f AccountFilter) ([]domain.Account, int, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	ExistsInTenant(ctx context.Context, tenantID, email string) (bool, error)
}

// ProjectStore persiste proyectos.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]domain.Project, int, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	CountByTenant(ctx context.Context, tenantID string) (int, error)
}

// TaskStore persiste tareas.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string, f TaskFilter) ([]domain.Task, int, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// UnassignAccount desasigna todas las tareas de una cuenta
	// (paso previo a borrarla).
	UnassignAccount(ctx context.Context, accountID string) error
}

// AuditStore persiste el audit trail. Best-effort: el caller nunca debe
// propagar su error.
type AuditStore interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
}

// Store agrega todos los repositorios más las operaciones transaccionales.
type Store interface {
	Ping(ctx context.Context) error
	Close()

	Tenants() TenantStore
	Accounts() AccountStore
	Projects() ProjectStore
	Tasks() TaskStore
	Audit() AuditStore

	// RegisterTenant crea tenant + cuenta admin en una sola transacción.
	RegisterTenant(ctx context.Context, t *domain.Tenant, admin *domain.Account) error
}
