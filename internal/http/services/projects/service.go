// Package projects contiene el service de proyectos.
package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/projects"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/tenantdir"
	"github.com/dropDatabas3/taskforge/internal/validation"
)

var (
	ErrMissingFields = errors.New("projects: missing required fields")
	// ErrLimitReached: el tenant llegó a maxProjects.
	ErrLimitReached = errors.New("projects: project limit reached")
	// ErrTenantInactive: el tenant del caller fue suspendido después de
	// emitido su token.
	ErrTenantInactive = errors.New("projects: tenant not active")
)

// Service expone las operaciones de proyectos.
type Service interface {
	Create(ctx context.Context, id domain.Identity, req dto.CreateRequest) (*domain.Project, error)
	List(ctx context.Context, id domain.Identity, f store.ProjectFilter) (*dto.ListData, error)
	Get(ctx context.Context, id domain.Identity, projectID string) (*dto.View, error)
	Update(ctx context.Context, id domain.Identity, projectID string, req dto.UpdateRequest) (*domain.Project, error)
	Delete(ctx context.Context, id domain.Identity, projectID string) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Projects  store.ProjectStore
	Directory *tenantdir.Directory
	Audit     audit.Recorder
}

type service struct {
	deps Deps
}

// New crea el service de proyectos.
func New(deps Deps) Service {
	return &service{deps: deps}
}

// Create crea un proyecto en el tenant del caller. Sólo roles administrativos
// pueden crear; la cuenta cross-tenant no tiene tenant implícito, así que no
// puede. El alta respeta maxProjects con el mismo check-then-insert (carrera
// conocida) que el alta de usuarios, y re-chequea que el tenant siga activo:
// un token emitido antes de una suspensión no habilita escrituras nuevas.
func (s *service) Create(ctx context.Context, id domain.Identity, req dto.CreateRequest) (*domain.Project, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("projects"),
	)

	tenantID, err := authz.RequireTenant(id)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, authz.ErrForbidden
	}

	tenant, err := s.deps.Directory.ByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantdir.ErrNotFound) {
			return nil, authz.ErrForbidden
		}
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, ErrTenantInactive
	}

	if !validation.NonEmpty(req.Name) {
		return nil, ErrMissingFields
	}
	if req.Status == "" {
		req.Status = "active"
	}

	count, err := s.deps.Projects.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if count >= tenant.MaxProjects {
		log.Info("project limit reached", logger.TenantID(tenantID))
		return nil, ErrLimitReached
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		CreatedBy:   id.AccountID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Projects.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("project created", logger.ProjectID(p.ID), logger.TenantID(tenantID))
	s.deps.Audit.Record(ctx, &p.TenantID, id.AccountID, audit.ActionCreateProject, "project", p.ID)
	return p, nil
}

// List devuelve los proyectos del tenant del caller; la cuenta cross-tenant ve
// todos los tenants (o filtra por uno con el filtro explícito).
func (s *service) List(ctx context.Context, id domain.Identity, f store.ProjectFilter) (*dto.ListData, error) {
	if !id.CrossTenant {
		tenantID, err := authz.RequireTenant(id)
		if err != nil {
			return nil, err
		}
		f.TenantID = tenantID
	}

	items, total, err := s.deps.Projects.List(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]dto.View, 0, len(items))
	for i := range items {
		views = append(views, dto.ViewOf(&items[i]))
	}
	return &dto.ListData{
		Projects:   views,
		Total:      total,
		Pagination: pagination.Of(f.Page, f.Limit, total),
	}, nil
}

// Get devuelve el detalle de un proyecto. Un mismatch de tenant se reporta
// como NotFound, nunca como Forbidden: confirmar que el proyecto existe ya
// filtra la frontera del tenant.
func (s *service) Get(ctx context.Context, id domain.Identity, projectID string) (*dto.View, error) {
	p, err := s.deps.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(id, p); err != nil {
		return nil, err
	}
	v := dto.ViewOf(p)
	return &v, nil
}

// Update aplica un patch sobre un proyecto. Además de la frontera de tenant,
// exige rol administrativo o ser el creador del proyecto.
func (s *service) Update(ctx context.Context, id domain.Identity, projectID string, req dto.UpdateRequest) (*domain.Project, error) {
	p, err := s.deps.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(id, p); err != nil {
		return nil, err
	}
	if !id.IsAdmin() && p.CreatedBy != id.AccountID {
		return nil, authz.ErrForbidden
	}
	if req.Name != nil && !validation.NonEmpty(*req.Name) {
		return nil, ErrMissingFields
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.deps.Projects.Update(ctx, p); err != nil {
		return nil, err
	}

	s.deps.Audit.Record(ctx, &p.TenantID, id.AccountID, audit.ActionUpdateProject, "project", p.ID)
	return p, nil
}

// Delete borra un proyecto y, por cascada del store, sus tareas. Mismas reglas
// de autorización que Update.
func (s *service) Delete(ctx context.Context, id domain.Identity, projectID string) error {
	p, err := s.deps.Projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if err := s.guard(id, p); err != nil {
		return err
	}
	if !id.IsAdmin() && p.CreatedBy != id.AccountID {
		return authz.ErrForbidden
	}

	if err := s.deps.Projects.Delete(ctx, projectID); err != nil {
		return err
	}

	logger.From(ctx).Info("project deleted",
		logger.Layer("service"),
		logger.Component("projects"),
		logger.ProjectID(projectID),
	)
	s.deps.Audit.Record(ctx, &p.TenantID, id.AccountID, audit.ActionDeleteProject, "project", projectID)
	return nil
}

// guard aplica la frontera de tenant ocultando existencia: el Forbidden del
// guard genérico se degrada a NotFound para que un caller de otro tenant no
// pueda distinguir "no existe" de "no es tuyo".
func (s *service) guard(id domain.Identity, p *domain.Project) error {
	err := authz.CheckTenant(id, p.TenantID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, authz.ErrForbidden):
		return store.ErrNotFound
	default:
		return err
	}
}
