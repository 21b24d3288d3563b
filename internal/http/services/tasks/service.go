// Package tasks contiene el service de tareas.
package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/tasks"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/validation"
)

var (
	ErrMissingFields = errors.New("tasks: missing required fields")
	ErrInvalidStatus = errors.New("tasks: invalid status")
	ErrInvalidPrio   = errors.New("tasks: invalid priority")
	// ErrCrossTenantAssignment: el asignado no pertenece al tenant de la
	// tarea. La tarea queda intacta.
	ErrCrossTenantAssignment = errors.New("tasks: assignee not in task tenant")
)

// Service expone las operaciones de tareas.
type Service interface {
	Create(ctx context.Context, id domain.Identity, projectID string, req dto.CreateRequest) (*dto.View, error)
	List(ctx context.Context, id domain.Identity, projectID string, f store.TaskFilter) (*dto.ListData, error)
	Update(ctx context.Context, id domain.Identity, taskID string, req dto.UpdateRequest) (*dto.View, error)
	UpdateStatus(ctx context.Context, id domain.Identity, taskID, status string) (*dto.StatusData, error)
	Delete(ctx context.Context, id domain.Identity, taskID string) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Tasks    store.TaskStore
	Projects store.ProjectStore
	Accounts store.AccountStore
	Audit    audit.Recorder
}

type service struct {
	deps Deps
}

// New crea el service de tareas.
func New(deps Deps) Service {
	return &service{deps: deps}
}

// Create crea una tarea dentro de un proyecto. El tenant de la tarea es el
// del proyecto, nunca un parámetro del cliente; el asignado, si viene, debe
// pertenecer a ese mismo tenant.
func (s *service) Create(ctx context.Context, id domain.Identity, projectID string, req dto.CreateRequest) (*dto.View, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("tasks"),
		logger.ProjectID(projectID),
	)

	p, err := s.deps.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckTenant(id, p.TenantID); err != nil {
		return nil, err
	}

	if !validation.NonEmpty(req.Title) {
		return nil, ErrMissingFields
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityMedium
	}
	if !domain.ValidTaskPriority(req.Priority) {
		return nil, ErrInvalidPrio
	}

	var assignee *domain.Account
	if req.AssignedTo != nil {
		assignee, err = s.requireSameTenant(ctx, *req.AssignedTo, p.TenantID)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	t := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   p.ID,
		TenantID:    p.TenantID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskTodo,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	if assignee != nil {
		t.AssigneeName = assignee.FullName
		t.AssigneeEmail = assignee.Email
	}

	log.Info("task created", logger.TaskID(t.ID))
	s.deps.Audit.Record(ctx, &t.TenantID, id.AccountID, audit.ActionCreateTask, "task", t.ID)

	v := dto.ViewOf(t)
	return &v, nil
}

// List devuelve las tareas de un proyecto con filtros y paginación.
func (s *service) List(ctx context.Context, id domain.Identity, projectID string, f store.TaskFilter) (*dto.ListData, error) {
	p, err := s.deps.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckTenant(id, p.TenantID); err != nil {
		return nil, err
	}

	items, total, err := s.deps.Tasks.ListByProject(ctx, projectID, f)
	if err != nil {
		return nil, err
	}

	views := make([]dto.View, 0, len(items))
	for i := range items {
		views = append(views, dto.ViewOf(&items[i]))
	}
	return &dto.ListData{
		Tasks:      views,
		Total:      total,
		Pagination: pagination.Of(f.Page, f.Limit, total),
	}, nil
}

// Update aplica un patch sobre una tarea. Si el patch reasigna, el nuevo
// asignado debe pertenecer al tenant de la tarea; si la validación falla la
// tarea no cambia en nada.
func (s *service) Update(ctx context.Context, id domain.Identity, taskID string, req dto.UpdateRequest) (*dto.View, error) {
	t, err := s.deps.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckTenant(id, t.TenantID); err != nil {
		return nil, err
	}

	if req.Title != nil && !validation.NonEmpty(*req.Title) {
		return nil, ErrMissingFields
	}
	if req.Status != nil && !domain.ValidTaskStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}
	if req.Priority != nil && !domain.ValidTaskPriority(*req.Priority) {
		return nil, ErrInvalidPrio
	}

	// Validar la reasignación ANTES de mutar nada.
	var assignee *domain.Account
	if req.AssignedTo.Set && req.AssignedTo.Value != nil {
		assignee, err = s.requireSameTenant(ctx, *req.AssignedTo.Value, t.TenantID)
		if err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.AssignedTo.Set {
		t.AssignedTo = req.AssignedTo.Value
	}
	if req.DueDate.Set {
		t.DueDate = req.DueDate.Value
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.deps.Tasks.Update(ctx, t); err != nil {
		return nil, err
	}

	if t.AssignedTo != nil {
		if assignee == nil {
			// Asignado previo sin tocar: recargar para la vista.
			assignee, err = s.deps.Accounts.GetByID(ctx, *t.AssignedTo)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
		}
		if assignee != nil {
			t.AssigneeName = assignee.FullName
			t.AssigneeEmail = assignee.Email
		}
	}

	s.deps.Audit.Record(ctx, &t.TenantID, id.AccountID, audit.ActionUpdateTask, "task", t.ID)

	v := dto.ViewOf(t)
	return &v, nil
}

// UpdateStatus cambia sólo el status de una tarea. Es idempotente: aplicar el
// status que la tarea ya tiene es un éxito sin efecto.
func (s *service) UpdateStatus(ctx context.Context, id domain.Identity, taskID, status string) (*dto.StatusData, error) {
	if !domain.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}

	t, err := s.deps.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckTenant(id, t.TenantID); err != nil {
		return nil, err
	}

	updated, err := s.deps.Tasks.UpdateStatus(ctx, taskID, status)
	if err != nil {
		return nil, err
	}
	return &dto.StatusData{ID: updated.ID, Status: updated.Status, UpdatedAt: updated.UpdatedAt}, nil
}

// Delete borra una tarea.
func (s *service) Delete(ctx context.Context, id domain.Identity, taskID string) error {
	t, err := s.deps.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := authz.CheckTenant(id, t.TenantID); err != nil {
		return err
	}

	if err := s.deps.Tasks.Delete(ctx, taskID); err != nil {
		return err
	}

	logger.From(ctx).Info("task deleted",
		logger.Layer("service"),
		logger.Component("tasks"),
		logger.TaskID(taskID),
	)
	s.deps.Audit.Record(ctx, &t.TenantID, id.AccountID, audit.ActionDeleteTask, "task", taskID)
	return nil
}

// requireSameTenant resuelve el asignado y exige que pertenezca al tenant
// dado. Cuenta inexistente o de otro tenant: mismo error, no se revela cuál.
func (s *service) requireSameTenant(ctx context.Context, accountID, tenantID string) (*domain.Account, error) {
	a, err := s.deps.Accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCrossTenantAssignment
		}
		return nil, err
	}
	if a.TenantID == nil || *a.TenantID != tenantID {
		return nil, ErrCrossTenantAssignment
	}
	return a, nil
}
