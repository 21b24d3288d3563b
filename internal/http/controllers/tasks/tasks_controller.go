// Package tasks contiene los controllers de tareas.
package tasks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/tasks"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/http/middlewares"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/tasks"
	"github.com/dropDatabas3/taskforge/internal/http/web"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Controller maneja los endpoints de tareas.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de tareas.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /v1/projects/{projectID}/tasks
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TasksController.Create"))

	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, web.MaxBodySize)
	defer r.Body.Close()

	var req dto.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	v, err := c.service.Create(ctx, id, chi.URLParam(r, "projectID"), req)
	if err != nil {
		log.Debug("create task failed", logger.Err(err))
		writeTaskError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, v)
}

// List maneja GET /v1/projects/{projectID}/tasks
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	f := store.TaskFilter{
		Status:     q.Get("status"),
		AssignedTo: q.Get("assignedTo"),
		Priority:   q.Get("priority"),
		Search:     q.Get("search"),
	}
	f.Page, f.Limit = pagination.Parse(q, 50, 200)

	data, err := c.service.List(ctx, id, chi.URLParam(r, "projectID"), f)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

// Update maneja PATCH /v1/tasks/{taskID}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TasksController.Update"))

	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, web.MaxBodySize)
	defer r.Body.Close()

	var req dto.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	v, err := c.service.Update(ctx, id, chi.URLParam(r, "taskID"), req)
	if err != nil {
		log.Debug("update task failed", logger.Err(err))
		writeTaskError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, v)
}

// UpdateStatus maneja PATCH /v1/tasks/{taskID}/status
func (c *Controller) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, web.MaxBodySize)
	defer r.Body.Close()

	var req dto.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	data, err := c.service.UpdateStatus(ctx, id, chi.URLParam(r, "taskID"), req.Status)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

// Delete maneja DELETE /v1/tasks/{taskID}
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Delete(ctx, id, chi.URLParam(r, "taskID")); err != nil {
		writeTaskError(w, err)
		return
	}
	web.WriteMessage(w, http.StatusOK, "tarea eliminada")
}

func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)

	// A diferencia de proyectos, acá el mismatch de tenant es un 403: llegar
	// hasta una tarea ya requirió pasar por su proyecto.
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrNoTenant):
		httperrors.WriteError(w, httperrors.ErrForbidden)

	case errors.Is(err, svc.ErrCrossTenantAssignment):
		httperrors.WriteError(w, httperrors.ErrCrossTenantAssignment)

	case errors.Is(err, svc.ErrInvalidStatus):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("status inválido"))

	case errors.Is(err, svc.ErrInvalidPrio):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("prioridad inválida"))

	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
