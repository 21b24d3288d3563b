// Package projects contiene los controllers de proyectos.
package projects

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/projects"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/http/middlewares"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/projects"
	"github.com/dropDatabas3/taskforge/internal/http/web"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Controller maneja los endpoints de proyectos.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de proyectos.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Create maneja POST /v1/projects
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProjectsController.Create"))

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

	p, err := c.service.Create(ctx, id, req)
	if err != nil {
		log.Debug("create project failed", logger.Err(err))
		writeProjectError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, p)
}

// List maneja GET /v1/projects
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	f := store.ProjectFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	f.Page, f.Limit = pagination.Parse(q, 20, 100)

	data, err := c.service.List(ctx, id, f)
	if err != nil {
		writeProjectError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

// Get maneja GET /v1/projects/{projectID}
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	v, err := c.service.Get(ctx, id, chi.URLParam(r, "projectID"))
	if err != nil {
		writeProjectError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, v)
}

// Update maneja PATCH /v1/projects/{projectID}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ProjectsController.Update"))

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

	p, err := c.service.Update(ctx, id, chi.URLParam(r, "projectID"), req)
	if err != nil {
		log.Debug("update project failed", logger.Err(err))
		writeProjectError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, p)
}

// Delete maneja DELETE /v1/projects/{projectID}
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Delete(ctx, id, chi.URLParam(r, "projectID")); err != nil {
		writeProjectError(w, err)
		return
	}
	web.WriteMessage(w, http.StatusOK, "proyecto eliminado")
}

func writeProjectError(w http.ResponseWriter, err error) {
	switch {
	// El guard degrada el mismatch de tenant a NotFound antes de llegar acá:
	// un 404 acá puede ser "no existe" o "no es tuyo", a propósito.
	case errors.Is(err, store.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)

	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrNoTenant):
		httperrors.WriteError(w, httperrors.ErrForbidden)

	case errors.Is(err, svc.ErrLimitReached):
		httperrors.WriteError(w, httperrors.ErrLimitReached)

	case errors.Is(err, svc.ErrTenantInactive):
		httperrors.WriteError(w, httperrors.ErrTenantInactive)

	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
