// Package users contiene los controllers de gestión de usuarios.
package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/users"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/http/middlewares"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/users"
	"github.com/dropDatabas3/taskforge/internal/http/web"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Controller maneja los endpoints de usuarios.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de usuarios.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Add maneja POST /v1/tenants/{tenantID}/users
func (c *Controller) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Add"))

	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, web.MaxBodySize)
	defer r.Body.Close()

	var req dto.AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	account, err := c.service.Add(ctx, id, chi.URLParam(r, "tenantID"), req)
	if err != nil {
		log.Debug("add user failed", logger.Err(err))
		writeUserError(w, err)
		return
	}
	web.WriteData(w, http.StatusCreated, account)
}

// List maneja GET /v1/tenants/{tenantID}/users
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	f := store.AccountFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
	}
	f.Page, f.Limit = pagination.Parse(q, 50, 200)

	data, err := c.service.List(ctx, id, chi.URLParam(r, "tenantID"), f)
	if err != nil {
		writeUserError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

// Update maneja PATCH /v1/users/{userID}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("UsersController.Update"))

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

	account, err := c.service.Update(ctx, id, chi.URLParam(r, "userID"), req)
	if err != nil {
		log.Debug("update user failed", logger.Err(err))
		writeUserError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, account)
}

// Delete maneja DELETE /v1/users/{userID}
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	if err := c.service.Delete(ctx, id, chi.URLParam(r, "userID")); err != nil {
		writeUserError(w, err)
		return
	}
	web.WriteMessage(w, http.StatusOK, "usuario eliminado")
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)

	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrNoTenant):
		httperrors.WriteError(w, httperrors.ErrForbidden)

	case errors.Is(err, svc.ErrSelfDelete):
		httperrors.WriteError(w, httperrors.ErrForbidden.WithDetail("no puede eliminar su propia cuenta"))

	case errors.Is(err, svc.ErrLimitReached):
		httperrors.WriteError(w, httperrors.ErrLimitReached)

	case errors.Is(err, svc.ErrEmailTaken):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("el email ya existe en este tenant"))

	case errors.Is(err, svc.ErrInvalidRole):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("rol inválido"))

	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
