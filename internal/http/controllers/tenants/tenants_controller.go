// Package tenants contiene los controllers de administración de tenants.
package tenants

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/taskforge/internal/authz"
	"github.com/dropDatabas3/taskforge/internal/http/dto/pagination"
	dto "github.com/dropDatabas3/taskforge/internal/http/dto/tenants"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/http/middlewares"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/tenants"
	"github.com/dropDatabas3/taskforge/internal/http/web"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Controller maneja los endpoints de tenants.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de tenants.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Get maneja GET /v1/tenants/{tenantID}
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	data, err := c.service.Get(ctx, id, chi.URLParam(r, "tenantID"))
	if err != nil {
		writeTenantError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

// Update maneja PATCH /v1/tenants/{tenantID}
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TenantsController.Update"))

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

	t, err := c.service.Update(ctx, id, chi.URLParam(r, "tenantID"), req)
	if err != nil {
		log.Debug("tenant update failed", logger.Err(err))
		writeTenantError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, t)
}

// List maneja GET /v1/tenants
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	f := store.TenantFilter{
		Status:           q.Get("status"),
		SubscriptionPlan: q.Get("subscriptionPlan"),
	}
	f.Page, f.Limit = pagination.Parse(q, 10, 100)

	data, err := c.service.List(ctx, id, f)
	if err != nil {
		writeTenantError(w, err)
		return
	}
	web.WriteData(w, http.StatusOK, data)
}

func writeTenantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrTenantNotFound)

	case errors.Is(err, authz.ErrForbidden), errors.Is(err, authz.ErrNoTenant):
		httperrors.WriteError(w, httperrors.ErrForbidden)

	case errors.Is(err, svc.ErrRestrictedFields):
		httperrors.WriteError(w, httperrors.ErrForbidden.WithDetail("sólo la cuenta privilegiada puede modificar status, plan o límites"))

	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields)

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
