package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/taskforge/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/auth"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
)

// RegisterController maneja el alta de tenants.
type RegisterController struct {
	service svc.RegisterService
}

// NewRegisterController crea un nuevo controller de registro.
func NewRegisterController(service svc.RegisterService) *RegisterController {
	return &RegisterController{service: service}
}

// Register maneja POST /v1/auth/register
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.RegisterTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.RegisterTenant(ctx, req)
	if err != nil {
		log.Debug("tenant registration failed", logger.Err(err))
		writeRegisterError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(dto.RegisterTenantResponse{
		Success: true,
		Message: "tenant registrado",
		Data:    *result,
	})
}

func writeRegisterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("tenantName, subdomain, adminEmail, adminPassword y adminFullName son obligatorios y deben ser válidos"))

	case errors.Is(err, svc.ErrSubdomainTaken):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail("el subdominio ya está en uso"))

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
