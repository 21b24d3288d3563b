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

// LoginController maneja el endpoint de login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea un nuevo controller de login.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login maneja POST /v1/auth/login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	// Limitar body
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		log.Debug("login failed", logger.Err(err))
		writeLoginError(w, err)
		return
	}

	// El token es una credencial: nunca cachear la respuesta.
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.LoginResponse{
		Success: true,
		Data:    *result,
	})
}

// ─── Helpers ───

func writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email y password son obligatorios"))

	case errors.Is(err, svc.ErrTenantRequired):
		httperrors.WriteError(w, httperrors.ErrTenantRequired)

	case errors.Is(err, svc.ErrTenantNotFound):
		httperrors.WriteError(w, httperrors.ErrTenantNotFound)

	case errors.Is(err, svc.ErrTenantInactive):
		httperrors.WriteError(w, httperrors.ErrTenantInactive)

	case errors.Is(err, svc.ErrInvalidCredentials):
		httperrors.WriteError(w, httperrors.ErrInvalidCredentials)

	case errors.Is(err, svc.ErrAccountDisabled):
		httperrors.WriteError(w, httperrors.ErrAccountDisabled)

	case errors.Is(err, svc.ErrTokenIssueFailed):
		httperrors.WriteError(w, httperrors.ErrInternal.WithDetail("error al emitir el token"))

	default:
		httperrors.WriteError(w, httperrors.ErrInternal)
	}
}
