package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/http/middlewares"
	svc "github.com/dropDatabas3/taskforge/internal/http/services/auth"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// MeController devuelve la cuenta autenticada.
type MeController struct {
	service svc.MeService
}

// NewMeController crea un nuevo controller de perfil.
func NewMeController(service svc.MeService) *MeController {
	return &MeController{service: service}
}

// Me maneja GET /v1/auth/me
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := middlewares.IdentityFrom(ctx)
	if !ok {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}

	data, err := c.service.Me(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// El token sobrevivió a la cuenta.
			httperrors.WriteError(w, httperrors.ErrTokenInvalid)
		case errors.Is(err, svc.ErrAccountDisabled):
			httperrors.WriteError(w, httperrors.ErrAccountDisabled)
		default:
			httperrors.WriteError(w, httperrors.ErrInternal)
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
}
