package auth

import (
	"encoding/json"
	"net/http"
)

// LogoutController maneja el logout. Los tokens son stateless y no hay
// revocación server-side, así que esto es un acuse de recibo: el cliente
// descarta el token por su cuenta.
type LogoutController struct{}

// NewLogoutController crea un nuevo controller de logout.
func NewLogoutController() *LogoutController {
	return &LogoutController{}
}

// Logout maneja POST /v1/auth/logout
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    map[string]string{"message": "sesión cerrada"},
	})
}
