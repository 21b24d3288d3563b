package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/taskforge/internal/domain"
	httperrors "github.com/dropDatabas3/taskforge/internal/http/errors"
	"github.com/dropDatabas3/taskforge/internal/token"
)

// RequireAuth valida Authorization: Bearer <JWT> y deja la Identity resuelta
// en el contexto. Si el token falta, es inválido o expiró, responde 401.
//
// Este es el primer tramo del Access Guard: acá sólo se re-deriva la identidad
// del token; el match de tenant contra el recurso lo hacen los services con
// authz.CheckTenant.
func RequireAuth(issuer *token.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				httperrors.WriteError(w, httperrors.ErrTokenMissing)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				if errors.Is(err, token.ErrExpired) {
					httperrors.WriteError(w, httperrors.ErrTokenExpired)
				} else {
					httperrors.WriteError(w, httperrors.ErrTokenInvalid)
				}
				return
			}

			id := domain.NewIdentity(claims.AccountID, claims.TenantID, claims.Role)
			ctx := WithIdentity(r.Context(), id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
