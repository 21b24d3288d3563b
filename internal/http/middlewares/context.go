package middlewares

import (
	"context"

	"github.com/dropDatabas3/taskforge/internal/domain"
)

type ctxKeyRequestID struct{}
type ctxKeyIdentity struct{}

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, rid)
}

// GetRequestID devuelve el request id del contexto, o "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithIdentity inyecta la identidad autenticada en el contexto.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity{}, id)
}

// IdentityFrom extrae la identidad del contexto. ok=false si el request no
// pasó por RequireAuth.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity{}).(domain.Identity)
	return id, ok
}
