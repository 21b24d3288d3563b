// Package router arma el árbol de rutas HTTP del servicio.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	authctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/auth"
	projectsctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/projects"
	tasksctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/tasks"
	tenantsctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/tenants"
	usersctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/users"
	mw "github.com/dropDatabas3/taskforge/internal/http/middlewares"
	"github.com/dropDatabas3/taskforge/internal/http/web"
	"github.com/dropDatabas3/taskforge/internal/rate"
	"github.com/dropDatabas3/taskforge/internal/store"
	"github.com/dropDatabas3/taskforge/internal/token"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Auth     *authctrl.Controllers
	Tenants  *tenantsctrl.Controller
	Users    *usersctrl.Controller
	Projects *projectsctrl.Controller
	Tasks    *tasksctrl.Controller

	Issuer *token.Issuer
	Store  store.Store

	// LoginLimiter limita intentos de login y registro por IP. Opcional.
	LoginLimiter rate.Limiter
	// Metrics es el handler de /metrics (promhttp). Opcional.
	Metrics http.Handler
}

// New construye el router con el stack de middlewares estándar: request-id,
// logging con scope, métricas por ruta y recover.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())
	r.Use(chimw.Recoverer)

	r.Get("/healthz", healthHandler(deps.Store))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		// Endpoints públicos, con rate limit por IP.
		r.Group(func(r chi.Router) {
			if deps.LoginLimiter != nil {
				r.Use(mw.WithRateLimit(deps.LoginLimiter, "auth"))
			}
			r.Post("/auth/register", deps.Auth.Register.Register)
			r.Post("/auth/login", deps.Auth.Login.Login)
		})

		// Endpoints autenticados.
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAuth(deps.Issuer))

			r.Get("/auth/me", deps.Auth.Me.Me)
			r.Post("/auth/logout", deps.Auth.Logout.Logout)

			r.Get("/tenants", deps.Tenants.List)
			r.Get("/tenants/{tenantID}", deps.Tenants.Get)
			r.Patch("/tenants/{tenantID}", deps.Tenants.Update)

			r.Post("/tenants/{tenantID}/users", deps.Users.Add)
			r.Get("/tenants/{tenantID}/users", deps.Users.List)
			r.Patch("/users/{userID}", deps.Users.Update)
			r.Delete("/users/{userID}", deps.Users.Delete)

			r.Post("/projects", deps.Projects.Create)
			r.Get("/projects", deps.Projects.List)
			r.Get("/projects/{projectID}", deps.Projects.Get)
			r.Patch("/projects/{projectID}", deps.Projects.Update)
			r.Delete("/projects/{projectID}", deps.Projects.Delete)

			r.Post("/projects/{projectID}/tasks", deps.Tasks.Create)
			r.Get("/projects/{projectID}/tasks", deps.Tasks.List)
			r.Patch("/tasks/{taskID}", deps.Tasks.Update)
			r.Patch("/tasks/{taskID}/status", deps.Tasks.UpdateStatus)
			r.Delete("/tasks/{taskID}", deps.Tasks.Delete)
		})
	})

	return r
}

// healthHandler reporta liveness del proceso y del store.
func healthHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if s != nil {
			if err := s.Ping(ctx); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		web.WriteData(w, code, map[string]string{"status": status})
	}
}
