package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/taskforge/internal/audit"
	"github.com/dropDatabas3/taskforge/internal/config"
	authctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/auth"
	projectsctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/projects"
	tasksctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/tasks"
	tenantsctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/tenants"
	usersctrl "github.com/dropDatabas3/taskforge/internal/http/controllers/users"
	"github.com/dropDatabas3/taskforge/internal/http/router"
	authsvc "github.com/dropDatabas3/taskforge/internal/http/services/auth"
	projectssvc "github.com/dropDatabas3/taskforge/internal/http/services/projects"
	taskssvc "github.com/dropDatabas3/taskforge/internal/http/services/tasks"
	tenantssvc "github.com/dropDatabas3/taskforge/internal/http/services/tenants"
	userssvc "github.com/dropDatabas3/taskforge/internal/http/services/users"
	"github.com/dropDatabas3/taskforge/internal/metrics"
	"github.com/dropDatabas3/taskforge/internal/observability/logger"
	"github.com/dropDatabas3/taskforge/internal/rate"
	"github.com/dropDatabas3/taskforge/internal/store/pg"
	"github.com/dropDatabas3/taskforge/internal/tenantdir"
	"github.com/dropDatabas3/taskforge/internal/token"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to YAML config")
	flag.Parse()

	// .env primero: los overrides de config leen el entorno.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "taskforge",
	})
	defer logger.Sync()
	lg := logger.L()

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		lg.Warn("metrics register", logger.Err(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := pg.New(ctx, cfg.Storage.DSN, pg.Options{
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		MinConns:        cfg.Storage.Postgres.MinConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		lg.Fatal("postgres connect", logger.Err(err))
	}
	defer st.Close()

	directory := tenantdir.New(st.Tenants(), cfg.TenantTTL())
	issuer := token.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret), cfg.AccessTTL())
	recorder := audit.NewRecorder(st.Audit())

	// Rate limiter de login: redis si hay addr, memoria si no.
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		if cfg.Rate.Redis.Addr != "" {
			client := rdb.NewClient(&rdb.Options{Addr: cfg.Rate.Redis.Addr, DB: cfg.Rate.Redis.DB})
			limiter = rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, cfg.Rate.Login.Limit, cfg.LoginWindow())
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginWindow())
		}
	}

	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{
		Accounts:  st.Accounts(),
		Directory: directory,
		Issuer:    issuer,
	})
	registerSvc := authsvc.NewRegisterService(authsvc.RegisterDeps{Store: st, Audit: recorder})
	meSvc := authsvc.NewMeService(authsvc.MeDeps{Accounts: st.Accounts(), Tenants: st.Tenants()})

	tenantsSvc := tenantssvc.New(tenantssvc.Deps{Tenants: st.Tenants(), Directory: directory, Audit: recorder})
	usersSvc := userssvc.New(userssvc.Deps{Accounts: st.Accounts(), Tenants: st.Tenants(), Tasks: st.Tasks(), Audit: recorder})
	projectsSvc := projectssvc.New(projectssvc.Deps{Projects: st.Projects(), Directory: directory, Audit: recorder})
	tasksSvc := taskssvc.New(taskssvc.Deps{Tasks: st.Tasks(), Projects: st.Projects(), Accounts: st.Accounts(), Audit: recorder})

	handler := router.New(router.Deps{
		Auth:         authctrl.NewControllers(loginSvc, registerSvc, meSvc),
		Tenants:      tenantsctrl.NewController(tenantsSvc),
		Users:        usersctrl.NewController(usersSvc),
		Projects:     projectsctrl.NewController(projectsSvc),
		Tasks:        tasksctrl.NewController(tasksSvc),
		Issuer:       issuer,
		Store:        st,
		LoginLimiter: limiter,
		Metrics:      promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("http server listening", logger.Component("server"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("server exit", logger.Err(err))
		os.Exit(1)
	}
	lg.Info("shutdown complete")
}
