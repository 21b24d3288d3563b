// Package pg implementa los contratos de store sobre PostgreSQL con pgx.
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

// Options afina el pool.
type Options struct {
	MaxConns        int
	MinConns        int
	ConnMaxLifetime time.Duration
}

// Store agrupa los repositorios sobre un pool compartido.
type Store struct {
	pool     *pgxpool.Pool
	tenants  *tenantRepo
	accounts *accountRepo
	projects *projectRepo
	tasks    *taskRepo
	audit    *auditRepo
}

// New abre el pool y arma los repos. El ping es parte del arranque: si la
// base no responde acá, mejor fallar temprano.
func New(ctx context.Context, dsn string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		cfg.MinConns = int32(opts.MinConns)
	}
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		pool:     pool,
		tenants:  &tenantRepo{pool: pool},
		accounts: &accountRepo{pool: pool},
		projects: &projectRepo{pool: pool},
		tasks:    &taskRepo{pool: pool},
		audit:    &auditRepo{pool: pool},
	}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Close cierra el pool (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) Tenants() store.TenantStore   { return s.tenants }
func (s *Store) Accounts() store.AccountStore { return s.accounts }
func (s *Store) Projects() store.ProjectStore { return s.projects }
func (s *Store) Tasks() store.TaskStore       { return s.tasks }
func (s *Store) Audit() store.AuditStore      { return s.audit }

// RegisterTenant inserta tenant y cuenta admin en una transacción: o quedan
// los dos o ninguno.
func (s *Store) RegisterTenant(ctx context.Context, t *domain.Tenant, admin *domain.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO tenants (id, name, subdomain, status, subscription_plan, max_users, max_projects, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Subdomain, t.Status, t.SubscriptionPlan, t.MaxUsers, t.MaxProjects, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return mapErr(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		admin.ID, admin.TenantID, admin.Email, admin.PasswordHash, admin.FullName, admin.Role, admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
	); err != nil {
		return mapErr(err)
	}

	return tx.Commit(ctx)
}

// mapErr traduce errores de pgx a los sentinels del paquete store.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrDuplicate
	}
	return err
}
