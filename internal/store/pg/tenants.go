package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

type tenantRepo struct{ pool *pgxpool.Pool }

const tenantCols = `id, name, subdomain, status, subscription_plan, max_users, max_projects, created_at, updated_at`

func scanTenant(row interface{ Scan(...any) error }) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Subdomain, &t.Status, &t.SubscriptionPlan, &t.MaxUsers, &t.MaxProjects, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenantCols+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (r *tenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenantCols+` FROM tenants WHERE subdomain = $1`, subdomain)
	return scanTenant(row)
}

func (r *tenantRepo) List(ctx context.Context, f store.TenantFilter) ([]domain.Tenant, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SubscriptionPlan != "" {
		args = append(args, f.SubscriptionPlan)
		where = append(where, fmt.Sprintf("subscription_plan = $%d", len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tenants`+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	limit, offset := pageArgs(f.Page, f.Limit)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT `+tenantCols+` FROM tenants%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

func (r *tenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tenants
		   SET name = $2, status = $3, subscription_plan = $4, max_users = $5, max_projects = $6, updated_at = $7
		 WHERE id = $1`,
		t.ID, t.Name, t.Status, t.SubscriptionPlan, t.MaxUsers, t.MaxProjects, t.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tenantRepo) Stats(ctx context.Context, id string) (*domain.TenantStats, error) {
	var st domain.TenantStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users    WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM projects WHERE tenant_id = $1),
			(SELECT COUNT(*) FROM tasks    WHERE tenant_id = $1)`,
		id,
	).Scan(&st.TotalUsers, &st.TotalProjects, &st.TotalTasks)
	if err != nil {
		return nil, mapErr(err)
	}
	return &st, nil
}

// pageArgs normaliza página/límite a LIMIT/OFFSET.
func pageArgs(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
