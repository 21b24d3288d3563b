package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

type projectRepo struct{ pool *pgxpool.Pool }

// projectView trae el proyecto con creador y contadores de tareas en un solo
// round-trip.
const projectView = `
	SELECT p.id, p.tenant_id, p.name, p.description, p.status, p.created_by, p.created_at, p.updated_at,
	       COALESCE(u.full_name, ''),
	       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id),
	       (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id AND t.status = 'completed')
	  FROM projects p
	  LEFT JOIN users u ON p.created_by = u.id`

func scanProject(row interface{ Scan(...any) error }) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.CreatorName, &p.TaskCount, &p.CompletedTaskCount)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO projects (id, tenant_id, name, description, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.TenantID, p.Name, p.Description, p.Status, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	return mapErr(err)
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, projectView+` WHERE p.id = $1`, id)
	return scanProject(row)
}

func (r *projectRepo) List(ctx context.Context, f store.ProjectFilter) ([]domain.Project, int, error) {
	var (
		where []string
		args  []any
	)
	if f.TenantID != "" {
		args = append(args, f.TenantID)
		where = append(where, fmt.Sprintf("p.tenant_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects p`+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	limit, offset := pageArgs(f.Page, f.Limit)
	args = append(args, limit, offset)
	q := fmt.Sprintf(projectView+`%s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects
		   SET name = $2, description = $3, status = $4, updated_at = $5
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete borra el proyecto; las tareas caen por el ON DELETE CASCADE del
// esquema.
func (r *projectRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *projectRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE tenant_id = $1`, tenantID).Scan(&n)
	return n, mapErr(err)
}
