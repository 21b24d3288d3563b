package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

type taskRepo struct{ pool *pgxpool.Pool }

const taskView = `
	SELECT t.id, t.project_id, t.tenant_id, t.title, t.description, t.status, t.priority,
	       t.assigned_to, t.due_date, t.created_at, t.updated_at,
	       COALESCE(u.full_name, ''), COALESCE(u.email, '')
	  FROM tasks t
	  LEFT JOIN users u ON t.assigned_to = u.id`

func scanTask(row interface{ Scan(...any) error }) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.TenantID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedTo, &t.DueDate, &t.CreatedAt, &t.UpdatedAt, &t.AssigneeName, &t.AssigneeEmail)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *taskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, project_id, tenant_id, title, description, status, priority, assigned_to, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.ProjectID, t.TenantID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	return mapErr(err)
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, taskView+` WHERE t.id = $1`, id)
	return scanTask(row)
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID string, f store.TaskFilter) ([]domain.Task, int, error) {
	where := []string{"t.project_id = $1"}
	args := []any{projectID}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if f.AssignedTo != "" {
		args = append(args, f.AssignedTo)
		where = append(where, fmt.Sprintf("t.assigned_to = $%d", len(args)))
	}
	if f.Priority != "" {
		args = append(args, f.Priority)
		where = append(where, fmt.Sprintf("t.priority = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks t`+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	limit, offset := pageArgs(f.Page, f.Limit)
	args = append(args, limit, offset)
	// priority es TEXT: el orden alfabético no sirve, se rankea explícito.
	q := fmt.Sprintf(taskView+`%s
		ORDER BY CASE t.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC,
		         t.due_date ASC NULLS LAST
		LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

func (r *taskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks
		   SET title = $2, description = $3, status = $4, priority = $5, assigned_to = $6, due_date = $7, updated_at = $8
		 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.AssignedTo, t.DueDate, t.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdateStatus aplica el status sin tocar el resto de la fila. Idempotente:
// repetir el mismo status es un UPDATE que no cambia nada más que updated_at.
func (r *taskRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET status = $2, updated_at = NOW()
		 WHERE id = $1
		RETURNING id, project_id, tenant_id, title, description, status, priority, assigned_to, due_date, created_at, updated_at`,
		id, status,
	)
	var t domain.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.TenantID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.AssignedTo, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &t, nil
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *taskRepo) UnassignAccount(ctx context.Context, accountID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE tasks SET assigned_to = NULL WHERE assigned_to = $1`, accountID)
	return mapErr(err)
}
