package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/taskforge/internal/domain"
	"github.com/dropDatabas3/taskforge/internal/store"
)

type accountRepo struct{ pool *pgxpool.Pool }

const accountCols = `id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Email, &a.PasswordHash, &a.FullName, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// FindByEmail trae TODAS las cuentas con ese email exacto, incluida la
// privilegiada sin tenant. El match es case-sensitive a propósito: el
// resolver de login no normaliza.
func (r *accountRepo) FindByEmail(ctx context.Context, email string) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+accountCols+` FROM users WHERE email = $1 ORDER BY created_at ASC`, email)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountCols+` FROM users WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.TenantID, a.Email, a.PasswordHash, a.FullName, a.Role, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	return mapErr(err)
}

func (r *accountRepo) Update(ctx context.Context, a *domain.Account) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		   SET full_name = $2, role = $3, is_active = $4, updated_at = $5
		 WHERE id = $1`,
		a.ID, a.FullName, a.Role, a.IsActive, a.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountRepo) List(ctx context.Context, tenantID string, f store.AccountFilter) ([]domain.Account, int, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(email ILIKE $%d OR full_name ILIKE $%d)", len(args), len(args)))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapErr(err)
	}

	limit, offset := pageArgs(f.Page, f.Limit)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT `+accountCols+` FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, mapErr(err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *a)
	}
	return out, total, rows.Err()
}

func (r *accountRepo) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&n)
	return n, mapErr(err)
}

func (r *accountRepo) ExistsInTenant(ctx context.Context, tenantID, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND email = $2)`,
		tenantID, email,
	).Scan(&exists)
	return exists, mapErr(err)
}
