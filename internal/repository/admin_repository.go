package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdeck/quizdeck-backend/internal/model"
)

// AdminRepository handles admin_users data access.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

const adminColumns = `id, username, pin, ai_limit, created_at, updated_at`

func scanAdmin(row pgx.Row) (*model.AdminUser, error) {
	a := &model.AdminUser{}
	err := row.Scan(&a.ID, &a.Username, &a.PIN, &a.AILimit, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// GetByPIN retrieves an admin by their unique PIN (exact match).
func (r *AdminRepository) GetByPIN(ctx context.Context, pin string) (*model.AdminUser, error) {
	return scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE pin = $1`, pin))
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, id int) (*model.AdminUser, error) {
	return scanAdmin(r.pool.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = $1`, id))
}

// List retrieves all admins, newest first.
func (r *AdminRepository) List(ctx context.Context) ([]model.AdminUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+adminColumns+` FROM admin_users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []model.AdminUser{}
	for rows.Next() {
		var a model.AdminUser
		if err := rows.Scan(&a.ID, &a.Username, &a.PIN, &a.AILimit, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// Count returns the total number of admins.
func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n)
	return n, err
}

// Create inserts a new admin. Duplicate username/PIN surfaces as
// ErrUsernameTaken / ErrPINTaken via the unique indexes.
func (r *AdminRepository) Create(ctx context.Context, a *model.AdminUser) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_users (username, pin, ai_limit)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		a.Username, a.PIN, a.AILimit,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// Update applies a partial update. Only fields present in req are written;
// a request carrying none of them is invalid and must be rejected by the
// caller before reaching here.
func (r *AdminRepository) Update(ctx context.Context, id int, req *model.UpdateAdminRequest) (*model.AdminUser, error) {
	sets := []string{}
	args := []interface{}{}
	n := 1

	if req.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", n))
		args = append(args, *req.Username)
		n++
	}
	if req.PIN != nil {
		sets = append(sets, fmt.Sprintf("pin = $%d", n))
		args = append(args, *req.PIN)
		n++
	}
	if req.AILimit != nil {
		sets = append(sets, fmt.Sprintf("ai_limit = $%d", n))
		args = append(args, *req.AILimit)
		n++
	}
	if len(sets) == 0 {
		return nil, errors.New("no updates provided")
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE admin_users SET %s WHERE id = $%d RETURNING `+adminColumns,
		strings.Join(sets, ", "), n)

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return admin, nil
}

// Delete removes an admin by ID.
func (r *AdminRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
