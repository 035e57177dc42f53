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

// UserRepository handles users data access. Usernames are stored
// lowercased so the unique index enforces case-insensitive uniqueness.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, password_hash, pin, email, role, unlimited_ai, daily_ai_limit, created_by, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PIN, &u.Email, &u.Role,
		&u.UnlimitedAI, &u.DailyAILimit, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByUsername retrieves a user by username, case-insensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		strings.ToLower(username)))
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PIN, &u.Email, &u.Role,
			&u.UnlimitedAI, &u.DailyAILimit, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new user. The username is lowercased before insert.
// Duplicate username/PIN surfaces as ErrUsernameTaken / ErrPINTaken.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.ToLower(u.Username)
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, pin, email, role, unlimited_ai, daily_ai_limit, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.PasswordHash, u.PIN, u.Email, u.Role, u.UnlimitedAI, u.DailyAILimit, u.CreatedBy,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// UserUpdate carries the resolved column values for a partial update.
// Password hashing and the unlimited-AI sentinel are applied by the
// service before it reaches here.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	PIN          *string
	Email        *string
	UnlimitedAI  *bool
	DailyAILimit *int
}

// Update applies a partial update; only non-nil fields are written.
func (r *UserRepository) Update(ctx context.Context, id int, upd *UserUpdate) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	n := 1

	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
		n++
	}

	if upd.Username != nil {
		add("username", strings.ToLower(*upd.Username))
	}
	if upd.PasswordHash != nil {
		add("password_hash", *upd.PasswordHash)
	}
	if upd.PIN != nil {
		add("pin", *upd.PIN)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.UnlimitedAI != nil {
		add("unlimited_ai", *upd.UnlimitedAI)
	}
	if upd.DailyAILimit != nil {
		add("daily_ai_limit", *upd.DailyAILimit)
	}
	if len(sets) == 0 {
		return nil, errors.New("no updates provided")
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(sets, ", "), n)

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return user, nil
}

// Delete removes a user by ID. Sessions and daily-call rows cascade.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
