package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizdeck/quizdeck-backend/internal/model"
)

// SessionRepository handles the admin_sessions and user_sessions tables.
// Expired rows are not swept; validity is a timestamp comparison at
// lookup time.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// CreateAdminSession inserts a session row for an admin.
func (r *SessionRepository) CreateAdminSession(ctx context.Context, adminID int, token string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO admin_sessions (admin_id, session_token, expires_at) VALUES ($1, $2, $3)`,
		adminID, token, expiresAt)
	return err
}

// CreateUserSession inserts a session row for a user.
func (r *SessionRepository) CreateUserSession(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_sessions (user_id, session_token, expires_at) VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	return err
}

// GetAdminByToken resolves an unexpired admin session token to its owner.
// Returns ErrNotFound for unknown or expired tokens.
func (r *SessionRepository) GetAdminByToken(ctx context.Context, token string) (*model.AdminUser, *model.Session, error) {
	a := &model.AdminUser{}
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT a.id, a.username, a.pin, a.ai_limit, a.created_at, a.updated_at, s.expires_at
		 FROM admin_users a JOIN admin_sessions s ON a.id = s.admin_id
		 WHERE s.session_token = $1 AND s.expires_at > NOW()`, token,
	).Scan(&a.ID, &a.Username, &a.PIN, &a.AILimit, &a.CreatedAt, &a.UpdatedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	sess := &model.Session{OwnerKind: model.OwnerAdmin, OwnerID: a.ID, ExpiresAt: expiresAt}
	return a, sess, nil
}

// GetUserByToken resolves an unexpired user session token to its owner.
// Returns ErrNotFound for unknown or expired tokens.
func (r *SessionRepository) GetUserByToken(ctx context.Context, token string) (*model.User, *model.Session, error) {
	u := &model.User{}
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT u.id, u.username, u.password_hash, u.pin, u.email, u.role, u.unlimited_ai,
		        u.daily_ai_limit, u.created_by, u.created_at, u.updated_at, s.expires_at
		 FROM users u JOIN user_sessions s ON u.id = s.user_id
		 WHERE s.session_token = $1 AND s.expires_at > NOW()`, token,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.PIN, &u.Email, &u.Role, &u.UnlimitedAI,
		&u.DailyAILimit, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	sess := &model.Session{OwnerKind: model.OwnerUser, OwnerID: u.ID, ExpiresAt: expiresAt}
	return u, sess, nil
}

// DeleteAdminSession removes an admin session row. Deleting a token
// that does not exist is not an error; logout is idempotent.
func (r *SessionRepository) DeleteAdminSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM admin_sessions WHERE session_token = $1`, token)
	return err
}

// DeleteUserSession removes a user session row. Idempotent.
func (r *SessionRepository) DeleteUserSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_sessions WHERE session_token = $1`, token)
	return err
}
