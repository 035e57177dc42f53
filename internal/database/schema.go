package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// schemaStatements create every table and index the application needs.
// All statements are idempotent so the bootstrap endpoint can be hit
// repeatedly without harm. cmd/migrate applies the same schema from
// versioned files; this path exists for one-shot serverless setups.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		pin VARCHAR(4) UNIQUE NOT NULL,
		ai_limit INTEGER DEFAULT 100,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		pin VARCHAR(4) UNIQUE NOT NULL,
		email VARCHAR(255),
		role VARCHAR(50) DEFAULT 'self-registered',
		unlimited_ai BOOLEAN DEFAULT FALSE,
		daily_ai_limit INTEGER DEFAULT 10,
		created_by VARCHAR(50),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_daily_calls (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		call_date DATE NOT NULL,
		call_count INTEGER DEFAULT 0,
		UNIQUE(user_id, call_date)
	)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id SERIAL PRIMARY KEY,
		admin_id INTEGER REFERENCES admin_users(id) ON DELETE CASCADE,
		session_token VARCHAR(255) UNIQUE NOT NULL,
		login_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_sessions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
		session_token VARCHAR(255) UNIQUE NOT NULL,
		login_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id SERIAL PRIMARY KEY,
		question_text TEXT NOT NULL,
		options JSONB NOT NULL,
		correct_option TEXT NOT NULL,
		topic VARCHAR(255),
		explanation TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
	`CREATE INDEX IF NOT EXISTS idx_users_pin ON users(pin)`,
	`CREATE INDEX IF NOT EXISTS idx_admin_users_pin ON admin_users(pin)`,
	`CREATE INDEX IF NOT EXISTS idx_user_daily_calls_user_date ON user_daily_calls(user_id, call_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_token ON admin_sessions(session_token)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_token ON user_sessions(session_token)`,
}

// InitSchema creates all tables and indexes, then seeds the default
// admin (username "admin", PIN "0000") if no admin exists yet.
// Returns true when the default admin was created by this call.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) (bool, error) {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("apply schema: %w", err)
		}
	}

	var adminCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&adminCount); err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}

	if adminCount > 0 {
		return false, nil
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO admin_users (username, pin, ai_limit) VALUES ('admin', '0000', 100)`)
	if err != nil {
		return false, fmt.Errorf("seed default admin: %w", err)
	}

	log.Info().Msg("Default admin created (username: admin, PIN: 0000)")
	return true, nil
}
