package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DailyCallRepository tracks AI explanation calls per user per day.
type DailyCallRepository struct {
	pool *pgxpool.Pool
}

// NewDailyCallRepository creates a new DailyCallRepository.
func NewDailyCallRepository(pool *pgxpool.Pool) *DailyCallRepository {
	return &DailyCallRepository{pool: pool}
}

// GetCount returns the call count for a user on the given date, or 0
// when no row exists yet.
func (r *DailyCallRepository) GetCount(ctx context.Context, userID int, date time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT call_count FROM user_daily_calls WHERE user_id = $1 AND call_date = $2`,
		userID, date.Format("2006-01-02"),
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Increment upserts the (user, date) counter: created at 1 on the first
// call of the day, incremented atomically thereafter. The ON CONFLICT
// increment is the single point of serialization between concurrent
// sessions of the same user.
func (r *DailyCallRepository) Increment(ctx context.Context, userID int, date time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_daily_calls (user_id, call_date, call_count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (user_id, call_date)
		 DO UPDATE SET call_count = user_daily_calls.call_count + 1
		 RETURNING call_count`,
		userID, date.Format("2006-01-02"),
	).Scan(&count)
	return count, err
}
