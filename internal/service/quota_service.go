package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// quotaStatusTTL bounds how stale a cached quota status may be. It
// replaces the per-client polling cache of the UI with one shared
// server-side entry.
const quotaStatusTTL = 5 * time.Second

// DailyLimitError reports an exhausted daily AI quota. The message
// names the limit and when it resets; there is no machine-parseable
// retry-after.
type DailyLimitError struct {
	Limit int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("You've used all %d AI explanations for today. Your quota resets tomorrow.", e.Limit)
}

// QuotaService tracks per-user daily AI call counts. "Today" is the
// server's local calendar date. Unlimited users bypass counting
// entirely — no row is ever written for them.
type QuotaService struct {
	dailyRepo *repository.DailyCallRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewQuotaService creates a new QuotaService.
func NewQuotaService(dailyRepo *repository.DailyCallRepository, rdb *redis.Client, log zerolog.Logger) *QuotaService {
	return &QuotaService{dailyRepo: dailyRepo, rdb: rdb, log: log}
}

// Status returns the user's quota standing for today. Results are
// cached for a few seconds so a polling UI does not hammer the
// counter table.
func (s *QuotaService) Status(ctx context.Context, user *model.User) (*model.QuotaStatus, error) {
	cacheKey := config.CacheKey.QuotaStatusKey(user.ID)

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		status := &model.QuotaStatus{}
		if err := json.Unmarshal([]byte(cached), status); err == nil {
			return status, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Quota cache read failed")
	}

	used := 0
	if !user.UnlimitedAI {
		var err error
		used, err = s.dailyRepo.GetCount(ctx, user.ID, time.Now())
		if err != nil {
			return nil, fmt.Errorf("get daily count: %w", err)
		}
	}

	status := &model.QuotaStatus{
		DailyUsed:  used,
		DailyLimit: user.DailyAILimit,
		Unlimited:  user.UnlimitedAI,
	}

	if payload, err := json.Marshal(status); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, quotaStatusTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Quota cache write failed")
		}
	}

	return status, nil
}

// Record increments today's counter for the user. Unlimited users are
// a no-op. The upsert is atomic, so concurrent sessions of the same
// user serialize on the database row.
func (s *QuotaService) Record(ctx context.Context, user *model.User) error {
	if user.UnlimitedAI {
		return nil
	}
	if _, err := s.dailyRepo.Increment(ctx, user.ID, time.Now()); err != nil {
		return fmt.Errorf("increment daily count: %w", err)
	}
	s.invalidate(ctx, user.ID)
	return nil
}

// Consume enforces the daily limit and then records a call. The call
// counts against quota even if the remote request that follows fails —
// there is no refund path.
func (s *QuotaService) Consume(ctx context.Context, user *model.User) error {
	if user.UnlimitedAI {
		return nil
	}

	used, err := s.dailyRepo.GetCount(ctx, user.ID, time.Now())
	if err != nil {
		return fmt.Errorf("get daily count: %w", err)
	}
	if used >= user.DailyAILimit {
		return &DailyLimitError{Limit: user.DailyAILimit}
	}

	if _, err := s.dailyRepo.Increment(ctx, user.ID, time.Now()); err != nil {
		return fmt.Errorf("increment daily count: %w", err)
	}
	s.invalidate(ctx, user.ID)
	return nil
}

func (s *QuotaService) invalidate(ctx context.Context, userID int) {
	if err := s.rdb.Del(ctx, config.CacheKey.QuotaStatusKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Quota cache invalidation failed")
	}
}
