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

// questionBankTTL caps staleness of the cached bank payload. Writes
// invalidate it eagerly; the TTL only covers out-of-band edits.
const questionBankTTL = 5 * time.Minute

// QuestionService manages the question bank the quiz engine draws from.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, rdb: rdb, log: log}
}

// List returns the full question bank, served from the Redis cache
// when possible.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	cacheKey := config.CacheKey.QuestionBankKey()

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var questions []model.Question
		if err := json.Unmarshal([]byte(cached), &questions); err == nil {
			return questions, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Question cache read failed")
	}

	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if payload, err := json.Marshal(questions); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, payload, questionBankTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Question cache write failed")
		}
	}

	return questions, nil
}

// Create adds a question and invalidates the bank cache.
func (s *QuestionService) Create(ctx context.Context, req *model.AddQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
	}
	if req.Topic != "" {
		q.Topic = &req.Topic
	}
	if req.Explanation != "" {
		q.Explanation = &req.Explanation
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return q, nil
}

// Update applies a partial update and invalidates the bank cache.
func (s *QuestionService) Update(ctx context.Context, id int, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.questionRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return q, nil
}

// Delete removes a question and invalidates the bank cache.
func (s *QuestionService) Delete(ctx context.Context, id int) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.QuestionBankKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Question cache invalidation failed")
	}
}
