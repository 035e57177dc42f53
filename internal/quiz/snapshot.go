package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// SnapshotMaxAge is how long a saved snapshot stays restorable.
const SnapshotMaxAge = 24 * time.Hour

// Snapshot is the serialized form of an in-progress session. The exam
// clock is flattened to TimeRemaining so a restore can rebuild the
// deadline from whatever wall-clock time it happens at.
type Snapshot struct {
	Status        Status           `json:"quizStatus"`
	Mode          Mode             `json:"quizMode"`
	QuestionCount int              `json:"selectedQuestionCount"`
	CurrentIndex  int              `json:"currentQuestionIndex"`
	Questions     []model.Question `json:"selectedQuestions"`
	Answers       []*string        `json:"userAnswers"`
	Results       []AnswerResult   `json:"answerResults"`
	TimeRemaining int              `json:"timeRemaining"`
	TimeTaken     int              `json:"timeTaken"`
	TotalBudget   int              `json:"totalBudget"`
	ShowFeedback  bool             `json:"showFeedback"`
	Timestamp     int64            `json:"timestamp"` // unix millis at save
}

// makeSnapshot flattens a session for storage at now.
func makeSnapshot(sess *Session, now time.Time) Snapshot {
	return Snapshot{
		Status:        sess.Status,
		Mode:          sess.Mode,
		QuestionCount: len(sess.Questions),
		CurrentIndex:  sess.CurrentIndex,
		Questions:     sess.Questions,
		Answers:       sess.Answers,
		Results:       sess.Results,
		TimeRemaining: sess.Remaining(now),
		TimeTaken:     sess.TimeTaken,
		TotalBudget:   sess.TotalBudget,
		ShowFeedback:  sess.ShowFeedback,
		Timestamp:     now.UnixMilli(),
	}
}

// restorable reports whether the snapshot may still be resumed at now:
// it must have been in progress and saved within SnapshotMaxAge.
func (s *Snapshot) restorable(now time.Time) bool {
	if s.Status != StatusInProgress {
		return false
	}
	return now.Sub(time.UnixMilli(s.Timestamp)) <= SnapshotMaxAge
}

// session rebuilds a live Session. The exam deadline is re-anchored so
// the saved remaining time continues from now.
func (s *Snapshot) session(now time.Time) *Session {
	sess := &Session{
		Mode:         s.Mode,
		Status:       StatusInProgress,
		Questions:    s.Questions,
		Answers:      s.Answers,
		Results:      s.Results,
		CurrentIndex: s.CurrentIndex,
		ShowFeedback: s.ShowFeedback,
		TotalBudget:  s.TotalBudget,
		TimeTaken:    s.TimeTaken,
		Persist:      true,
		StartedAt:    time.UnixMilli(s.Timestamp),
	}
	if sess.Mode == ModeExam {
		sess.Deadline = now.Add(time.Duration(s.TimeRemaining) * time.Second)
	}
	return sess
}

// SnapshotStore persists session snapshots in Redis, keyed per owner.
// Saves happen only for sessions whose owner consented to storage.
type SnapshotStore struct {
	rdb *redis.Client
}

// NewSnapshotStore creates a SnapshotStore.
func NewSnapshotStore(rdb *redis.Client) *SnapshotStore {
	return &SnapshotStore{rdb: rdb}
}

// Save writes a snapshot of an in-progress session. Sessions that are
// not in progress, or whose owner declined persistence, are skipped
// silently.
func (st *SnapshotStore) Save(ctx context.Context, owner string, sess *Session, now time.Time) error {
	if !sess.Persist || sess.Status != StatusInProgress {
		return nil
	}

	payload, err := json.Marshal(makeSnapshot(sess, now))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	key := config.CacheKey.QuizSnapshotKey(owner)
	if err := st.rdb.Set(ctx, key, payload, SnapshotMaxAge).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load retrieves and validates a snapshot. Snapshots that are absent,
// not in-progress, or older than SnapshotMaxAge yield (nil, nil); a
// stale one is deleted on the way out.
func (st *SnapshotStore) Load(ctx context.Context, owner string, now time.Time) (*Session, error) {
	key := config.CacheKey.QuizSnapshotKey(owner)

	payload, err := st.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if !snap.restorable(now) {
		_ = st.rdb.Del(ctx, key).Err()
		return nil, nil
	}

	return snap.session(now), nil
}

// Clear deletes the owner's snapshot. Idempotent.
func (st *SnapshotStore) Clear(ctx context.Context, owner string) error {
	return st.rdb.Del(ctx, config.CacheKey.QuizSnapshotKey(owner)).Err()
}
