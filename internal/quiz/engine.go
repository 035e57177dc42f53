package quiz

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/quizdeck/quizdeck-backend/internal/model"
)

// Status is the lifecycle state of a quiz session.
type Status string

const (
	StatusSetup      Status = "setup"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Mode selects the quiz behavior: exam is timed with feedback withheld
// until submission; learn is untimed with immediate per-question
// feedback.
type Mode string

const (
	ModeExam  Mode = "exam"
	ModeLearn Mode = "learn"
)

// MaxQuestions caps a single quiz regardless of bank size.
const MaxQuestions = 500

// Engine errors.
var (
	ErrNoQuestions      = errors.New("question bank is empty")
	ErrNoActiveQuiz     = errors.New("no quiz in progress")
	ErrQuizCompleted    = errors.New("quiz already completed")
	ErrFeedbackNotShown = errors.New("feedback not shown yet")
)

// AnswerResult records per-question learn-mode feedback. Correct is nil
// until the question has been answered.
type AnswerResult struct {
	Answered bool  `json:"answered"`
	Correct  *bool `json:"correct"`
}

// Session is one live quiz. All timing derives from Deadline, a
// monotonic wall-clock target fixed at start; remaining time is
// recomputed from it on every access, so suspended callers (hidden
// tabs, slow polls) need no correction step.
type Session struct {
	Mode         Mode             `json:"mode"`
	Status       Status           `json:"status"`
	Questions    []model.Question `json:"selectedQuestions"`
	Answers      []*string        `json:"userAnswers"`
	Results      []AnswerResult   `json:"answerResults"`
	CurrentIndex int              `json:"currentQuestionIndex"`
	ShowFeedback bool             `json:"showFeedback"`
	TotalBudget  int              `json:"totalBudget"` // seconds, exam mode only
	TimeTaken    int              `json:"timeTaken"`   // seconds, set on completion
	Persist      bool             `json:"persist"`
	StartedAt    time.Time        `json:"startedAt"`
	Deadline     time.Time        `json:"-"`
}

// Remaining returns whole seconds left on the exam clock, never
// negative. Learn mode has no clock and always reports zero.
func (s *Session) Remaining(now time.Time) int {
	if s.Mode != ModeExam || s.Status != StatusInProgress {
		return 0
	}
	left := s.Deadline.Sub(now)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// TimeBudget returns the exam time budget in seconds for a question
// count: 10 minutes per 20 questions, rounded up.
func TimeBudget(count int) int {
	return (count*600 + 19) / 20
}

// Engine owns all live quiz sessions, keyed by owner ("user:<id>" or
// "anon:<uuid>"). State is explicit and instance-scoped; nothing here
// is package-global.
type Engine struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewEngine creates an empty Engine.
func NewEngine() *Engine {
	return &Engine{sessions: make(map[string]*Session)}
}

// Start draws a fresh quiz for the owner, replacing any previous
// session. The requested count is clamped to [1, min(500, bank size)].
// Selection is a uniform permutation of the bank — every original
// option of every chosen question appears exactly once, in shuffled
// order.
func (e *Engine) Start(owner string, bank []model.Question, count int, mode Mode, persist bool, now time.Time) (*Session, error) {
	if len(bank) == 0 {
		return nil, ErrNoQuestions
	}

	limit := len(bank)
	if limit > MaxQuestions {
		limit = MaxQuestions
	}
	if count > limit {
		count = limit
	}
	if count < 1 {
		count = 1
	}

	perm := rand.Perm(len(bank))
	selected := make([]model.Question, count)
	for i := 0; i < count; i++ {
		q := bank[perm[i]]
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		rand.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		q.Options = options
		selected[i] = q
	}

	sess := &Session{
		Mode:      mode,
		Status:    StatusInProgress,
		Questions: selected,
		Answers:   make([]*string, count),
		Results:   make([]AnswerResult, count),
		Persist:   persist,
		StartedAt: now,
	}
	if mode == ModeExam {
		sess.TotalBudget = TimeBudget(count)
		sess.Deadline = now.Add(time.Duration(sess.TotalBudget) * time.Second)
	}

	e.mu.Lock()
	e.sessions[owner] = sess
	e.mu.Unlock()

	return sess, nil
}

// Get returns the owner's session, applying deadline expiry first: an
// exam whose clock ran out completes with timeTaken equal to the full
// budget, exactly as if the timer had fired.
func (e *Engine) Get(owner string, now time.Time) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions[owner]
	if !ok {
		return nil, ErrNoActiveQuiz
	}
	e.expireLocked(sess, now)
	return sess, nil
}

// Answer records an answer for the current question.
//   - exam: answers may be changed freely until submission; correctness
//     is never revealed.
//   - learn: the first answer freezes the question — later calls are
//     ignored — and correctness is computed and exposed immediately.
func (e *Engine) Answer(owner, option string, now time.Time) (*Session, error) {
	sess, err := e.inProgress(owner, now)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	i := sess.CurrentIndex
	if sess.Mode == ModeLearn {
		if sess.Results[i].Answered {
			// Frozen after the first answer; its feedback stays visible.
			sess.ShowFeedback = true
			return sess, nil
		}
		sess.Answers[i] = &option
		correct := option == sess.Questions[i].CorrectOption
		sess.Results[i] = AnswerResult{Answered: true, Correct: &correct}
		sess.ShowFeedback = true
		return sess, nil
	}

	sess.Answers[i] = &option
	return sess, nil
}

// Next advances to the next question. In learn mode advancing requires
// that the current question has been answered (its feedback shown), and
// "next" on the last question completes the quiz.
func (e *Engine) Next(owner string, now time.Time) (*Session, error) {
	sess, err := e.inProgress(owner, now)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if sess.Mode == ModeLearn {
		// Gate on the answer record, not the transient ShowFeedback
		// flag: navigating back to an answered question must not trap
		// the session there.
		if !sess.Results[sess.CurrentIndex].Answered {
			return nil, ErrFeedbackNotShown
		}
		if sess.CurrentIndex == len(sess.Questions)-1 {
			e.completeLocked(sess, now)
			return sess, nil
		}
	}

	if sess.CurrentIndex < len(sess.Questions)-1 {
		sess.CurrentIndex++
		sess.ShowFeedback = false
	}
	return sess, nil
}

// Prev moves back one question.
func (e *Engine) Prev(owner string, now time.Time) (*Session, error) {
	sess, err := e.inProgress(owner, now)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if sess.CurrentIndex > 0 {
		sess.CurrentIndex--
		sess.ShowFeedback = false
	}
	return sess, nil
}

// Submit explicitly completes the quiz.
func (e *Engine) Submit(owner string, now time.Time) (*Session, error) {
	sess, err := e.inProgress(owner, now)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.completeLocked(sess, now)
	return sess, nil
}

// Exit discards the owner's session, returning to setup. Idempotent.
func (e *Engine) Exit(owner string) {
	e.mu.Lock()
	delete(e.sessions, owner)
	e.mu.Unlock()
}

// Restore installs a session recovered from a snapshot.
func (e *Engine) Restore(owner string, sess *Session) {
	e.mu.Lock()
	e.sessions[owner] = sess
	e.mu.Unlock()
}

// inProgress fetches the session and rejects anything not running.
func (e *Engine) inProgress(owner string, now time.Time) (*Session, error) {
	sess, err := e.Get(owner, now)
	if err != nil {
		return nil, err
	}
	if sess.Status == StatusCompleted {
		return nil, ErrQuizCompleted
	}
	return sess, nil
}

// expireLocked completes an exam whose deadline has passed.
func (e *Engine) expireLocked(sess *Session, now time.Time) {
	if sess.Mode != ModeExam || sess.Status != StatusInProgress {
		return
	}
	if !now.Before(sess.Deadline) {
		sess.Status = StatusCompleted
		sess.TimeTaken = sess.TotalBudget
	}
}

// completeLocked finalizes a session and fixes timeTaken from the
// remaining clock.
func (e *Engine) completeLocked(sess *Session, now time.Time) {
	if sess.Status == StatusCompleted {
		return
	}
	if sess.Mode == ModeExam {
		sess.TimeTaken = sess.TotalBudget - sess.Remaining(now)
	}
	sess.Status = StatusCompleted
}
