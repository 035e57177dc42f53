package quiz

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdeck/quizdeck-backend/internal/model"
)

func makeBank(n int) []model.Question {
	bank := make([]model.Question, n)
	for i := range bank {
		bank[i] = model.Question{
			ID:            i + 1,
			QuestionText:  fmt.Sprintf("Question %d", i+1),
			Options:       []string{"Alpha", "Beta", "Gamma", "Delta"},
			CorrectOption: "Alpha",
		}
	}
	return bank
}

func TestStart_DrawsPermutation(t *testing.T) {
	engine := NewEngine()
	bank := makeBank(10)
	now := time.Now()

	sess, err := engine.Start("owner", bank, 10, ModeExam, false, now)
	require.NoError(t, err)
	require.Len(t, sess.Questions, 10)

	// Every bank question appears exactly once.
	seen := map[int]bool{}
	for _, q := range sess.Questions {
		assert.False(t, seen[q.ID], "question %d drawn twice", q.ID)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 10)

	// Option shuffling preserves the option set of each question.
	for _, q := range sess.Questions {
		opts := append([]string(nil), q.Options...)
		sort.Strings(opts)
		assert.Equal(t, []string{"Alpha", "Beta", "Delta", "Gamma"}, opts)
	}
}

func TestStart_DoesNotMutateBank(t *testing.T) {
	engine := NewEngine()
	bank := makeBank(5)

	_, err := engine.Start("owner", bank, 5, ModeLearn, false, time.Now())
	require.NoError(t, err)

	for _, q := range bank {
		assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta"}, q.Options)
	}
}

func TestStart_ClampsCount(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("a", makeBank(5), 50, ModeExam, false, now)
	require.NoError(t, err)
	assert.Len(t, sess.Questions, 5)

	sess, err = engine.Start("b", makeBank(5), 0, ModeExam, false, now)
	require.NoError(t, err)
	assert.Len(t, sess.Questions, 1)
}

func TestStart_EmptyBank(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Start("owner", nil, 5, ModeExam, false, time.Now())
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestStart_ReplacesExistingSession(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	first, err := engine.Start("owner", makeBank(3), 3, ModeExam, false, now)
	require.NoError(t, err)

	second, err := engine.Start("owner", makeBank(3), 2, ModeLearn, false, now)
	require.NoError(t, err)

	got, err := engine.Get("owner", now)
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
}

func TestGet_NoSession(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Get("nobody", time.Now())
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}

func TestExam_AnswersChangeFreelyWithoutFeedback(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(3), 3, ModeExam, false, now)
	require.NoError(t, err)

	_, err = engine.Answer("owner", "Beta", now)
	require.NoError(t, err)
	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)

	require.NotNil(t, sess.Answers[0])
	assert.Equal(t, "Alpha", *sess.Answers[0])

	// Exam mode never reveals correctness mid-quiz.
	assert.False(t, sess.Results[0].Answered)
	assert.Nil(t, sess.Results[0].Correct)
	assert.False(t, sess.ShowFeedback)
}

func TestLearn_FirstAnswerFreezes(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeLearn, false, now)
	require.NoError(t, err)

	wrong := "nope"
	_, err = engine.Answer("owner", wrong, now)
	require.NoError(t, err)

	require.NotNil(t, sess.Results[0].Correct)
	assert.True(t, sess.Results[0].Answered)
	assert.False(t, *sess.Results[0].Correct)
	assert.True(t, sess.ShowFeedback)

	// A second answer to the same question is ignored.
	_, err = engine.Answer("owner", sess.Questions[0].CorrectOption, now)
	require.NoError(t, err)
	assert.Equal(t, wrong, *sess.Answers[0])
	assert.False(t, *sess.Results[0].Correct)
}

func TestLearn_NextRequiresFeedback(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(3), 3, ModeLearn, false, now)
	require.NoError(t, err)

	_, err = engine.Next("owner", now)
	assert.ErrorIs(t, err, ErrFeedbackNotShown)

	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)

	sess, err := engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentIndex)
	assert.False(t, sess.ShowFeedback)
}

func TestLearn_RevisitingAnsweredQuestionStillAdvances(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(3), 3, ModeLearn, false, now)
	require.NoError(t, err)

	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)
	_, err = engine.Next("owner", now)
	require.NoError(t, err)

	// Go back to the answered question; forward must still work.
	sess, err := engine.Prev("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.CurrentIndex)

	sess, err = engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentIndex)

	// Re-answering the frozen question keeps its feedback visible and
	// does not trap the session either.
	_, err = engine.Prev("owner", now)
	require.NoError(t, err)
	sess, err = engine.Answer("owner", "Beta", now)
	require.NoError(t, err)
	assert.True(t, sess.ShowFeedback)
	assert.Equal(t, "Alpha", *sess.Answers[0])

	sess, err = engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentIndex)
}

func TestLearn_NextOnLastQuestionCompletes(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(1), 1, ModeLearn, false, now)
	require.NoError(t, err)

	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)

	sess, err := engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, sess.Status)

	_, err = engine.Answer("owner", "Beta", now)
	assert.ErrorIs(t, err, ErrQuizCompleted)
}

func TestExam_NavigationBounds(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeExam, false, now)
	require.NoError(t, err)

	// Prev at the first question stays put.
	_, err = engine.Prev("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.CurrentIndex)

	_, err = engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentIndex)

	// Next at the last question stays put; exam completion is explicit.
	_, err = engine.Next("owner", now)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentIndex)
	assert.Equal(t, StatusInProgress, sess.Status)
}

func TestExam_DeadlineExpiry(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(1), 1, ModeExam, false, now)
	require.NoError(t, err)
	require.Equal(t, TimeBudget(1), sess.TotalBudget)

	// One second before the deadline the exam is still live.
	got, err := engine.Get("owner", now.Add(time.Duration(sess.TotalBudget-1)*time.Second))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)

	// At the deadline it completes with the full budget consumed.
	got, err = engine.Get("owner", now.Add(time.Duration(sess.TotalBudget)*time.Second))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, sess.TotalBudget, got.TimeTaken)

	_, err = engine.Submit("owner", now)
	assert.ErrorIs(t, err, ErrQuizCompleted)
}

func TestExam_SubmitRecordsTimeTaken(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(20), 20, ModeExam, false, now)
	require.NoError(t, err)

	sess, err := engine.Submit("owner", now.Add(90*time.Second))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, sess.Status)
	assert.Equal(t, 90, sess.TimeTaken)
	assert.Equal(t, 0, sess.Remaining(now.Add(91*time.Second)))
}

func TestLearn_HasNoClock(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeLearn, false, now)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.TotalBudget)
	assert.Equal(t, 0, sess.Remaining(now.Add(time.Hour)))

	// Hours later the session is still live.
	got, err := engine.Get("owner", now.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
}

func TestExit_Idempotent(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(1), 1, ModeExam, false, now)
	require.NoError(t, err)

	engine.Exit("owner")
	engine.Exit("owner")

	_, err = engine.Get("owner", now)
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}

func TestTimeBudget(t *testing.T) {
	assert.Equal(t, 600, TimeBudget(20))
	assert.Equal(t, 30, TimeBudget(1))
	assert.Equal(t, 630, TimeBudget(21))
	assert.Equal(t, 1200, TimeBudget(40))
}
