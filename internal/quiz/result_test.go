package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	cases := []struct {
		percentage int
		grade      string
	}{
		{100, "A"}, {90, "A"},
		{89, "B"}, {80, "B"},
		{79, "C"}, {70, "C"},
		{69, "D"}, {60, "D"},
		{59, "F"}, {0, "F"},
	}
	for _, c := range cases {
		assert.Equal(t, c.grade, Grade(c.percentage), "percentage %d", c.percentage)
	}
}

func TestScore_CountsAndRounds(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(3), 3, ModeExam, false, now)
	require.NoError(t, err)

	// Correct, wrong, unanswered.
	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)
	_, err = engine.Next("owner", now)
	require.NoError(t, err)
	_, err = engine.Answer("owner", "Beta", now)
	require.NoError(t, err)

	sess, err := engine.Submit("owner", now.Add(10*time.Second))
	require.NoError(t, err)

	result, err := sess.Score()
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 1, result.Incorrect)
	assert.Equal(t, 1, result.Unanswered)
	// 1/3 rounds to 33, not truncates to 33.33.
	assert.Equal(t, 33, result.Percentage)
	assert.Equal(t, "F", result.Grade)
	assert.Equal(t, 10, result.TimeTaken)
}

func TestScore_RoundsHalfUp(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(8), 8, ModeLearn, false, now)
	require.NoError(t, err)

	// 5 of 8 correct: 62.5% rounds to 63.
	for i := 0; i < 8; i++ {
		answer := "Alpha"
		if i >= 5 {
			answer = "Beta"
		}
		_, err = engine.Answer("owner", answer, now)
		require.NoError(t, err)
		_, err = engine.Next("owner", now)
		require.NoError(t, err)
	}

	sess, err := engine.Get("owner", now)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, sess.Status)

	result, err := sess.Score()
	require.NoError(t, err)
	assert.Equal(t, 63, result.Percentage)
	assert.Equal(t, "D", result.Grade)
}

func TestScore_RequiresCompletion(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeExam, false, now)
	require.NoError(t, err)

	_, err = sess.Score()
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}
