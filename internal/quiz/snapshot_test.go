package quiz

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripRestoresSession(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(5), 5, ModeExam, true, now)
	require.NoError(t, err)
	_, err = engine.Answer("owner", "Alpha", now)
	require.NoError(t, err)
	_, err = engine.Next("owner", now)
	require.NoError(t, err)

	savedAt := now.Add(40 * time.Second)
	snap := makeSnapshot(sess, savedAt)

	// The stored form survives serialization.
	payload, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(payload, &decoded))

	// Hours later, but inside the window, the session comes back whole.
	loadedAt := savedAt.Add(3 * time.Hour)
	require.True(t, decoded.restorable(loadedAt))
	restored := decoded.session(loadedAt)

	assert.Equal(t, StatusInProgress, restored.Status)
	assert.Equal(t, ModeExam, restored.Mode)
	assert.Equal(t, sess.Questions, restored.Questions)
	assert.Equal(t, sess.Answers, restored.Answers)
	assert.Equal(t, sess.Results, restored.Results)
	assert.Equal(t, 1, restored.CurrentIndex)
	assert.Equal(t, sess.TotalBudget, restored.TotalBudget)
	assert.True(t, restored.Persist)

	// The clock resumes where it stopped, anchored to the restore time.
	assert.Equal(t, sess.Remaining(savedAt), restored.Remaining(loadedAt))
}

func TestSnapshot_StaleIsNotRestorable(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeLearn, true, now)
	require.NoError(t, err)
	snap := makeSnapshot(sess, now)

	assert.True(t, snap.restorable(now.Add(23*time.Hour)))
	assert.False(t, snap.restorable(now.Add(25*time.Hour)))
}

func TestSnapshot_CompletedIsNotRestorable(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	_, err := engine.Start("owner", makeBank(2), 2, ModeExam, true, now)
	require.NoError(t, err)
	sess, err := engine.Submit("owner", now)
	require.NoError(t, err)

	snap := makeSnapshot(sess, now)
	assert.False(t, snap.restorable(now))
}

func TestSnapshot_LearnModeHasNoDeadline(t *testing.T) {
	engine := NewEngine()
	now := time.Now()

	sess, err := engine.Start("owner", makeBank(2), 2, ModeLearn, true, now)
	require.NoError(t, err)

	snap := makeSnapshot(sess, now)
	restored := snap.session(now.Add(time.Hour))

	assert.True(t, restored.Deadline.IsZero())
	assert.Equal(t, 0, restored.Remaining(now.Add(2*time.Hour)))
}
