package quota

import (
	"fmt"
	"sync"
	"time"
)

// WindowError reports a full sliding window. ResetIn is how long until
// the oldest recorded call leaves the window and frees one slot.
type WindowError struct {
	Max     int
	ResetIn time.Duration
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("Rate limit exceeded. You've used all %d AI explanations for this minute. Please wait %d seconds before trying again.",
		e.Max, int(e.ResetIn.Seconds()))
}

// Window is a sliding-window call limiter for one caller: at most max
// calls within the trailing window. Zero value is not usable; construct
// via the Limiter.
type window struct {
	calls []time.Time
}

// prune drops timestamps that have left the window, in place.
func (w *window) prune(now time.Time, span time.Duration) {
	cutoff := now.Add(-span)
	i := 0
	for i < len(w.calls) && !w.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.calls = append(w.calls[:0], w.calls[i:]...)
	}
}

// Status describes current window capacity.
type Status struct {
	Remaining int
	ResetIn   time.Duration
}

// Limiter tracks sliding windows for many callers, keyed by an opaque
// caller ID (anonymous quiz-session ID, client IP). State belongs to
// the Limiter instance handed around at wiring time — there is no
// process-wide registry.
type Limiter struct {
	mu      sync.Mutex
	max     int
	span    time.Duration
	callers map[string]*window
}

// NewLimiter creates a Limiter allowing max calls per span per caller.
func NewLimiter(max int, span time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		span:    span,
		callers: make(map[string]*window),
	}
}

// Status reports the caller's remaining capacity after pruning expired
// entries.
func (l *Limiter) Status(key string, now time.Time) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.callers[key]
	if !ok {
		return Status{Remaining: l.max}
	}
	w.prune(now, l.span)

	st := Status{Remaining: l.max - len(w.calls)}
	if len(w.calls) > 0 {
		st.ResetIn = l.span - now.Sub(w.calls[0])
	}
	return st
}

// Allow consumes one slot for the caller, or returns a *WindowError
// carrying the wait until a slot frees. The slot is consumed before any
// remote work the caller does — a later failure does not refund it.
func (l *Limiter) Allow(key string, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.callers[key]
	if !ok {
		w = &window{}
		l.callers[key] = w
	}
	w.prune(now, l.span)

	if len(w.calls) >= l.max {
		resetIn := l.span - now.Sub(w.calls[0])
		return &WindowError{Max: l.max, ResetIn: resetIn}
	}

	w.calls = append(w.calls, now)
	return nil
}

// Cleanup drops callers whose windows have fully drained. Meant to be
// called periodically from a background goroutine.
func (l *Limiter) Cleanup(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.callers {
		w.prune(now, l.span)
		if len(w.calls) == 0 {
			delete(l.callers, key)
		}
	}
}
