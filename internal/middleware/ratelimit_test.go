package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BucketExhaustion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Minute)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimiter_SweepDropsStaleBuckets(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	rl.mu.Lock()
	rl.buckets["stale"] = &bucket{tokens: 5, lastSeen: time.Now().Add(-10 * time.Minute)}
	rl.buckets["fresh"] = &bucket{tokens: 5, lastSeen: time.Now()}
	rl.mu.Unlock()

	rl.sweep()

	rl.mu.Lock()
	_, staleKept := rl.buckets["stale"]
	_, freshKept := rl.buckets["fresh"]
	rl.mu.Unlock()

	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
