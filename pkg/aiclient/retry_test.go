package aiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryState_DoublesAndStopsAtBudget(t *testing.T) {
	s := newRetryState(DefaultRetryPolicy())

	var waits []time.Duration
	for {
		wait, ok := s.fail(0)
		if !ok {
			break
		}
		waits = append(waits, wait)
	}

	assert.Equal(t, []time.Duration{1500 * time.Millisecond, 3 * time.Second, 6 * time.Second}, waits)
	assert.Equal(t, 4, s.attempts())
}

func TestRetryState_RetryAfterDoesNotResetBackoff(t *testing.T) {
	s := newRetryState(RetryPolicy{MaxAttempts: 5, InitialBackoff: time.Second, MaxBackoff: 15 * time.Second})

	w1, _ := s.fail(20 * time.Second)
	w2, _ := s.fail(0)

	assert.Equal(t, 20*time.Second, w1)
	assert.Equal(t, 2*time.Second, w2)
}

func TestRetryState_RetryAfterIsBounded(t *testing.T) {
	s := newRetryState(RetryPolicy{MaxAttempts: 3, MaxRetryAfter: 10 * time.Second})

	wait, ok := s.fail(time.Hour)

	require.True(t, ok)
	assert.Equal(t, 10*time.Second, wait)
}

func TestRetryPolicy_NormalizedFillsDefaults(t *testing.T) {
	p := RetryPolicy{}.normalized()
	assert.Equal(t, DefaultRetryPolicy(), p)

	p = RetryPolicy{InitialBackoff: 20 * time.Second, MaxBackoff: time.Second}.normalized()
	assert.Equal(t, 20*time.Second, p.MaxBackoff)
}

func TestModelUnavailableStatus(t *testing.T) {
	assert.True(t, modelUnavailableStatus(http.StatusNotFound, ""))
	assert.False(t, modelUnavailableStatus(http.StatusForbidden, `{"error":{"code":403,"status":"PERMISSION_DENIED"}}`))
	assert.False(t, modelUnavailableStatus(http.StatusForbidden, "Missing PERMISSIONS"))
	assert.True(t, modelUnavailableStatus(http.StatusForbidden, "missing permissions"))
	assert.False(t, modelUnavailableStatus(http.StatusForbidden, "API key expired"))
	assert.False(t, modelUnavailableStatus(http.StatusUnauthorized, "permissions"))
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503} {
		assert.True(t, retryableStatus(code), code)
	}
	for _, code := range []int{400, 401, 403, 404, 501, 504} {
		assert.False(t, retryableStatus(code), code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 3*time.Second, parseRetryAfter("3", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-4", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon", now))
	assert.Equal(t, 30*time.Second, parseRetryAfter(now.Add(30*time.Second).Format(http.TimeFormat), now))
}

func TestSleepContext_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := SleepContext(ctx, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
