package aiclient

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DelayFunc waits for d or until ctx is done, whichever comes first.
type DelayFunc func(ctx context.Context, d time.Duration) error

// SleepContext is the production DelayFunc.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy bounds the per-model retry loop.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// MaxRetryAfter caps a server supplied Retry-After value.
	MaxRetryAfter time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    4,
		InitialBackoff: 1500 * time.Millisecond,
		MaxBackoff:     15 * time.Second,
		MaxRetryAfter:  60 * time.Second,
	}
}

func (p RetryPolicy) normalized() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = def.MaxBackoff
	}
	if p.MaxBackoff < p.InitialBackoff {
		p.MaxBackoff = p.InitialBackoff
	}
	if p.MaxRetryAfter <= 0 {
		p.MaxRetryAfter = def.MaxRetryAfter
	}
	return p
}

// retryState tracks one model's attempts. A fresh state is created for every
// model so counters never leak between models or calls.
type retryState struct {
	policy  RetryPolicy
	attempt int
	backoff time.Duration
}

func newRetryState(policy RetryPolicy) *retryState {
	policy = policy.normalized()
	return &retryState{policy: policy, backoff: policy.InitialBackoff}
}

// fail records a retryable failure. It returns the wait before the next
// attempt, or ok=false once the attempt budget is spent. A positive
// retryAfter replaces the computed backoff for this wait only.
func (s *retryState) fail(retryAfter time.Duration) (wait time.Duration, ok bool) {
	s.attempt++
	if s.attempt >= s.policy.MaxAttempts {
		return 0, false
	}

	wait = s.backoff
	if retryAfter > 0 {
		wait = min(retryAfter, s.policy.MaxRetryAfter)
	}
	s.backoff = min(s.backoff*2, s.policy.MaxBackoff)
	return wait, true
}

func (s *retryState) attempts() int {
	return s.attempt
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}

// modelUnavailableStatus reports a 404, or a 403 whose body mentions
// "permissions" (lowercase, plural). Google's PERMISSION_DENIED status code
// alone does not count, so a plain key-level 403 stays AccessDenied.
func modelUnavailableStatus(status int, body string) bool {
	if status == http.StatusNotFound {
		return true
	}
	return status == http.StatusForbidden && strings.Contains(body, "permissions")
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
