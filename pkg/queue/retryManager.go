package queue

import (
	"math/rand"
	"time"
)

// RetryManager decides whether a failed task gets another attempt and how
// long to wait before it.
type RetryManager struct {
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func NewRetryManager(maxRetries int, baseDelay time.Duration) *RetryManager {
	return &RetryManager{
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   baseDelay * 16,
	}
}

// ShouldRetry reports whether the task has attempts left and returns the
// backoff delay for the next one.
func (r *RetryManager) ShouldRetry(task *Task) (bool, time.Duration) {
	maxRetries := task.MaxRetries
	if maxRetries <= 0 {
		maxRetries = r.maxRetries
	}
	if task.Attempts >= maxRetries {
		return false, 0
	}
	return true, r.calculateBackoff(task.Attempts)
}

// calculateBackoff returns base * 2^(attempt-1) with ±25% jitter, capped
// at maxDelay.
func (r *RetryManager) calculateBackoff(attempt int) time.Duration {
	if attempt <= 0 {
		return r.baseDelay
	}

	backoff := r.baseDelay * time.Duration(1<<(attempt-1))

	jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
	if rand.Intn(2) == 0 {
		backoff += jitter
	} else {
		backoff -= jitter
	}

	if backoff > r.maxDelay {
		backoff = r.maxDelay
	}

	return backoff
}
