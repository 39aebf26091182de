package main

import (
	"fmt"
	"time"
)

// withRetry invokes op up to maxAttempts times, sleeping an increasing
// delay (baseDelay * attempt) between attempts. Authentication failures
// are returned immediately; the last error is wrapped with the attempt
// count once attempts are exhausted.
func withRetry(maxAttempts int, baseDelay time.Duration, op func() (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return "", err
		}

		if attempt < maxAttempts {
			time.Sleep(baseDelay * time.Duration(attempt))
		}
	}

	return "", fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
