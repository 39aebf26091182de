package main

import (
	"errors"
	"fmt"
)

// AuthError means the credential was missing or rejected. Never retried.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("authentication failed: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError means the service signalled throttling.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string { return fmt.Sprintf("rate limited: %v", e.Err) }
func (e *RateLimitError) Unwrap() error { return e.Err }

// TimeoutError means no response arrived within the request deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("request timed out: %v", e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

// ServiceError covers all other remote failures.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string { return fmt.Sprintf("service error: %v", e.Err) }
func (e *ServiceError) Unwrap() error { return e.Err }

// retryable reports whether a summarization failure is worth retrying.
// Only authentication failures are permanent.
func retryable(err error) bool {
	var auth *AuthError
	return !errors.As(err, &auth)
}
