// Package errors provides structured error types for the collaborator service.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure modes.
var (
	ErrTimeout     = errors.New("operation timed out")
	ErrUnavailable = errors.New("service unavailable")
)

// ProviderError represents a failure calling the completion provider:
// transport errors, non-2xx responses, or replies with no extractable text.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error (status %d): %s: %v", e.Provider, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError creates a new provider error.
func NewProviderError(provider string, statusCode int, message string) *ProviderError {
	return &ProviderError{Provider: provider, StatusCode: statusCode, Message: message}
}

// UnparsableResponseError is returned when no JSON object could be recovered
// from the provider's reply. Snippet holds the first 200 characters of the
// raw text for diagnostics.
type UnparsableResponseError struct {
	Snippet string
}

func (e *UnparsableResponseError) Error() string {
	return fmt.Sprintf("failed to parse JSON from provider response: %s", e.Snippet)
}

// NewUnparsableResponseError clips raw to 200 characters and wraps it.
func NewUnparsableResponseError(raw string) *UnparsableResponseError {
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return &UnparsableResponseError{Snippet: raw}
}

// IncompleteSpecificationError is returned when a parsed specification is
// missing required top-level fields.
type IncompleteSpecificationError struct {
	Missing []string
}

func (e *IncompleteSpecificationError) Error() string {
	return fmt.Sprintf("missing required fields in specification: %s", strings.Join(e.Missing, ", "))
}

// FilesystemError represents a failed scaffold write.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem error at %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// IsRetryable returns true if the error is likely transient and worth retrying.
// Validation and parse failures are never retryable.
func IsRetryable(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		switch provErr.StatusCode {
		case 0, 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
}
