// internal/common/errors/errors.go

// Package errors provides standardized error handling for the insight
// pipeline. Only INVALID_INPUT and COMPANY_NOT_FOUND ever reach the
// caller; the remaining codes are logged and absorbed by the pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound            ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeSourceUnavailable   ErrorCode = "SOURCE_UNAVAILABLE"
	ErrCodeSourceTimeout       ErrorCode = "SOURCE_TIMEOUT"
	ErrCodePersistenceDegraded ErrorCode = "PERSISTENCE_DEGRADED"
	ErrCodeRequestTimeout      ErrorCode = "REQUEST_TIMEOUT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidInputError creates a non-retryable bad-request error.
func NewInvalidInputError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid request input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError reports an unknown canonical key. A valid negative
// result, not a fault.
func NewNotFoundError(canonicalKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   "Company not found",
		Details:   fmt.Sprintf("canonicalKey: %s", canonicalKey),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceUnavailableError wraps a connector failure. Never surfaced to
// the caller, only logged by the fan-out runner.
func NewSourceUnavailableError(platform string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   fmt.Sprintf("Source '%s' unavailable", platform),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceTimeoutError wraps a connector deadline overrun.
func NewSourceTimeoutError(platform string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceTimeout,
		Message:   fmt.Sprintf("Source '%s' timed out", platform),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceDegradedError wraps a cache or store failure. The
// pipeline treats it as a miss (reads) or logs it (writes).
func NewPersistenceDegradedError(layer string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePersistenceDegraded,
		Message:   fmt.Sprintf("Persistence layer '%s' degraded", layer),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestTimeoutError reports that the overall insight build exceeded
// its deadline.
func NewRequestTimeoutError(canonicalKey string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestTimeout,
		Message:   "Insight build exceeded overall deadline",
		Details:   fmt.Sprintf("canonicalKey: %s", canonicalKey),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the ErrorCode from err, or "" when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsInvalidInput reports whether err is a caller-fault input error.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == ErrCodeInvalidInput
}

// IsNotFound reports whether err is an unknown-key result.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}
