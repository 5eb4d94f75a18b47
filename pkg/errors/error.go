// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown errors and logic-invariant violations
//   - Validation errors (100-199): Invalid configuration, insufficient data, out-of-order data
//   - Data/Resource errors (200-299): Candle store lookups and writes
//   - Indicator errors (300-399): Technical indicator calculation errors
//   - Strategy errors (400-499): Strategy construction and configuration errors
//   - Backtest errors (600-649): Backtesting engine errors
//   - Sweep errors (650-699): Parameter sweep errors
//   - Simulator errors (900-999): Step-through session errors
//
// The three caller-contract violations surfaced by the evaluation core map to:
//
//	InvalidConfigError   -> ErrCodeInvalidConfiguration (and the more specific 1xx validation codes)
//	InsufficientDataError -> *InsufficientDataError (ErrCodeInsufficientData)
//	OutOfOrderDataError  -> ErrCodeOutOfOrderData
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "fast period must be shorter than slow period")
//	err := errors.Newf(errors.ErrCodeOutOfOrderData, "tick at %d is older than bucket %d", ts, start)
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	if errors.IsInvalidConfig(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// An *InsufficientDataError reports ErrCodeInsufficientData.
// Returns ErrCodeUnknown if the error carries no code.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var insufficientErr *InsufficientDataError
	if errors.As(err, &insufficientErr) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsInvalidConfig reports whether err is a configuration validation failure.
// Every 1xx validation code except insufficient and out-of-order data counts.
func IsInvalidConfig(err error) bool {
	code := GetCode(err)
	if code == ErrCodeInsufficientData || code == ErrCodeOutOfOrderData {
		return false
	}

	return (code >= 100 && code < 200) || code == ErrCodeStrategyConfigError || code == ErrCodeBacktestConfigError
}

// IsOutOfOrderData reports whether err signals non-monotonic input.
func IsOutOfOrderData(err error) bool {
	return HasCode(err, ErrCodeOutOfOrderData)
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., indicator calculations requiring a minimum period).
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Symbol   string // Optional: symbol context
	Message  string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
