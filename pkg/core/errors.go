package core

import (
	"errors"
	"fmt"

	"github.com/anggasct/greentime/pkg/utils"
)

// ErrorCode represents specific error conditions in the allocator
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Lane counts did not contain exactly LaneCount entries
	ErrCodeInvalidLaneCount
	// A lane count was negative
	ErrCodeNegativeCount
	// Allocator configuration is invalid
	ErrCodeInvalidConfiguration
)

// String returns the taxonomy name of the code
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNone:
		return "None"
	case ErrCodeInvalidLaneCount:
		return "InvalidLaneCount"
	case ErrCodeNegativeCount:
		return "NegativeCount"
	case ErrCodeInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Sentinels for errors.Is matching
var (
	// ErrInvalidLaneCount is matched by input errors with ErrCodeInvalidLaneCount
	ErrInvalidLaneCount = errors.New("invalid lane count")

	// ErrNegativeCount is matched by input errors with ErrCodeNegativeCount
	ErrNegativeCount = errors.New("negative lane count")

	// ErrInvalidConfiguration is matched by every ConfigurationError
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// InputError represents a rejected set of lane counts
type InputError struct {
	Code    ErrorCode
	Lane    int // offending lane, -1 when the whole input is at fault
	Value   int // offending count, or the received length
	Message string
}

func (e *InputError) Error() string {
	if e.Lane >= 0 {
		return fmt.Sprintf("input error [%s] lane %d: %s", e.Code, e.Lane, e.Message)
	}
	return fmt.Sprintf("input error [%s]: %s", e.Code, e.Message)
}

// Is matches the sentinel belonging to the error code
func (e *InputError) Is(target error) bool {
	switch e.Code {
	case ErrCodeInvalidLaneCount:
		return target == ErrInvalidLaneCount
	case ErrCodeNegativeCount:
		return target == ErrNegativeCount
	}
	return false
}

// NewInvalidLaneCountError creates an error for input of the wrong length
func NewInvalidLaneCountError(got int) *InputError {
	return &InputError{
		Code:    ErrCodeInvalidLaneCount,
		Lane:    -1,
		Value:   got,
		Message: fmt.Sprintf("exactly %d lane counts are required, got %d", LaneCount, got),
	}
}

// NewNegativeCountError creates an error for a negative lane count
func NewNegativeCountError(lane, count int) *InputError {
	return &InputError{
		Code:    ErrCodeNegativeCount,
		Lane:    lane,
		Value:   count,
		Message: fmt.Sprintf("lane counts cannot be negative, got %d", count),
	}
}

// ConfigurationError represents allocator configuration issues
type ConfigurationError struct {
	Component string
	Issues    []error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, utils.JoinErrors(e.Issues))
}

// Is matches ErrInvalidConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Unwrap exposes the individual issues
func (e *ConfigurationError) Unwrap() []error {
	return e.Issues
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component string, issues []error) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issues:    issues,
	}
}

// IsInputError checks if an error is an InputError
func IsInputError(err error) bool {
	var e *InputError
	return errors.As(err, &e)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Code
	}
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return ErrCodeInvalidConfiguration
	}
	return ErrCodeNone
}
