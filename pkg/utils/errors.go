// Package utils provides utility functions for the greentime allocator
package utils

import (
	"fmt"
	"strings"
)

// ErrorCollector collects multiple errors during validation
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector, ignoring nil
func (ec *ErrorCollector) Add(err error) {
	if err != nil {
		ec.errors = append(ec.errors, err)
	}
}

// HasErrors returns whether any errors were collected
func (ec *ErrorCollector) HasErrors() bool {
	return len(ec.errors) > 0
}

// Errors returns a copy of the collected errors
func (ec *ErrorCollector) Errors() []error {
	result := make([]error, len(ec.errors))
	copy(result, ec.errors)
	return result
}

// Err returns the collector as an error, or nil when empty
func (ec *ErrorCollector) Err() error {
	if !ec.HasErrors() {
		return nil
	}
	return ec
}

// Error returns a string representation of all errors
func (ec *ErrorCollector) Error() string {
	return JoinErrors(ec.errors)
}

// JoinErrors renders a list of errors on one line each
func JoinErrors(errs []error) string {
	if len(errs) == 0 {
		return "no errors"
	}

	if len(errs) == 1 {
		return errs[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(errs)))

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("  %d: %v\n", i+1, err))
	}

	return sb.String()
}
