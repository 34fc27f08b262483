// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// classify failures with errors.Is without caring about the concrete type.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrNotSupported     = errors.New("not supported on this firmware version")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrDeviceComm       = errors.New("device communication failed")
	ErrDeviceRejected   = errors.New("device rejected configuration")
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// ValidationError represents one or more validation failures detected before
// anything was sent to a device.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// Validationf creates a single-message validation error from a format string.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Errors: []string{fmt.Sprintf(format, args...)}}
}

// CapabilityError indicates a feature does not exist at all on the resolved
// firmware version. Distinct from ValidationError so callers can report
// "not supported on this firmware" rather than "bad input".
type CapabilityError struct {
	Family  string // feature family, e.g. "firewall-group"
	Feature string // the missing feature, e.g. "domain-group"
	Version string // resolved version tag
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s is not supported on VyOS %s", e.Family, e.Feature, e.Version)
}

func (e *CapabilityError) Unwrap() error {
	return ErrNotSupported
}

// UnknownOperationError indicates the named operation does not exist for a
// feature family. A programming/integration error; fails closed rather than
// guessing a path.
type UnknownOperationError struct {
	Family    string
	Operation string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("%s: unknown operation %q", e.Family, e.Operation)
}

func (e *UnknownOperationError) Unwrap() error {
	return ErrUnknownOperation
}

// DeviceCommError indicates the device could not be reached (connection,
// timeout, malformed response). Nothing is known to have applied.
type DeviceCommError struct {
	Device string
	Op     string // "configure" or "retrieve"
	Err    error
}

func (e *DeviceCommError) Error() string {
	return fmt.Sprintf("device %s: %s: %v", e.Device, e.Op, e.Err)
}

func (e *DeviceCommError) Unwrap() error {
	return ErrDeviceComm
}

// DeviceRejectedError indicates the device was reached and explicitly
// reported the batch as rejected. Raw carries the device's error text
// verbatim; operators debug against it directly, so it is never paraphrased.
type DeviceRejectedError struct {
	Device string
	Raw    string
}

func (e *DeviceRejectedError) Error() string {
	return fmt.Sprintf("device %s rejected batch: %s", e.Device, e.Raw)
}

func (e *DeviceRejectedError) Unwrap() error {
	return ErrDeviceRejected
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddError adds an error message unconditionally
func (v *ValidationBuilder) AddError(message string) *ValidationBuilder {
	v.errors = append(v.errors, message)
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
