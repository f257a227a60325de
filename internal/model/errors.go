package model

import (
	"fmt"
	"strings"
)

// Stage codes attached to failed ProcessingResults.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeBuildError      = "BUILD_ERROR"
	CodeSignError       = "SIGN_ERROR"
	CodeTimeout         = "TIMEOUT"
	CodeConnectionError = "CONNECTION_ERROR"
	CodeUnknownError    = "UNKNOWN_ERROR"
)

// ValidationError represents business-rule violations. It carries every
// failed check, not just the first one.
type ValidationError struct {
	DocumentNumber string
	Errors         []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invoice %s failed validation: %s", e.DocumentNumber, strings.Join(e.Errors, ", "))
}

// NewValidationError creates a new validation error
func NewValidationError(documentNumber string, errors []string) *ValidationError {
	return &ValidationError{
		DocumentNumber: documentNumber,
		Errors:         errors,
	}
}

// BuildError represents a failure to construct the UBL document
type BuildError struct {
	DocumentNumber string
	Message        string
	Cause          error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("build failed for %s: %s (%v)", e.DocumentNumber, e.Message, e.Cause)
	}
	return fmt.Sprintf("build failed for %s: %s", e.DocumentNumber, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

// NewBuildError creates a new build error
func NewBuildError(documentNumber, message string, cause error) *BuildError {
	return &BuildError{
		DocumentNumber: documentNumber,
		Message:        message,
		Cause:          cause,
	}
}

// Error codes for signing failures
const (
	SignCodeKeystoreOpen    = "KEYSTORE_OPEN"
	SignCodeKeystoreDecrypt = "KEYSTORE_DECRYPT"
	SignCodeSigningFailed   = "SIGNING_FAILED"
)

// SignError represents keystore or signing failures
type SignError struct {
	Code    string
	Message string
	Cause   error
}

func (e *SignError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SignError) Unwrap() error {
	return e.Cause
}

// NewSignError creates a new sign error
func NewSignError(code, message string, cause error) *SignError {
	return &SignError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// TransmissionError represents a failed exchange with the authority endpoint.
// Code is TIMEOUT, CONNECTION_ERROR, UNKNOWN_ERROR or a numeric HTTP status.
type TransmissionError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TransmissionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *TransmissionError) Unwrap() error {
	return e.Cause
}

// NewTransmissionError creates a new transmission error
func NewTransmissionError(code, message string, cause error) *TransmissionError {
	return &TransmissionError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// AckParseError represents a malformed acknowledgement document
type AckParseError struct {
	Message string
	Cause   error
}

func (e *AckParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("acknowledgement parse failed: %s (%v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("acknowledgement parse failed: %s", e.Message)
}

func (e *AckParseError) Unwrap() error {
	return e.Cause
}
