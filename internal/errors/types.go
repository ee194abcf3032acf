package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a failure so the command layer can report it.
type ErrorCode string

const (
	// Configuration and environment.
	ErrCodeConfigDir     ErrorCode = "CONFIG_DIR"
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Stored topology.
	ErrCodeTopologyInvalid ErrorCode = "TOPOLOGY_INVALID"
	ErrCodeIO              ErrorCode = "IO"

	// Multiplexer access.
	ErrCodeMuxUnavailable ErrorCode = "MUX_UNAVAILABLE"
	ErrCodeMuxCommand     ErrorCode = "MUX_COMMAND"

	// General.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error is a structured error carrying a code and optional context.
type Error struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON renders the error for verbose output.
func (e *Error) ToJSON() string {
	payload := struct {
		*Error
		Cause string `json:"cause,omitempty"`
	}{Error: e}
	if e.Cause != nil {
		payload.Cause = e.Cause.Error()
	}
	data, _ := json.MarshalIndent(payload, "", "  ")
	return string(data)
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Cause: err}
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain.
func GetCode(err error) ErrorCode {
	var coded *Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}
