package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ExtractionCause classifies why a single extraction request failed.
type ExtractionCause string

const (
	CauseNetwork           ExtractionCause = "network"
	CauseMalformedResponse ExtractionCause = "malformed_response"
	CauseServiceRejected   ExtractionCause = "service_rejected"
)

// ExtractionError is returned by one structured extraction call.
type ExtractionError struct {
	Part  string
	Cause ExtractionCause
	Err   error
}

func NewExtractionError(part string, cause ExtractionCause, err error) *ExtractionError {
	return &ExtractionError{Part: part, Cause: cause, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s: %s", e.Part, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s: %v", e.Part, e.Cause, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// LogFields returns structured logging fields
func (e *ExtractionError) LogFields() []interface{} {
	fields := []interface{}{"part", e.Part, "cause", string(e.Cause)}
	if e.Err != nil {
		fields = append(fields, "internal_error", e.Err.Error())
	}
	return fields
}

// AnalysisError aggregates the failed halves of a report analysis.
// It always carries at least one failure.
type AnalysisError struct {
	Failures []*ExtractionError
}

func (e *AnalysisError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return "analysis failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes every underlying extraction failure to errors.Is/As.
func (e *AnalysisError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f)
	}
	return out
}

// HasCause reports whether any failure has the given cause.
func (e *AnalysisError) HasCause(cause ExtractionCause) bool {
	for _, f := range e.Failures {
		if f.Cause == cause {
			return true
		}
	}
	return false
}

// LogFields returns structured logging fields
func (e *AnalysisError) LogFields() []interface{} {
	fields := []interface{}{"failures", len(e.Failures)}
	for _, f := range e.Failures {
		fields = append(fields, "failed_"+f.Part, string(f.Cause))
	}
	return append(fields, "error", e.Error())
}

// StorageError is returned when the key/value store cannot be read or written.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// LogFields returns structured logging fields
func (e *StorageError) LogFields() []interface{} {
	fields := []interface{}{"op", e.Op, "key", e.Key}
	if e.Err != nil {
		fields = append(fields, "internal_error", e.Err.Error())
	}
	return fields
}

// ChatError wraps a failed conversational turn. Sessions recover from it locally.
type ChatError struct {
	Err error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat: %v", e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a validation AppError.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ErrorTypeValidation
}
