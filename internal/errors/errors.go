package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInternal   ErrorType = "internal"
	ErrorTypeConflict   ErrorType = "conflict"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  fmt.Sprintf("%s:%d", file, line),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Handle logs an error at a level chosen by its kind.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var (
		appErr        *AppError
		analysisErr   *AnalysisError
		extractionErr *ExtractionError
		storageErr    *StorageError
		chatErr       *ChatError
	)
	switch {
	case errors.As(err, &analysisErr):
		h.logger.ErrorContext(ctx, "Report analysis failed", analysisErr.LogFields()...)
	case errors.As(err, &extractionErr):
		h.logger.ErrorContext(ctx, "Extraction failed", extractionErr.LogFields()...)
	case errors.As(err, &storageErr):
		h.logger.ErrorContext(ctx, "Storage error", storageErr.LogFields()...)
	case errors.As(err, &chatErr):
		h.logger.WarnContext(ctx, "Chat turn failed", "error", chatErr.Error())
	case errors.As(err, &appErr):
		h.handleAppError(ctx, appErr)
	default:
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation:
		h.logger.WarnContext(ctx, "Validation error", err.LogFields()...)
	case ErrorTypeConflict:
		h.logger.WarnContext(ctx, "Conflict", err.LogFields()...)
	case ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors
var (
	ErrUnsupportedMedia  = New(ErrorTypeValidation, "UNSUPPORTED_MEDIA", "Unsupported document type")
	ErrEmptyDocument     = New(ErrorTypeValidation, "EMPTY_DOCUMENT", "Document is empty")
	ErrEmptyMessage      = New(ErrorTypeValidation, "EMPTY_MESSAGE", "Message is empty")
	ErrAnalysisInFlight  = New(ErrorTypeConflict, "ANALYSIS_IN_FLIGHT", "An analysis is already running")
	ErrInsufficientTrend = New(ErrorTypeValidation, "INSUFFICIENT_TREND", "Not enough data points for a trend")
)

// Convenience functions for common errors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, "VALIDATION", message)
}

func NewUnsupportedMediaError(mimeType string) *AppError {
	return New(ErrorTypeValidation, ErrUnsupportedMedia.Code, fmt.Sprintf("unsupported document type %q", mimeType)).
		WithContext("mime_type", mimeType)
}

func NewInternalError(err error) *AppError {
	return Wrap(err, ErrorTypeInternal, "INTERNAL", "Internal server error")
}
