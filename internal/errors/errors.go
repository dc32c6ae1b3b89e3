package errors

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AppError carries a machine code, operator message and user-facing message
// for every failure the garden engine can report.
type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func (e *AppError) Cause() error {
	return e.Unwrap()
}

// NewValidationError reports malformed command input. The store is untouched
// when this is returned.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: fmt.Sprintf("That doesn't look right. %s", msg),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewNotFoundError reports a reference to an entity that does not exist.
func NewNotFoundError(kind, id string) *AppError {
	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("%s not found: %s", kind, id),
		UserMessage: fmt.Sprintf("Couldn't find that %s.", kind),
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewAlreadyExistsError reports a precondition failure such as adding a
// friend twice or befriending yourself.
func NewAlreadyExistsError(msg string) *AppError {
	return &AppError{
		Code:        "E300",
		Message:     msg,
		UserMessage: msg,
		Severity:    SeverityLow,
		Retryable:   false,
		cause:       nil,
	}
}

// NewTelegramError reports a failure talking to the Telegram API.
func NewTelegramError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E400",
		Message:     fmt.Sprintf("Telegram API error: %s", underlyingMsg),
		UserMessage: "Telegram is not responding right now, try again in a moment.",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewInternalError wraps an unexpected engine failure.
func NewInternalError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E500",
		Message:     fmt.Sprintf("Internal error: %s", underlyingMsg),
		UserMessage: "Something went wrong on our side. Please try again later.",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}
