package domain

import "errors"

// ErrorKind classifies why an interaction did not produce a completion.
type ErrorKind string

const (
	KindConfigMissing       ErrorKind = "ConfigMissing"
	KindProviderUnavailable ErrorKind = "ProviderUnavailable"
	KindEmptyInput          ErrorKind = "EmptyInput"
	KindProviderError       ErrorKind = "ProviderError"
)

// Fatal reports whether the condition blocks every interaction, not just this one.
func (k ErrorKind) Fatal() bool {
	return k == KindConfigMissing
}

// CopilotError is the only error type an interaction surfaces. Message is
// meant for the user; Err keeps the underlying cause.
type CopilotError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string, err error) *CopilotError {
	return &CopilotError{Kind: kind, Message: message, Err: err}
}

func (e *CopilotError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *CopilotError) Unwrap() error {
	return e.Err
}

// Is matches any CopilotError of the same kind, so callers can write
// errors.Is(err, domain.ErrEmptyInput).
func (e *CopilotError) Is(target error) bool {
	var t *CopilotError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrConfigMissing       = &CopilotError{Kind: KindConfigMissing, Message: "configuration missing"}
	ErrProviderUnavailable = &CopilotError{Kind: KindProviderUnavailable, Message: "provider unavailable"}
	ErrEmptyInput          = &CopilotError{Kind: KindEmptyInput, Message: "empty input"}
	ErrProviderError       = &CopilotError{Kind: KindProviderError, Message: "provider error"}
)

// KindOf returns the kind carried by err, or "" when err is not a CopilotError.
func KindOf(err error) ErrorKind {
	var ce *CopilotError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// Describe returns the kind of err and the message shown to the user.
// Errors that are not CopilotErrors are reported as ProviderError.
func Describe(err error) (ErrorKind, string) {
	var ce *CopilotError
	if !errors.As(err, &ce) {
		return KindProviderError, err.Error()
	}
	msg := ce.Message
	if ce.Err != nil {
		msg += ": " + ce.Err.Error()
	}
	return ce.Kind, msg
}
