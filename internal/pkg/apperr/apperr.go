package apperr

import "errors"

// Kind classifies a domain error so HTTP handlers and batch reports can map
// it without knowing every sentinel.
type Kind string

const (
	KindNotFound     Kind = "NOT_FOUND"
	KindValidation   Kind = "VALIDATION"
	KindInvalidState Kind = "INVALID_STATE"
	KindBusinessRule Kind = "BUSINESS_RULE"
	KindExternal     Kind = "EXTERNAL_SERVICE"
)

// Error carries a kind plus a user-facing message. Wraps an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func BusinessRule(msg string) *Error { return &Error{Kind: KindBusinessRule, Message: msg} }

func External(msg string, cause error) *Error {
	return &Error{Kind: KindExternal, Message: msg, Err: cause}
}

// KindOf extracts the Kind from err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
