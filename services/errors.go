package services

import "errors"

type Kind string

const (
	KindAuth              Kind = "auth"
	KindValidation        Kind = "validation"
	KindParse             Kind = "parse"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindNotFound          Kind = "not_found"
	KindUpstream          Kind = "upstream"
)

// Error is what services hand back to the HTTP layer. Message is safe to
// show to the client; Err is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Debug   map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// AsError extracts a service error, wrapping anything else as upstream.
func AsError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return newError(KindUpstream, "Internal server error", err)
}
