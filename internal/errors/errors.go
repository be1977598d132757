package errors

import (
	"errors"
	"fmt"
)

// Kind classifies the errors surfaced by the auth policy layer.
type Kind int

const (
	// KindBadRequest is returned when client supplied input fails a policy check.
	KindBadRequest Kind = iota + 1
	// KindUnauthorized is returned when the principal cannot be established.
	// Its message is redacted so callers cannot tell why.
	KindUnauthorized
	// KindInternal is an infrastructure failure unrelated to user input.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// AuthError carries a Kind and an internal detail message meant for logs.
type AuthError struct {
	Kind   Kind
	detail string
}

// Sentinels for errors.Is checks. Matching is by Kind only.
var (
	ErrBadRequest   = &AuthError{Kind: KindBadRequest}
	ErrUnauthorized = &AuthError{Kind: KindUnauthorized}
	ErrInternal     = &AuthError{Kind: KindInternal}
)

func BadRequest(detail string) error {
	return &AuthError{Kind: KindBadRequest, detail: detail}
}

// Unauthorized builds a redacted error; detail never appears in Error().
func Unauthorized(detail string) error {
	return &AuthError{Kind: KindUnauthorized, detail: detail}
}

func Internal(detail string) error {
	return &AuthError{Kind: KindInternal, detail: detail}
}

func (e *AuthError) Error() string {
	if e.Kind == KindUnauthorized || e.detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.detail)
}

// Detail returns the internal message. Do not send it to clients.
func (e *AuthError) Detail() string {
	return e.detail
}

func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first AuthError in err's chain, or 0.
func KindOf(err error) Kind {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return 0
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
