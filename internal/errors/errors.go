package errors

import "fmt"

// Kind classifies an error so callers can branch on it without string
// matching. Store and internal errors are logged with full detail at the
// handler boundary and surfaced to clients as a generic failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAlreadyExists
	KindUnauthorized
	KindBadRequest
	KindStore
	KindInternal
)

// Error is a tagged error carrying a kind, a caller-facing message, and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two *Error values by kind and message, so the sentinel values
// below work with errors.Is even when a cause has been attached.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind of err, walking wrapped causes. Errors that are
// not *Error report KindUnknown.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

var (
	ErrInvalidCredentials    = New(KindUnauthorized, "invalid email or password")
	ErrEmailAlreadyInUse     = New(KindAlreadyExists, "email already in use")
	ErrInvalidResetToken     = New(KindBadRequest, "invalid or expired reset token")
	ErrUserNotActive         = New(KindUnauthorized, "user not active or not found")
	ErrTokenMalformed        = New(KindUnauthorized, "token is malformed")
	ErrTokenSignatureInvalid = New(KindUnauthorized, "token signature is invalid")
	ErrTokenExpired          = New(KindUnauthorized, "token is expired")
	ErrCorruptedHash         = New(KindStore, "stored password hash is corrupted")
)
