package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call. It is decided where the response is
// received, so callers never have to inspect status codes or messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindRemoteUnavailable
	KindInvalidCredentials
	KindUsernameTaken
	KindUnauthorized
	KindNotFound
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindRemoteUnavailable:
		return "remote unavailable"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindUsernameTaken:
		return "username taken"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method.
type Error struct {
	Kind    Kind
	Op      string // client operation, e.g. "login"
	Status  int    // HTTP status, 0 for transport failures
	Message string // message reported by the server, if any
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the sentinels below work with
// errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrUnavailable        = &Error{Kind: KindRemoteUnavailable}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrUsernameTaken      = &Error{Kind: KindUsernameTaken}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
)

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// statusKinds maps HTTP statuses to kinds for one call site. Statuses that
// are not listed are reported as KindRemoteUnavailable.
type statusKinds map[int]Kind

// 5xx and transport errors are always KindRemoteUnavailable.
var (
	loginKinds = statusKinds{
		400: KindInvalidInput,
		401: KindInvalidCredentials,
		404: KindInvalidCredentials,
	}
	signupKinds = statusKinds{
		400: KindInvalidInput,
		409: KindUsernameTaken,
	}
	restoreKinds = statusKinds{
		401: KindInvalidCredentials,
		403: KindInvalidCredentials,
		404: KindNotFound,
	}
	mutationKinds = statusKinds{
		400: KindInvalidInput,
		401: KindUnauthorized,
		403: KindUnauthorized,
		404: KindNotFound,
	}
	readKinds = statusKinds{
		400: KindInvalidInput,
		404: KindNotFound,
	}
)

func (m statusKinds) kind(status int) Kind {
	if status >= 500 {
		return KindRemoteUnavailable
	}
	if k, ok := m[status]; ok {
		return k
	}
	return KindRemoteUnavailable
}
