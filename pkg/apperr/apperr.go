// Package apperr defines the error taxonomy shared by services and the HTTP
// layer. Every service failure is an *Error carrying a Kind; the response
// package turns the Kind into a status code and the messages into the
// envelope's errorMessages list.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindCredentialConflict Kind = "credential_conflict"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotFound           Kind = "not_found"
	KindBadRequest         Kind = "bad_request"
	KindInvalidArgument    Kind = "invalid_argument"
	KindRoleAssignment     Kind = "role_assignment"
	KindPersistence        Kind = "persistence"
	KindSigning            Kind = "signing"
)

// Error is a classified failure with one or more client-facing messages.
// Err, when set, is the underlying cause and is never shown to clients.
type Error struct {
	Kind     Kind
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && len(t.Messages) == 0 && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrCredentialConflict = &Error{Kind: KindCredentialConflict}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrBadRequest         = &Error{Kind: KindBadRequest}
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
	ErrRoleAssignment     = &Error{Kind: KindRoleAssignment}
	ErrPersistence        = &Error{Kind: KindPersistence}
	ErrSigning            = &Error{Kind: KindSigning}
)

func Validation(msgs ...string) *Error { return &Error{Kind: KindValidation, Messages: msgs} }

func CredentialConflict(msg string) *Error {
	return &Error{Kind: KindCredentialConflict, Messages: []string{msg}}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Messages: []string{"Invalid credentials"}}
}

func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Messages: []string{msg}} }
func BadRequest(msg string) *Error { return &Error{Kind: KindBadRequest, Messages: []string{msg}} }

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Messages: []string{msg}}
}

func RoleAssignment(msg string, err error) *Error {
	return &Error{Kind: KindRoleAssignment, Messages: []string{msg}, Err: err}
}

func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Messages: []string{msg}, Err: err}
}

func Signing(err error) *Error {
	return &Error{Kind: KindSigning, Messages: []string{"Could not issue token"}, Err: err}
}

// StatusOf maps err to an HTTP status. Unclassified errors are 500.
func StatusOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case KindValidation, KindCredentialConflict, KindInvalidCredentials,
		KindBadRequest, KindInvalidArgument, KindRoleAssignment:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MessagesOf returns the client-facing messages for err. Unclassified errors
// collapse to a generic message so internals never leak.
func MessagesOf(err error) []string {
	var e *Error
	if !errors.As(err, &e) || len(e.Messages) == 0 {
		return []string{"Internal server error"}
	}
	return append([]string(nil), e.Messages...)
}
