// file: internals/helpers/apperr/apperr.go
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind is the typed failure of an attendance or billing operation.
type Kind string

const (
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindLearnerNotFound    Kind = "LEARNER_NOT_FOUND"
	KindNotFound           Kind = "NOT_FOUND"
	KindNoActiveEnrollment Kind = "NO_ACTIVE_ENROLLMENT"
	KindNoSessionToday     Kind = "NO_SESSION_TODAY"
	KindPaymentRequired    Kind = "PAYMENT_REQUIRED"
	KindAlreadyCheckedOut  Kind = "ALREADY_CHECKED_OUT"
	KindStoreUnavailable   Kind = "STORE_UNAVAILABLE"
	KindGatewayUnavailable Kind = "GATEWAY_UNAVAILABLE"
	KindTimeout            Kind = "TIMEOUT"
	KindInternal           Kind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can compare with the sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrLearnerNotFound    = &Error{Kind: KindLearnerNotFound}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrNoActiveEnrollment = &Error{Kind: KindNoActiveEnrollment}
	ErrNoSessionToday     = &Error{Kind: KindNoSessionToday}
	ErrPaymentRequired    = &Error{Kind: KindPaymentRequired}
	ErrAlreadyCheckedOut  = &Error{Kind: KindAlreadyCheckedOut}
	ErrStoreUnavailable   = &Error{Kind: KindStoreUnavailable}
	ErrGatewayUnavailable = &Error{Kind: KindGatewayUnavailable}
	ErrTimeout            = &Error{Kind: KindTimeout}
)

// KindOf returns the kind carried by err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

/* =========================
   HTTP mapping (single place)
========================= */

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindNoActiveEnrollment, KindNoSessionToday:
		return http.StatusBadRequest
	case KindPaymentRequired:
		return http.StatusForbidden
	case KindLearnerNotFound, KindNotFound:
		return http.StatusNotFound
	case KindAlreadyCheckedOut:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case KindGatewayUnavailable:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text safe to show to the caller.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	switch KindOf(err) {
	case KindTimeout:
		return "request timed out"
	}
	return "internal server error"
}
