package apperr

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeAdminShutdown        = "57P01"
	codeQueryCanceled        = "57014"
)

// SQLState extracts the SQLSTATE from pgx or lib/pq errors.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsTransient reports errors worth another attempt: connection class 08,
// serialization failure, deadlock and admin shutdown.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	code := SQLState(err)
	switch {
	case strings.HasPrefix(code, "08"):
		return true
	case code == codeSerializationFailure, code == codeDeadlockDetected, code == codeAdminShutdown:
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return SQLState(err) == codeUniqueViolation
}

// FromStore converts a raw store error into a typed one.
// Typed errors pass through untouched.
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || SQLState(err) == codeQueryCanceled {
		return Wrap(KindTimeout, err, "request timed out")
	}
	if msg == "" {
		msg = "attendance store unavailable"
	}
	return Wrap(KindStoreUnavailable, err, msg)
}
