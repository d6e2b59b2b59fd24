package xerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the assignment engine's failure taxonomy. Every failure
// a caller can branch on maps to exactly one of these.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid assignment transition")
	ErrConflict          = errors.New("conflict: ownership changed concurrently")
	ErrCapacityExceeded  = errors.New("assistant capacity exceeded")
	ErrRecipientInactive = errors.New("recipient account is inactive")
	ErrValidation        = errors.New("invalid input")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrAuditWriteFailed  = errors.New("audit write failed")
	ErrRateLimited       = errors.New("too many requests")
)

// Stable errorKind strings exposed to API consumers.
const (
	KindNotFound          = "NotFound"
	KindForbidden         = "Forbidden"
	KindInvalidTransition = "InvalidTransition"
	KindConflict          = "Conflict"
	KindCapacityExceeded  = "CapacityExceeded"
	KindRecipientInactive = "RecipientInactive"
	KindValidation        = "ValidationError"
	KindStoreUnavailable  = "StoreUnavailable"
	KindAuditWriteFailed  = "AuditWriteFailed"
	KindRateLimited       = "RateLimited"
	KindInternal          = "Internal"
)

// KindOf resolves an error to its stable taxonomy kind. Unrecognized errors
// report as Internal so clients never see an empty kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrUnauthorized):
		return KindForbidden
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrRecipientInactive):
		return KindRecipientInactive
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrAuditWriteFailed):
		return KindAuditWriteFailed
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	default:
		return KindInternal
	}
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
