package authapi

import (
	goerrors "github.com/goliatone/go-errors"
)

// Kind is the closed enumeration of failure signals a flow can raise.
// The values are stable wire-level tags; the classifier is the only
// consumer that turns them into a public response.
type Kind string

const (
	KindNoAuthorizationToken Kind = "NoAuthorizationToken"
	KindMissingParameters    Kind = "MissingParameters"
	KindNotAcceptable        Kind = "NotAcceptable"
	KindNotFound             Kind = "NotFound"
	KindForbidden            Kind = "Forbidden"
	KindInvalidValue         Kind = "InvalidValue"
	KindBadRequest           Kind = "BadRequest"
	KindCredentialsError     Kind = "CredentialsError"
	KindInvalidEmail         Kind = "InvalidEmail"
	KindDuplicateEmail       Kind = "DuplicateEmail"
	KindUnauthorized         Kind = "UnauthorizedError"
	KindInactiveAccount      Kind = "InactiveAccount"
	KindExistingUser         Kind = "ExistingUser"
	KindIsLocked             Kind = "IsLockedError"
	KindTokenExpired         Kind = "TokenExpired"
	KindDeletionForbidden    Kind = "DeletionForbidden"
)

// Shared signals for the kinds that carry no variable detail. They are
// never mutated after construction; detail-bearing kinds go through
// SignalWithDetail instead.
var (
	ErrNoAuthorizationToken = Signal(KindNoAuthorizationToken)
	ErrMissingParameters    = Signal(KindMissingParameters)
	ErrNotAcceptable        = Signal(KindNotAcceptable)
	ErrNotFound             = Signal(KindNotFound)
	ErrForbidden            = Signal(KindForbidden)
	ErrInvalidValue         = Signal(KindInvalidValue)
	ErrBadRequest           = Signal(KindBadRequest)
	ErrCredentials          = Signal(KindCredentialsError)
	ErrInvalidEmail         = Signal(KindInvalidEmail)
	ErrDuplicateEmail       = Signal(KindDuplicateEmail)
	ErrUnauthorized         = Signal(KindUnauthorized)
	ErrTokenExpired         = Signal(KindTokenExpired)
)

// Signal creates a rich error tagged with the given kind.
func Signal(kind Kind) *goerrors.Error {
	category, code := kindCategory(kind)
	return goerrors.New(string(kind), category).
		WithTextCode(string(kind)).
		WithCode(code)
}

// SignalWithDetail creates a signal for the detail-bearing kinds
// (InactiveAccount, ExistingUser, IsLockedError, DeletionForbidden).
// The detail travels as structured metadata; classification matches on
// the kind alone, so the text can vary per call site without touching
// the public status or error code.
func SignalWithDetail(kind Kind, detail string) *goerrors.Error {
	err := Signal(kind)
	if detail != "" {
		err = err.WithMetadata(map[string]any{"detail": detail})
	}
	return err
}

// KindOf extracts the signal kind from an error chain. The second
// return is false for errors that never went through Signal, which the
// classifier treats as internal faults.
func KindOf(err error) (Kind, bool) {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return "", false
	}
	if richErr.TextCode == "" {
		return "", false
	}
	return Kind(richErr.TextCode), true
}

func kindCategory(kind Kind) (goerrors.Category, int) {
	switch kind {
	case KindMissingParameters, KindInvalidValue, KindBadRequest, KindInvalidEmail:
		return goerrors.CategoryValidation, goerrors.CodeBadRequest
	case KindNotFound:
		return goerrors.CategoryNotFound, goerrors.CodeNotFound
	case KindDuplicateEmail, KindExistingUser, KindIsLocked:
		return goerrors.CategoryConflict, goerrors.CodeConflict
	case KindNotAcceptable:
		return goerrors.CategoryValidation, goerrors.CodeBadRequest
	case KindForbidden, KindDeletionForbidden:
		return goerrors.CategoryAuthz, goerrors.CodeForbidden
	case KindNoAuthorizationToken, KindCredentialsError, KindUnauthorized,
		KindInactiveAccount, KindTokenExpired:
		return goerrors.CategoryAuth, goerrors.CodeUnauthorized
	default:
		return goerrors.CategoryOperation, goerrors.CodeBadRequest
	}
}
