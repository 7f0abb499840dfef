package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind is the machine-readable tag of a business error. Controllers map kinds
// to HTTP status codes; services never touch HTTP concerns.
type Kind string

const (
	KindAccountNotFound     Kind = "AccountNotFound"
	KindInsufficientCredits Kind = "InsufficientCredits"
	KindNotFound            Kind = "NotFound"
	KindValidation          Kind = "Validation"
	KindConflict            Kind = "Conflict"
	KindUnauthorized        Kind = "Unauthorized"
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// KindOf extracts the kind from any error in the chain, or "" if it is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// AccountNotFound reports a debit against a user with no credit account.
func AccountNotFound(userId uuid.UUID) *AppError {
	return &AppError{
		Kind:    KindAccountNotFound,
		Message: fmt.Sprintf("no credit account found for user %s", userId),
	}
}

// InsufficientCredits reports a debit that would push usage past the allotment.
func InsufficientCredits(requested, remaining int) *AppError {
	return &AppError{
		Kind:    KindInsufficientCredits,
		Message: fmt.Sprintf("requested %d credits but only %d remaining", requested, remaining),
	}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}
