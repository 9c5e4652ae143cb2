package domain

import (
	"errors"
	"fmt"
)

// Kind groups error codes into the four classes callers branch on.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a ledger error with a stable code. Two errors are equal under
// errors.Is when their codes match, so wrapped copies still match the sentinels.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidAmount     = &Error{Kind: KindValidation, Code: "INVALID_AMOUNT", Message: "amount must be a positive whole number of minor units with at most 18 whole digits"}
	ErrProductInactive   = &Error{Kind: KindValidation, Code: "PRODUCT_INACTIVE", Message: "product is not open for new accounts"}
	ErrInvalidOwner      = &Error{Kind: KindValidation, Code: "INVALID_OWNER", Message: "owner id is required"}
	ErrInvalidStatus     = &Error{Kind: KindValidation, Code: "INVALID_STATUS", Message: "unknown account status"}
	ErrInvalidProjection = &Error{Kind: KindValidation, Code: "INVALID_PROJECTION", Message: "principal, rate and months must be non-negative"}

	ErrAccountNotFound = &Error{Kind: KindNotFound, Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}
	ErrProductNotFound = &Error{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "product not found"}

	ErrInsufficientFunds       = &Error{Kind: KindConflict, Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds"}
	ErrAccountNotActive        = &Error{Kind: KindConflict, Code: "ACCOUNT_NOT_ACTIVE", Message: "account is not active"}
	ErrVersionConflict         = &Error{Kind: KindConflict, Code: "VERSION_CONFLICT", Message: "account was modified concurrently"}
	ErrConcurrentUpdate        = &Error{Kind: KindConflict, Code: "CONCURRENT_UPDATE", Message: "account is busy, please retry"}
	ErrDuplicateKey            = &Error{Kind: KindConflict, Code: "DUPLICATE_KEY", Message: "record already exists"}
	ErrInvalidStatusTransition = &Error{Kind: KindConflict, Code: "INVALID_STATUS_TRANSITION", Message: "account status cannot change that way"}
	ErrBalanceNotZero          = &Error{Kind: KindConflict, Code: "BALANCE_NOT_ZERO", Message: "account balance must be zero to close"}

	ErrStorage = &Error{Kind: KindStorage, Code: "STORAGE_UNAVAILABLE", Message: "storage unavailable"}
)

// NewStorageError wraps a persistence failure so it classifies as STORAGE_UNAVAILABLE.
func NewStorageError(op string, err error) error {
	return &Error{
		Kind:    KindStorage,
		Code:    ErrStorage.Code,
		Message: ErrStorage.Message,
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

// KindOf reports the class of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the stable code carried by err, or "" when there is none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
