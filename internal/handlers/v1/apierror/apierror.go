// Package apierror renders ledger errors as JSON bodies of the form
// {status, code, message}.
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/withgossing/bank-app/internal/domain"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "REQUEST_TIMEOUT"
)

// Error satisfies huma.StatusError.
type Error struct {
	Status  int    `json:"status" doc:"HTTP status code"`
	Code    string `json:"code" doc:"Stable machine readable error code"`
	Message string `json:"message" doc:"Human readable message"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.Status
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, message)
}

// BadRequest reports malformed input with the code of the matching ledger error.
func BadRequest(cause *domain.Error, message string) *Error {
	return New(http.StatusBadRequest, cause.Code, message)
}

// From maps err onto an HTTP status. Messages of unclassified errors are not
// exposed.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return New(http.StatusRequestTimeout, CodeTimeout, "request cancelled before completion")
	}

	var ledgerErr *domain.Error
	if !errors.As(err, &ledgerErr) {
		return New(http.StatusInternalServerError, CodeInternal, "internal error")
	}

	return New(statusFor(ledgerErr), ledgerErr.Code, ledgerErr.Message)
}

func statusFor(err *domain.Error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrAccountNotActive):
		return http.StatusUnprocessableEntity
	}

	switch err.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
