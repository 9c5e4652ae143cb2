package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusClosed   AccountStatus = "CLOSED"
)

// ParseAccountStatus accepts the canonical upper-case status names.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case AccountStatusActive, AccountStatusInactive, AccountStatusClosed:
		return AccountStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Account is a ledger account. Balance is never negative. Version starts at 0
// and is bumped by the store on every successful Put.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	OwnerID       string
	ProductID     string
	Balance       decimal.Decimal
	Status        AccountStatus
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CanTransitionTo reports whether the status change is allowed. CLOSED is terminal.
func (a *Account) CanTransitionTo(next AccountStatus) bool {
	if a.Status == AccountStatusClosed {
		return false
	}
	switch next {
	case AccountStatusActive, AccountStatusInactive, AccountStatusClosed:
		return next != a.Status
	}
	return false
}
