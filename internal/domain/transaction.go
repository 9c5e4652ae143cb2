package domain

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// Transaction is an immutable record of one balance change. Sequence orders
// transactions within an account and equals the account version written
// alongside it.
type Transaction struct {
	ID           uuid.UUID
	AccountID    uuid.UUID
	Sequence     int64
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}

// Apply returns the balance after applying a transaction of type t to balance.
func (t TransactionType) Apply(balance, amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeWithdrawal {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}
