package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
)

const tableName = "transactions"

var columns = []string{
	"id", "account_id", "sequence", "type", "amount", "balance_after", "created_at",
}

type row struct {
	ID           uuid.UUID       `db:"id"`
	AccountID    uuid.UUID       `db:"account_id"`
	Sequence     int64           `db:"sequence"`
	Type         string          `db:"type"`
	Amount       decimal.Decimal `db:"amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	CreatedAt    time.Time       `db:"created_at"`
}

type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// Filter narrows ListByAccount. Cursor is an exclusive sequence bound in
// the direction of Order. A zero Limit returns every match.
type Filter struct {
	Order  Order
	Cursor *int64
	Limit  int
}

// ITransactionReader lists an account's ledger.
type ITransactionReader interface {
	ListByAccount(ctx context.Context, accountID uuid.UUID, filter *Filter) ([]*domain.Transaction, error)
}

// ITransactionWriter appends ledger records. Records are never updated or deleted.
type ITransactionWriter interface {
	ITransactionReader
	Append(ctx context.Context, tx *domain.Transaction) error
}

func rowToTransaction(r *row) *domain.Transaction {
	return &domain.Transaction{
		ID:           r.ID,
		AccountID:    r.AccountID,
		Sequence:     r.Sequence,
		Type:         domain.TransactionType(r.Type),
		Amount:       r.Amount,
		BalanceAfter: r.BalanceAfter,
		CreatedAt:    r.CreatedAt,
	}
}
