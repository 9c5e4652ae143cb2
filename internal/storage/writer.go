package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/withgossing/bank-app/internal/storage/account"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

// Writer is one unit of work. Nothing it does is visible to readers until
// Commit returns nil.
type Writer struct {
	tx           Tx
	Accounts     account.IAccountWriter
	Transactions transaction.ITransactionWriter
}

// NewWriter assembles a unit of work from its parts. Backends that are not
// bob-based use it directly.
func NewWriter(tx Tx, accounts account.IAccountWriter, transactions transaction.ITransactionWriter) *Writer {
	return &Writer{
		tx:           tx,
		Accounts:     accounts,
		Transactions: transactions,
	}
}

func newBobWriter(tx bob.Tx) *Writer {
	return NewWriter(tx, account.NewWriter(tx), transaction.NewWriter(tx))
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
