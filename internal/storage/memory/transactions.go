package memory

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

type transactionReader struct {
	store *Store
}

var _ transaction.ITransactionReader = (*transactionReader)(nil)

func (r *transactionReader) ListByAccount(ctx context.Context, accountID uuid.UUID, filter *transaction.Filter) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return filterTransactions(r.store.transactions[accountID], filter), nil
}

type transactionWriter struct {
	unit *unit
}

var _ transaction.ITransactionWriter = (*transactionWriter)(nil)

// ListByAccount includes transactions appended earlier in the same unit.
func (w *transactionWriter) ListByAccount(ctx context.Context, accountID uuid.UUID, filter *transaction.Filter) ([]*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()

	s := w.unit.store
	s.mu.RLock()
	all := append([]*domain.Transaction(nil), s.transactions[accountID]...)
	s.mu.RUnlock()

	for _, tx := range w.unit.appended {
		if tx.AccountID == accountID {
			all = append(all, tx)
		}
	}
	return filterTransactions(all, filter), nil
}

func (w *transactionWriter) Append(ctx context.Context, tx *domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()
	if w.unit.done {
		return domain.NewStorageError("transactions.Append", errUnitDone)
	}

	if w.appendedFor(tx.AccountID, tx.Sequence) {
		return fmt.Errorf("transactions.Append: %w", domain.ErrDuplicateKey)
	}
	if w.unit.store.hasSequence(tx.AccountID, tx.Sequence) {
		return fmt.Errorf("transactions.Append: %w", domain.ErrDuplicateKey)
	}

	w.unit.appended = append(w.unit.appended, copyTransaction(tx))
	return nil
}

func (w *transactionWriter) appendedFor(accountID uuid.UUID, sequence int64) bool {
	for _, tx := range w.unit.appended {
		if tx.AccountID == accountID && tx.Sequence == sequence {
			return true
		}
	}
	return false
}
