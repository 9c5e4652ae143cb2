package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

const (
	defaultTransactionLimit = 20
	maxTransactionLimit     = 100
)

// TransactionCursor identifies a position in an account's history. After is
// the last sequence already returned; nil starts at the newest (or oldest,
// when Ascending) transaction.
type TransactionCursor struct {
	After     *int64
	Limit     int
	Ascending bool
}

// Reconciliation compares an account's stored balance with a replay of its
// transaction log from zero.
type Reconciliation struct {
	AccountNumber    string
	StoredBalance    decimal.Decimal
	ReplayedBalance  decimal.Decimal
	TransactionCount int
	Consistent       bool
	// FirstMismatch is the sequence of the first record whose balanceAfter
	// disagrees with the replay.
	FirstMismatch *int64
}

// LedgerQuery is the read path over committed state.
type LedgerQuery struct {
	storage storage.Storage
}

func NewLedgerQuery(store storage.Storage) *LedgerQuery {
	return &LedgerQuery{storage: store}
}

func (q *LedgerQuery) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := q.storage.Reader().Accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return account, nil
}

// ListAccountsForOwner never returns nil accounts without an error.
func (q *LedgerQuery) ListAccountsForOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	accounts, err := q.storage.Reader().Accounts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListAccountsForOwner: %w", err)
	}
	if accounts == nil {
		accounts = []*domain.Account{}
	}
	return accounts, nil
}

// GetTransactions returns one page of history, newest first unless the
// cursor asks for ascending order, and the cursor for the next page.
func (q *LedgerQuery) GetTransactions(ctx context.Context, accountNumber string, cursor *TransactionCursor) ([]*domain.Transaction, *TransactionCursor, error) {
	limit := defaultTransactionLimit
	var after *int64
	ascending := false
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		after = cursor.After
		ascending = cursor.Ascending
	}
	if limit > maxTransactionLimit {
		limit = maxTransactionLimit
	}

	reader := q.storage.Reader()
	account, err := reader.Accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("GetTransactions: %w", err)
	}

	order := transaction.OrderDescending
	if ascending {
		order = transaction.OrderAscending
	}
	filter := &transaction.Filter{
		Order:  order,
		Cursor: after,
		Limit:  limit + 1,
	}

	rows, err := reader.Transactions.ListByAccount(ctx, account.ID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("GetTransactions: %w", err)
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1].Sequence
		nextCursor = &TransactionCursor{
			After:     &last,
			Limit:     limit,
			Ascending: ascending,
		}
	}

	return rows, nextCursor, nil
}

// Reconcile replays the account's log in order. Records written after the
// account snapshot was read are ignored.
func (q *LedgerQuery) Reconcile(ctx context.Context, accountNumber string) (*Reconciliation, error) {
	reader := q.storage.Reader()
	account, err := reader.Accounts.Get(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("Reconcile: %w", err)
	}

	rows, err := reader.Transactions.ListByAccount(ctx, account.ID, &transaction.Filter{Order: transaction.OrderAscending})
	if err != nil {
		return nil, fmt.Errorf("Reconcile: %w", err)
	}

	result := &Reconciliation{
		AccountNumber:   account.AccountNumber,
		StoredBalance:   account.Balance,
		ReplayedBalance: decimal.Zero,
	}
	previous := int64(0)
	for _, tx := range rows {
		if tx.Sequence > account.Version {
			break
		}
		result.TransactionCount++
		result.ReplayedBalance = tx.Type.Apply(result.ReplayedBalance, tx.Amount)

		if result.FirstMismatch == nil && (tx.Sequence <= previous || !tx.BalanceAfter.Equal(result.ReplayedBalance)) {
			seq := tx.Sequence
			result.FirstMismatch = &seq
		}
		previous = tx.Sequence
	}

	result.Consistent = result.FirstMismatch == nil && result.ReplayedBalance.Equal(account.Balance)
	return result, nil
}
