package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

func newAccount(t *testing.T, number string) *domain.Account {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	now := time.Now().UTC()
	return &domain.Account{
		ID:            id,
		AccountNumber: number,
		OwnerID:       "owner-1",
		ProductID:     "SAV-001",
		Balance:       decimal.Zero,
		Status:        domain.AccountStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func createCommitted(t *testing.T, s *Store, a *domain.Account) {
	t.Helper()
	ctx := context.Background()
	w, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Accounts.Create(ctx, a))
	require.NoError(t, w.Commit(ctx))
}

func TestStore_CreateVisibleOnlyAfterCommit(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")

	w, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Accounts.Create(ctx, a))

	_, err = s.Reader().Accounts.Get(ctx, a.AccountNumber)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	staged, err := w.Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, a.ID, staged.ID)

	require.NoError(t, w.Commit(ctx))

	got, err := s.Reader().Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, int64(0), got.Version)
}

func TestStore_CreateDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	s := New()
	createCommitted(t, s, newAccount(t, "110-000001-01"))

	w, err := s.Write(ctx)
	require.NoError(t, err)
	err = w.Accounts.Create(ctx, newAccount(t, "110-000001-01"))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestStore_PutBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	w, err := s.Write(ctx)
	require.NoError(t, err)
	current, err := w.Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	current.Balance = decimal.NewFromInt(100)
	require.NoError(t, w.Accounts.Put(ctx, current))
	assert.Equal(t, int64(1), current.Version)
	require.NoError(t, w.Commit(ctx))

	got, err := s.Reader().Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))
}

func TestStore_PutStaleVersion(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	w, err := s.Write(ctx)
	require.NoError(t, err)
	stale := *a
	stale.Version = 7
	err = w.Accounts.Put(ctx, &stale)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.Equal(t, int64(7), stale.Version)
}

func TestStore_CommitDetectsInterleavedWriter(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	first, err := s.Write(ctx)
	require.NoError(t, err)
	second, err := s.Write(ctx)
	require.NoError(t, err)

	one, err := first.Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	two, err := second.Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)

	one.Balance = decimal.NewFromInt(10)
	two.Balance = decimal.NewFromInt(20)
	require.NoError(t, first.Accounts.Put(ctx, one))
	require.NoError(t, second.Accounts.Put(ctx, two))

	require.NoError(t, first.Commit(ctx))
	err = second.Commit(ctx)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	got, err := s.Reader().Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)))
}

func TestStore_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	w, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Transactions.Append(ctx, &domain.Transaction{
		ID: uuid.Must(uuid.NewV7()), AccountID: a.ID, Sequence: 1,
		Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(5),
	}))
	require.NoError(t, w.Rollback(ctx))

	txs, err := s.Reader().Transactions.ListByAccount(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestStore_CommitWithCancelledContext(t *testing.T) {
	s := New()
	a := newAccount(t, "110-000001-01")

	ctx, cancel := context.WithCancel(context.Background())
	w, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Accounts.Create(ctx, a))
	cancel()

	err = w.Commit(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.Reader().Accounts.Get(context.Background(), a.AccountNumber)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestStore_AppendDuplicateSequence(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	tx := &domain.Transaction{
		ID: uuid.Must(uuid.NewV7()), AccountID: a.ID, Sequence: 1,
		Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(5), BalanceAfter: decimal.NewFromInt(5),
	}

	w, err := s.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Transactions.Append(ctx, tx))
	dup := *tx
	dup.ID = uuid.Must(uuid.NewV7())
	assert.ErrorIs(t, w.Transactions.Append(ctx, &dup), domain.ErrDuplicateKey)
	require.NoError(t, w.Commit(ctx))

	w, err = s.Write(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, w.Transactions.Append(ctx, &dup), domain.ErrDuplicateKey)
}

func TestStore_ListByAccountFilter(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	w, err := s.Write(ctx)
	require.NoError(t, err)
	for seq := int64(1); seq <= 5; seq++ {
		require.NoError(t, w.Transactions.Append(ctx, &domain.Transaction{
			ID: uuid.Must(uuid.NewV7()), AccountID: a.ID, Sequence: seq,
			Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(1), BalanceAfter: decimal.NewFromInt(seq),
		}))
	}
	require.NoError(t, w.Commit(ctx))

	sequences := func(txs []*domain.Transaction) []int64 {
		out := make([]int64, len(txs))
		for i, tx := range txs {
			out[i] = tx.Sequence
		}
		return out
	}

	cursor := int64(4)
	tests := []struct {
		name   string
		filter *transaction.Filter
		want   []int64
	}{
		{name: "nil filter ascending", filter: nil, want: []int64{1, 2, 3, 4, 5}},
		{name: "descending", filter: &transaction.Filter{Order: transaction.OrderDescending}, want: []int64{5, 4, 3, 2, 1}},
		{name: "limit", filter: &transaction.Filter{Limit: 2}, want: []int64{1, 2}},
		{name: "descending cursor", filter: &transaction.Filter{Order: transaction.OrderDescending, Cursor: &cursor, Limit: 2}, want: []int64{3, 2}},
		{name: "ascending cursor", filter: &transaction.Filter{Order: transaction.OrderAscending, Cursor: &cursor}, want: []int64{5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs, err := s.Reader().Transactions.ListByAccount(ctx, a.ID, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sequences(txs))
		})
	}
}

func TestStore_ListByOwnerIsEmptySlice(t *testing.T) {
	accounts, err := New().Reader().Accounts.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := newAccount(t, "110-000001-01")
	createCommitted(t, s, a)

	got, err := s.Reader().Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	got.Balance = decimal.NewFromInt(1_000_000)

	again, err := s.Reader().Accounts.Get(ctx, a.AccountNumber)
	require.NoError(t, err)
	assert.True(t, again.Balance.IsZero())
}
