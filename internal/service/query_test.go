package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withgossing/bank-app/internal/domain"
)

func TestListAccountsForOwner(t *testing.T) {
	l := newLedger(t, Options{})
	ctx := context.Background()

	none, err := l.svc.Query.ListAccountsForOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	first := l.open(t)
	second := l.open(t)
	_, err = l.svc.Authority.OpenAccount(ctx, "someone-else", savingsID)
	require.NoError(t, err)

	accounts, err := l.svc.Query.ListAccountsForOwner(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	numbers := []string{accounts[0].AccountNumber, accounts[1].AccountNumber}
	assert.ElementsMatch(t, []string{first.AccountNumber, second.AccountNumber}, numbers)
}

func TestGetAccount_NotFound(t *testing.T) {
	l := newLedger(t, Options{})

	_, err := l.svc.Query.GetAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetTransactions_Pagination(t *testing.T) {
	l := newLedger(t, Options{})
	ctx := context.Background()
	account := l.open(t)
	for i := int64(1); i <= 5; i++ {
		_, _, err := l.svc.Authority.Deposit(ctx, account.AccountNumber, krw(i))
		require.NoError(t, err)
	}

	page, next, err := l.svc.Query.GetTransactions(ctx, account.AccountNumber, &TransactionCursor{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, []int64{5, 4}, []int64{page[0].Sequence, page[1].Sequence})
	require.NotNil(t, next)
	assert.Equal(t, int64(4), *next.After)

	page, next, err = l.svc.Query.GetTransactions(ctx, account.AccountNumber, next)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, []int64{page[0].Sequence, page[1].Sequence})
	require.NotNil(t, next)

	page, next, err = l.svc.Query.GetTransactions(ctx, account.AccountNumber, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(1), page[0].Sequence)
	assert.Nil(t, next)
}

func TestGetTransactions_Ascending(t *testing.T) {
	l := newLedger(t, Options{})
	ctx := context.Background()
	account := l.open(t)
	for i := int64(1); i <= 3; i++ {
		_, _, err := l.svc.Authority.Deposit(ctx, account.AccountNumber, krw(10))
		require.NoError(t, err)
	}

	page, next, err := l.svc.Query.GetTransactions(ctx, account.AccountNumber, &TransactionCursor{Ascending: true})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, page, 3)
	for i, tx := range page {
		assert.True(t, tx.BalanceAfter.Equal(krw(int64(10*(i+1)))))
	}
}

func TestGetTransactions_DefaultsAndNotFound(t *testing.T) {
	l := newLedger(t, Options{})
	account := l.open(t)

	page, next, err := l.svc.Query.GetTransactions(context.Background(), account.AccountNumber, nil)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Nil(t, next)

	_, _, err = l.svc.Query.GetTransactions(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestReconcile_Consistent(t *testing.T) {
	l := newLedger(t, Options{})
	ctx := context.Background()
	account := l.open(t)
	_, _, err := l.svc.Authority.Deposit(ctx, account.AccountNumber, krw(500))
	require.NoError(t, err)
	_, _, err = l.svc.Authority.Withdraw(ctx, account.AccountNumber, krw(120))
	require.NoError(t, err)

	got, err := l.svc.Query.Reconcile(ctx, account.AccountNumber)
	require.NoError(t, err)
	assert.True(t, got.Consistent)
	assert.Equal(t, 2, got.TransactionCount)
	assert.True(t, got.ReplayedBalance.Equal(krw(380)))
	assert.True(t, got.StoredBalance.Equal(krw(380)))
	assert.Nil(t, got.FirstMismatch)
}

func TestReconcile_DetectsDrift(t *testing.T) {
	l := newLedger(t, Options{})
	ctx := context.Background()
	account := l.open(t)
	_, _, err := l.svc.Authority.Deposit(ctx, account.AccountNumber, krw(500))
	require.NoError(t, err)

	// Write a record whose balanceAfter disagrees with the replay, bypassing the authority.
	w, err := l.store.Write(ctx)
	require.NoError(t, err)
	current, err := w.Accounts.Get(ctx, account.AccountNumber)
	require.NoError(t, err)
	current.Balance = krw(600)
	require.NoError(t, w.Accounts.Put(ctx, current))
	require.NoError(t, w.Transactions.Append(ctx, &domain.Transaction{
		ID:           uuid.Must(uuid.NewV7()),
		AccountID:    account.ID,
		Sequence:     current.Version,
		Type:         domain.TransactionTypeDeposit,
		Amount:       krw(50),
		BalanceAfter: krw(600),
		CreatedAt:    time.Now().UTC(),
	}))
	require.NoError(t, w.Commit(ctx))

	got, err := l.svc.Query.Reconcile(ctx, account.AccountNumber)
	require.NoError(t, err)
	assert.False(t, got.Consistent)
	require.NotNil(t, got.FirstMismatch)
	assert.Equal(t, int64(2), *got.FirstMismatch)
	assert.True(t, got.ReplayedBalance.Equal(krw(550)))
}
