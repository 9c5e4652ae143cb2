package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/withgossing/bank-app/internal/catalog"
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/operator"
	"github.com/withgossing/bank-app/internal/operator/actions"
	"github.com/withgossing/bank-app/internal/storage/memory"
)

const (
	testOwner   = "owner-1"
	savingsID   = "SAV-001"
	inactiveID  = "SAV-LEGACY"
	testWorkers = 4
)

type ledger struct {
	store     *memory.Store
	delegator *operator.OperatorDelegator
	svc       *Service
	log       *logrus.Logger
	hook      *test.Hook
}

func newLedger(t *testing.T, opts Options) *ledger {
	t.Helper()
	log, hook := test.NewNullLogger()
	store := memory.New()
	delegator := operator.NewOperatorDelegator(store, testWorkers, 64, log)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	return &ledger{
		store:     store,
		delegator: delegator,
		svc:       NewService(store, delegator, catalog.Default(), opts, log),
		log:       log,
		hook:      hook,
	}
}

func (l *ledger) open(t *testing.T) *domain.Account {
	t.Helper()
	account, err := l.svc.Authority.OpenAccount(context.Background(), testOwner, savingsID)
	require.NoError(t, err)
	return account
}

func (l *ledger) balance(t *testing.T, accountNumber string) decimal.Decimal {
	t.Helper()
	account, err := l.svc.Query.GetAccount(context.Background(), accountNumber)
	require.NoError(t, err)
	return account.Balance
}

func (l *ledger) history(t *testing.T, accountNumber string) []*domain.Transaction {
	t.Helper()
	txs, _, err := l.svc.Query.GetTransactions(context.Background(), accountNumber, &TransactionCursor{Limit: maxTransactionLimit, Ascending: true})
	require.NoError(t, err)
	return txs
}

func krw(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// conflictingProcessor fails the first conflicts calls with a version
// conflict, then hands work to next.
type conflictingProcessor struct {
	next      Processor
	conflicts int32
	calls     atomic.Int32
}

func (p *conflictingProcessor) Process(ctx context.Context, action actions.IAction) error {
	if p.calls.Add(1) <= p.conflicts {
		return domain.ErrVersionConflict
	}
	return p.next.Process(ctx, action)
}
