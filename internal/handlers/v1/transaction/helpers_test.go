package transaction

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/withgossing/bank-app/internal/auth"
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/service"
)

const testSecret = "handler-test-secret"

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// mockLedger is a mock for transactionPoster and transactionLister.
type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockLedger) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	return m.post(m.Called(ctx, accountNumber, amount))
}

func (m *mockLedger) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	return m.post(m.Called(ctx, accountNumber, amount))
}

func (m *mockLedger) post(args mock.Arguments) (*domain.Account, *domain.Transaction, error) {
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *mockLedger) GetTransactions(ctx context.Context, accountNumber string, cursor *service.TransactionCursor) ([]*domain.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, accountNumber, cursor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return args.Get(0).([]*domain.Transaction), next, args.Error(2)
}

// newTestAPI registers the transaction handlers behind the auth middleware.
func newTestAPI(t *testing.T, svc *mockLedger) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api, testSecret))
	NewCreateTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func bearer(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := auth.GenerateToken(ownerID, testSecret, time.Hour)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func testAccount(ownerID string, balance int64, version int64) *domain.Account {
	return &domain.Account{
		ID:            uuid.Must(uuid.NewV7()),
		AccountNumber: "110-000001-01",
		OwnerID:       ownerID,
		ProductID:     "SAV-001",
		Balance:       decimal.NewFromInt(balance),
		Status:        domain.AccountStatusActive,
		Version:       version,
		CreatedAt:     testTime,
		UpdatedAt:     testTime,
	}
}

func testTransaction(accountID uuid.UUID, seq int64, txType domain.TransactionType, amount, after int64) *domain.Transaction {
	return &domain.Transaction{
		ID:           uuid.Must(uuid.NewV7()),
		AccountID:    accountID,
		Sequence:     seq,
		Type:         txType,
		Amount:       decimal.NewFromInt(amount),
		BalanceAfter: decimal.NewFromInt(after),
		CreatedAt:    testTime,
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Code string `json:"code"`
}
