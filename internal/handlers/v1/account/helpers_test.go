package account

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

type mockAccountService struct {
	mock.Mock
}

func (m *mockAccountService) OpenAccount(ctx context.Context, ownerID, productID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) ListAccountsForOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *mockAccountService) ChangeStatus(ctx context.Context, accountNumber string, status domain.AccountStatus) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountService) Reconcile(ctx context.Context, accountNumber string) (*service.Reconciliation, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Reconciliation), args.Error(1)
}

// newTestAPI registers every account handler behind the auth middleware.
func newTestAPI(t *testing.T, svc *mockAccountService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api, testSecret))
	NewCreateAccountHandler(svc).Register(api)
	NewListAccountsHandler(svc).Register(api)
	NewGetAccountHandler(svc).Register(api)
	NewChangeStatusHandler(svc).Register(api)
	NewReconcileHandler(svc).Register(api)
	return api
}

func bearer(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := auth.GenerateToken(ownerID, testSecret, time.Hour)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func testAccount(ownerID, number string) *domain.Account {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Account{
		ID:            uuid.Must(uuid.NewV7()),
		AccountNumber: number,
		OwnerID:       ownerID,
		ProductID:     "SAV-001",
		Balance:       decimal.NewFromInt(150),
		Status:        domain.AccountStatusActive,
		Version:       2,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
