package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
)

const tableName = "accounts"

var columns = []string{
	"id", "account_number", "owner_id", "product_id", "balance",
	"status", "version", "created_at", "updated_at",
}

// row is the accounts table as scanned by bob.
type row struct {
	ID            uuid.UUID       `db:"id"`
	AccountNumber string          `db:"account_number"`
	OwnerID       string          `db:"owner_id"`
	ProductID     string          `db:"product_id"`
	Balance       decimal.Decimal `db:"balance"`
	Status        string          `db:"status"`
	Version       int64           `db:"version"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// IAccountReader is the read side of the ledger store.
type IAccountReader interface {
	Get(ctx context.Context, accountNumber string) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

// IAccountWriter is the write side. Put is conditional on the account's
// Version matching the stored one and bumps Version on success.
type IAccountWriter interface {
	IAccountReader
	Create(ctx context.Context, account *domain.Account) error
	Put(ctx context.Context, account *domain.Account) error
}

func rowToAccount(r *row) *domain.Account {
	return &domain.Account{
		ID:            r.ID,
		AccountNumber: r.AccountNumber,
		OwnerID:       r.OwnerID,
		ProductID:     r.ProductID,
		Balance:       r.Balance,
		Status:        domain.AccountStatus(r.Status),
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
