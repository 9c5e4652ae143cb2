package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage"
)

// PostTransaction applies a deposit or withdrawal to one account and appends
// the matching ledger record. The amount must already be validated.
type PostTransaction struct {
	AccountNumber string
	Type          domain.TransactionType
	Amount        decimal.Decimal
	At            time.Time

	// Set when Perform succeeds.
	Account     *domain.Account
	Transaction *domain.Transaction
}

func (p *PostTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	p.Account, p.Transaction = nil, nil

	account, err := writer.Accounts.Get(ctx, p.AccountNumber)
	if err != nil {
		return err
	}
	if account.Status != domain.AccountStatusActive {
		return fmt.Errorf("PostTransaction: %w", domain.ErrAccountNotActive)
	}

	newBalance := p.Type.Apply(account.Balance, p.Amount)
	if newBalance.IsNegative() {
		return fmt.Errorf("PostTransaction: %w", domain.ErrInsufficientFunds)
	}

	account.Balance = newBalance
	account.UpdatedAt = p.At
	if err = writer.Accounts.Put(ctx, account); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("uuid.NewV7: %w", err)
	}
	record := &domain.Transaction{
		ID:           id,
		AccountID:    account.ID,
		Sequence:     account.Version,
		Type:         p.Type,
		Amount:       p.Amount,
		BalanceAfter: newBalance,
		CreatedAt:    p.At,
	}
	if err = writer.Transactions.Append(ctx, record); err != nil {
		return err
	}

	p.Account, p.Transaction = account, record
	return nil
}
