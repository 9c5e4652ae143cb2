package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage"
)

// ChangeStatus moves an account through its lifecycle. Closing needs a zero
// balance; CLOSED accounts never change again.
type ChangeStatus struct {
	AccountNumber string
	Status        domain.AccountStatus
	At            time.Time

	Account *domain.Account
}

func (c *ChangeStatus) Perform(ctx context.Context, writer *storage.Writer) error {
	c.Account = nil

	account, err := writer.Accounts.Get(ctx, c.AccountNumber)
	if err != nil {
		return err
	}
	if !account.CanTransitionTo(c.Status) {
		return fmt.Errorf("ChangeStatus: %s to %s: %w", account.Status, c.Status, domain.ErrInvalidStatusTransition)
	}
	if c.Status == domain.AccountStatusClosed && !account.Balance.IsZero() {
		return fmt.Errorf("ChangeStatus: %w", domain.ErrBalanceNotZero)
	}

	account.Status = c.Status
	account.UpdatedAt = c.At
	if err = writer.Accounts.Put(ctx, account); err != nil {
		return err
	}

	c.Account = account
	return nil
}
