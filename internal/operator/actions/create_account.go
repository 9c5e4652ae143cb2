package actions

import (
	"context"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage"
)

type CreateAccount struct {
	Account *domain.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Accounts.Create(ctx, c.Account)
}
