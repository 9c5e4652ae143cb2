package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/withgossing/bank-app/internal/catalog"
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/operator/actions"
)

const defaultMaxWriteAttempts = 3

// AccountAuthority is the only writer of accounts and their ledgers.
type AccountAuthority struct {
	processor   Processor
	catalog     catalog.Catalog
	scale       int32
	maxAttempts int
	log         *logrus.Logger

	now           func() time.Time
	accountNumber func(domain.ProductType) (string, error)
}

func NewAccountAuthority(processor Processor, products catalog.Catalog, opts Options, log *logrus.Logger) *AccountAuthority {
	maxAttempts := opts.MaxWriteAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxWriteAttempts
	}
	return &AccountAuthority{
		processor:     processor,
		catalog:       products,
		scale:         opts.CurrencyScale,
		maxAttempts:   maxAttempts,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
		accountNumber: newAccountNumber,
	}
}

// OpenAccount creates an empty ACTIVE account for ownerID on an active product.
func (a *AccountAuthority) OpenAccount(ctx context.Context, ownerID, productID string) (*domain.Account, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("OpenAccount: %w", domain.ErrInvalidOwner)
	}

	product, err := a.catalog.Get(productID)
	if err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("OpenAccount %q: %w", productID, domain.ErrProductInactive)
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		account, err := a.newAccount(ownerID, product)
		if err != nil {
			return nil, err
		}

		err = a.processor.Process(ctx, &actions.CreateAccount{Account: account})
		if err == nil {
			a.log.WithFields(logrus.Fields{
				"accountNumber": account.AccountNumber,
				"productId":     account.ProductID,
			}).Info("AccountAuthority.OpenAccount")
			return account, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("OpenAccount: %w", err)
		}

		a.log.WithFields(logrus.Fields{
			"attempt":       attempt,
			"accountNumber": account.AccountNumber,
		}).Warn("AccountAuthority.OpenAccount.DuplicateNumber")
	}

	return nil, fmt.Errorf("OpenAccount: %w", domain.ErrDuplicateKey)
}

func (a *AccountAuthority) newAccount(ownerID string, product *domain.Product) (*domain.Account, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("uuid.NewV7: %w", err)
	}
	number, err := a.accountNumber(product.Type)
	if err != nil {
		return nil, err
	}

	now := a.now()
	return &domain.Account{
		ID:            id,
		AccountNumber: number,
		OwnerID:       ownerID,
		ProductID:     product.ID,
		Balance:       decimal.Zero,
		Status:        domain.AccountStatusActive,
		Version:       0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (a *AccountAuthority) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	return a.post(ctx, "Deposit", accountNumber, domain.TransactionTypeDeposit, amount)
}

// Withdraw fails with ErrInsufficientFunds when amount exceeds the balance.
// Withdrawing the entire balance is allowed.
func (a *AccountAuthority) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error) {
	return a.post(ctx, "Withdraw", accountNumber, domain.TransactionTypeWithdrawal, amount)
}

func (a *AccountAuthority) post(
	ctx context.Context,
	op string,
	accountNumber string,
	txType domain.TransactionType,
	amount decimal.Decimal,
) (*domain.Account, *domain.Transaction, error) {
	if err := domain.ValidateAmount(amount, a.scale); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	action := &actions.PostTransaction{
		AccountNumber: accountNumber,
		Type:          txType,
		Amount:        amount,
	}
	err := a.withRetry(ctx, op, accountNumber, func() actions.IAction {
		action.At = a.now()
		return action
	})
	if err != nil {
		return nil, nil, err
	}

	a.log.WithFields(logrus.Fields{
		"accountNumber": accountNumber,
		"type":          txType,
		"amount":        amount.String(),
		"sequence":      action.Transaction.Sequence,
	}).Info("AccountAuthority." + op)
	return action.Account, action.Transaction, nil
}

// ChangeStatus moves an account between ACTIVE and INACTIVE, or closes it.
func (a *AccountAuthority) ChangeStatus(ctx context.Context, accountNumber string, status domain.AccountStatus) (*domain.Account, error) {
	if _, err := domain.ParseAccountStatus(string(status)); err != nil {
		return nil, fmt.Errorf("ChangeStatus: %w", err)
	}

	action := &actions.ChangeStatus{
		AccountNumber: accountNumber,
		Status:        status,
	}
	err := a.withRetry(ctx, "ChangeStatus", accountNumber, func() actions.IAction {
		action.At = a.now()
		return action
	})
	if err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"accountNumber": accountNumber,
		"status":        status,
	}).Info("AccountAuthority.ChangeStatus")
	return action.Account, nil
}

// withRetry re-runs the action from a fresh read while it loses the
// optimistic version check, up to maxAttempts times in total.
func (a *AccountAuthority) withRetry(ctx context.Context, op, accountNumber string, next func() actions.IAction) error {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		err := a.processor.Process(ctx, next())
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return fmt.Errorf("%s: %w", op, err)
		}

		a.log.WithFields(logrus.Fields{
			"attempt":       attempt,
			"accountNumber": accountNumber,
		}).Warnf("AccountAuthority.%s.VersionConflict", op)
	}

	return fmt.Errorf("%s: %w", op, domain.ErrConcurrentUpdate)
}
