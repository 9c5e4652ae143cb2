// Package access scopes account operations to the authenticated owner.
package access

import (
	"context"

	"github.com/withgossing/bank-app/internal/auth"
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
)

type AccountGetter interface {
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)
}

func OwnerID(ctx context.Context) (string, error) {
	ownerID, ok := auth.OwnerIDFromContext(ctx)
	if !ok {
		return "", apierror.Unauthorized("missing owner identity")
	}
	return ownerID, nil
}

// OwnedAccount loads accountNumber for the caller. Accounts of other owners
// are reported as not found.
func OwnedAccount(ctx context.Context, getter AccountGetter, accountNumber string) (*domain.Account, error) {
	ownerID, err := OwnerID(ctx)
	if err != nil {
		return nil, err
	}

	account, err := getter.GetAccount(ctx, accountNumber)
	if err != nil {
		return nil, apierror.From(err)
	}
	if account.OwnerID != ownerID {
		return nil, apierror.From(domain.ErrAccountNotFound)
	}
	return account, nil
}

// Security marks an operation as requiring a bearer token.
var Security = []map[string][]string{{auth.SecurityScheme: {}}}
