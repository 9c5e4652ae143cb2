package account

import (
	"time"

	"github.com/withgossing/bank-app/internal/domain"
)

// Account is the API response model for an account.
type Account struct {
	ID            string `json:"id" doc:"Account UUID"`
	AccountNumber string `json:"accountNumber" doc:"Display account number"`
	OwnerID       string `json:"ownerId" doc:"Owning identity"`
	ProductID     string `json:"productId" doc:"Product the account was opened against"`
	Balance       string `json:"balance" doc:"Decimal balance"`
	Status        string `json:"status" enum:"ACTIVE,INACTIVE,CLOSED" doc:"Account status"`
	Version       int64  `json:"version" doc:"Optimistic concurrency version"`
	CreatedAt     string `json:"createdAt" format:"date-time" doc:"RFC3339 creation time"`
	UpdatedAt     string `json:"updatedAt" format:"date-time" doc:"RFC3339 last update time"`
}

func FromDomain(a *domain.Account) Account {
	return Account{
		ID:            a.ID.String(),
		AccountNumber: a.AccountNumber,
		OwnerID:       a.OwnerID,
		ProductID:     a.ProductID,
		Balance:       a.Balance.String(),
		Status:        string(a.Status),
		Version:       a.Version,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}
