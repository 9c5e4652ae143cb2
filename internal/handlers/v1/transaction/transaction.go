package transaction

import (
	"time"

	"github.com/withgossing/bank-app/internal/domain"
)

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	AccountID    string `json:"accountId" doc:"Account UUID"`
	Sequence     int64  `json:"sequence" doc:"Position in the account's history"`
	Type         string `json:"transactionType" enum:"DEPOSIT,WITHDRAWAL" doc:"Kind of balance change"`
	Amount       string `json:"amount" doc:"Decimal amount, always positive"`
	BalanceAfter string `json:"balanceAfter" doc:"Account balance once this transaction applied"`
	CreatedAt    string `json:"createdAt" format:"date-time" doc:"RFC3339 creation time"`
}

func fromDomain(t *domain.Transaction) Transaction {
	return Transaction{
		ID:           t.ID.String(),
		AccountID:    t.AccountID.String(),
		Sequence:     t.Sequence,
		Type:         string(t.Type),
		Amount:       t.Amount.String(),
		BalanceAfter: t.BalanceAfter.String(),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
