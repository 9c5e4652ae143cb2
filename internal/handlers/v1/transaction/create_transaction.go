package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/access"
	"github.com/withgossing/bank-app/internal/handlers/v1/account"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/logging"
)

// CreateTransactionInput is the Huma input for a deposit or withdrawal.
type CreateTransactionInput struct {
	AccountNumber string `path:"accountNumber" doc:"Display account number"`
	Body          CreateTransactionBody
}

// CreateTransactionBody is the request body for a deposit or withdrawal.
type CreateTransactionBody struct {
	Amount string `json:"amount" minLength:"1" maxLength:"48" doc:"Positive decimal amount without exponent, such as 1250 or 10.25"`
}

type CreateTransactionResponseBody struct {
	Account     account.Account `json:"account" doc:"Account after the change"`
	Transaction Transaction     `json:"transaction" doc:"Recorded transaction"`
}

type CreateTransactionOutput struct {
	Body CreateTransactionResponseBody
}

// transactionPoster is the interface for moving money on an account.
type transactionPoster interface {
	access.AccountGetter
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/account/{accountNumber}/deposit
// and POST /v1/account/{accountNumber}/withdraw.
type CreateTransactionHandler struct {
	AccountService transactionPoster
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionPoster) *CreateTransactionHandler {
	return &CreateTransactionHandler{AccountService: svc}
}

// Register registers the deposit and withdraw endpoints with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/v1/account/{accountNumber}/deposit",
		Summary:     "Deposit",
		Description: "Credits an ACTIVE account and records a DEPOSIT transaction.",
		Tags:        []string{"Transactions"},
		Security:    access.Security,
	}, h.handler(domain.TransactionTypeDeposit))

	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/account/{accountNumber}/withdraw",
		Summary:     "Withdraw",
		Description: "Debits an ACTIVE account and records a WITHDRAWAL transaction. The balance never goes negative.",
		Tags:        []string{"Transactions"},
		Security:    access.Security,
	}, h.handler(domain.TransactionTypeWithdrawal))
}

// parseAmount parses the request amount. Sign, scale and magnitude are
// checked by the service.
func parseAmount(input *CreateTransactionInput) (decimal.Decimal, error) {
	amount, err := domain.ParseDecimal(input.Body.Amount)
	if err != nil {
		return decimal.Zero, apierror.BadRequest(domain.ErrInvalidAmount, "amount must be a plain decimal number")
	}
	return amount, nil
}

func (h *CreateTransactionHandler) handler(txType domain.TransactionType) func(context.Context, *CreateTransactionInput) (*CreateTransactionOutput, error) {
	post := h.AccountService.Deposit
	timing := "depositMs"
	if txType == domain.TransactionTypeWithdrawal {
		post = h.AccountService.Withdraw
		timing = "withdrawMs"
	}

	return func(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
		logData := logging.GetLogData(ctx)

		amount, err := parseAmount(input)
		if err != nil {
			return nil, err
		}

		if _, err = access.OwnedAccount(ctx, h.AccountService, input.AccountNumber); err != nil {
			return nil, err
		}

		stopTimer := logData.AddTiming(timing)
		updated, tx, err := post(ctx, input.AccountNumber, amount)
		stopTimer()
		if err != nil {
			return nil, apierror.From(err)
		}

		logData.AddData("accountNumber", updated.AccountNumber)
		logData.AddData("sequence", tx.Sequence)

		return &CreateTransactionOutput{Body: CreateTransactionResponseBody{
			Account:     account.FromDomain(updated),
			Transaction: fromDomain(tx),
		}}, nil
	}
}
