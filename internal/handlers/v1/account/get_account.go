package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/withgossing/bank-app/internal/handlers/v1/access"
)

type AccountNumberInput struct {
	AccountNumber string `path:"accountNumber" doc:"Display account number"`
}

type GetAccountOutput struct {
	Body Account
}

// GetAccountHandler handles GET /v1/account/{accountNumber}.
type GetAccountHandler struct {
	AccountService access.AccountGetter
}

func NewGetAccountHandler(svc access.AccountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountNumber}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
		Security:    access.Security,
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *AccountNumberInput) (*GetAccountOutput, error) {
	account, err := access.OwnedAccount(ctx, h.AccountService, input.AccountNumber)
	if err != nil {
		return nil, err
	}
	return &GetAccountOutput{Body: FromDomain(account)}, nil
}
