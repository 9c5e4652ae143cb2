package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/access"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/logging"
)

// CreateAccountInput is the Huma input for opening an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

type CreateAccountBody struct {
	ProductID string `json:"productId" minLength:"1" doc:"Catalog product to open the account against"`
}

type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountOpener is the interface for opening accounts.
type accountOpener interface {
	OpenAccount(ctx context.Context, ownerID, productID string) (*domain.Account, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountOpener
}

func NewCreateAccountHandler(svc accountOpener) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Open an account",
		Description:   "Opens an empty ACTIVE account for the caller on an active product.",
		Tags:          []string{"Accounts"},
		Security:      access.Security,
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := access.OwnerID(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("openAccountMs")
	account, err := h.AccountService.OpenAccount(ctx, ownerID, input.Body.ProductID)
	stopTimer()
	if err != nil {
		return nil, apierror.From(err)
	}

	logData.AddData("accountNumber", account.AccountNumber)

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   FromDomain(account),
	}, nil
}
