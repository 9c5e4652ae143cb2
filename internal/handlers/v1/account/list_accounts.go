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

type ListAccountsResponseBody struct {
	Accounts []Account `json:"accounts" doc:"The caller's accounts, oldest first"`
}

type ListAccountsOutput struct {
	Body ListAccountsResponseBody
}

type accountLister interface {
	ListAccountsForOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
}

// ListAccountsHandler handles GET /v1/accounts.
type ListAccountsHandler struct {
	AccountService accountLister
}

func NewListAccountsHandler(svc accountLister) *ListAccountsHandler {
	return &ListAccountsHandler{AccountService: svc}
}

func (h *ListAccountsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-accounts",
		Method:      http.MethodGet,
		Path:        "/v1/accounts",
		Summary:     "List accounts",
		Description: "Returns every account owned by the caller.",
		Tags:        []string{"Accounts"},
		Security:    access.Security,
	}, h.handle)
}

func (h *ListAccountsHandler) handle(ctx context.Context, _ *struct{}) (*ListAccountsOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := access.OwnerID(ctx)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listAccountsMs")
	accounts, err := h.AccountService.ListAccountsForOwner(ctx, ownerID)
	stopTimer()
	if err != nil {
		return nil, apierror.From(err)
	}

	logData.AddData("accountCount", len(accounts))

	resp := ListAccountsResponseBody{
		Accounts: make([]Account, len(accounts)),
	}
	for i, a := range accounts {
		resp.Accounts[i] = FromDomain(a)
	}

	return &ListAccountsOutput{Body: resp}, nil
}
