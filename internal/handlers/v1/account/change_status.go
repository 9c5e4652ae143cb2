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

type ChangeStatusInput struct {
	AccountNumber string `path:"accountNumber" doc:"Display account number"`
	Body          ChangeStatusBody
}

type ChangeStatusBody struct {
	Status string `json:"status" enum:"ACTIVE,INACTIVE,CLOSED" doc:"Target status"`
}

type ChangeStatusOutput struct {
	Body Account
}

type statusChanger interface {
	access.AccountGetter
	ChangeStatus(ctx context.Context, accountNumber string, status domain.AccountStatus) (*domain.Account, error)
}

// ChangeStatusHandler handles PUT /v1/account/{accountNumber}/status.
type ChangeStatusHandler struct {
	AccountService statusChanger
}

func NewChangeStatusHandler(svc statusChanger) *ChangeStatusHandler {
	return &ChangeStatusHandler{AccountService: svc}
}

func (h *ChangeStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "change-account-status",
		Method:      http.MethodPut,
		Path:        "/v1/account/{accountNumber}/status",
		Summary:     "Change account status",
		Description: "Deactivates, reactivates or closes an account. Closing requires a zero balance.",
		Tags:        []string{"Accounts"},
		Security:    access.Security,
	}, h.handle)
}

func (h *ChangeStatusHandler) handle(ctx context.Context, input *ChangeStatusInput) (*ChangeStatusOutput, error) {
	logData := logging.GetLogData(ctx)

	status, err := domain.ParseAccountStatus(input.Body.Status)
	if err != nil {
		return nil, apierror.From(err)
	}

	if _, err = access.OwnedAccount(ctx, h.AccountService, input.AccountNumber); err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("changeStatusMs")
	account, err := h.AccountService.ChangeStatus(ctx, input.AccountNumber, status)
	stopTimer()
	if err != nil {
		return nil, apierror.From(err)
	}

	logData.AddData("status", string(account.Status))
	return &ChangeStatusOutput{Body: FromDomain(account)}, nil
}
