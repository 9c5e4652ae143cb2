package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/withgossing/bank-app/internal/handlers/v1/access"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/service"
)

type ReconcileResponseBody struct {
	AccountNumber    string `json:"accountNumber"`
	StoredBalance    string `json:"storedBalance" doc:"Balance on the account record"`
	ReplayedBalance  string `json:"replayedBalance" doc:"Balance rebuilt from the transaction log"`
	TransactionCount int    `json:"transactionCount"`
	Consistent       bool   `json:"consistent"`
	FirstMismatch    *int64 `json:"firstMismatch,omitempty" doc:"Sequence of the first inconsistent record"`
}

type ReconcileOutput struct {
	Body ReconcileResponseBody
}

type reconciler interface {
	access.AccountGetter
	Reconcile(ctx context.Context, accountNumber string) (*service.Reconciliation, error)
}

// ReconcileHandler handles GET /v1/account/{accountNumber}/reconcile.
type ReconcileHandler struct {
	QueryService reconciler
}

func NewReconcileHandler(svc reconciler) *ReconcileHandler {
	return &ReconcileHandler{QueryService: svc}
}

func (h *ReconcileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountNumber}/reconcile",
		Summary:     "Reconcile an account",
		Description: "Replays the account's transaction log and compares it with the stored balance.",
		Tags:        []string{"Accounts"},
		Security:    access.Security,
	}, h.handle)
}

func (h *ReconcileHandler) handle(ctx context.Context, input *AccountNumberInput) (*ReconcileOutput, error) {
	if _, err := access.OwnedAccount(ctx, h.QueryService, input.AccountNumber); err != nil {
		return nil, err
	}

	result, err := h.QueryService.Reconcile(ctx, input.AccountNumber)
	if err != nil {
		return nil, apierror.From(err)
	}

	return &ReconcileOutput{Body: ReconcileResponseBody{
		AccountNumber:    result.AccountNumber,
		StoredBalance:    result.StoredBalance.String(),
		ReplayedBalance:  result.ReplayedBalance.String(),
		TransactionCount: result.TransactionCount,
		Consistent:       result.Consistent,
		FirstMismatch:    result.FirstMismatch,
	}}, nil
}
