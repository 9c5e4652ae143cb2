package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/access"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/logging"
	"github.com/withgossing/bank-app/internal/service"
)

// ListTransactionsCursor is echoed back so the next page keeps the same limit and order.
type ListTransactionsCursor struct {
	After int64  `json:"after" doc:"Last sequence already returned"`
	Limit int    `json:"limit" doc:"Page size used for this cursor"`
	Order string `json:"order" enum:"asc,desc" doc:"Sort order by sequence"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	AccountNumber string `path:"accountNumber" doc:"Display account number"`
	Limit         int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, 20 when omitted"`
	After         int64  `query:"after" minimum:"0" doc:"Return transactions past this sequence"`
	Order         string `query:"order" enum:"asc,desc" default:"desc" doc:"Sort order by sequence"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction          `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing an account's history.
type transactionLister interface {
	access.AccountGetter
	GetTransactions(ctx context.Context, accountNumber string, cursor *service.TransactionCursor) ([]*domain.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles GET /v1/account/{accountNumber}/transactions.
type ListTransactionsHandler struct {
	QueryService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{QueryService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountNumber}/transactions",
		Summary:     "List transactions",
		Description: "Returns a page of the account's transactions using sequence cursors.",
		Tags:        []string{"Transactions"},
		Security:    access.Security,
	}, h.handle)
}

// parseListTransactionsInput builds the service cursor. A zero after means
// start from the newest (or oldest) transaction since sequences begin at 1.
func parseListTransactionsInput(input *ListTransactionsInput) *service.TransactionCursor {
	cursor := &service.TransactionCursor{
		Limit:     input.Limit,
		Ascending: input.Order == "asc",
	}
	if input.After > 0 {
		after := input.After
		cursor.After = &after
	}
	return cursor
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	if _, err := access.OwnedAccount(ctx, h.QueryService, input.AccountNumber); err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, nextCursor, err := h.QueryService.GetTransactions(ctx, input.AccountNumber, parseListTransactionsInput(input))
	stopTimer()
	if err != nil {
		return nil, apierror.From(err)
	}

	logData.AddData("transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, t := range transactions {
		resp.Transactions[i] = fromDomain(t)
	}

	if nextCursor != nil {
		order := "desc"
		if nextCursor.Ascending {
			order = "asc"
		}
		resp.NextCursor = &ListTransactionsCursor{
			After: *nextCursor.After,
			Limit: nextCursor.Limit,
			Order: order,
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
