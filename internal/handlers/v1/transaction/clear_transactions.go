package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/logging"
)

// ClearTransactionsResponseBody reports how many records were removed.
type ClearTransactionsResponseBody struct {
	Deleted int64 `json:"deleted" doc:"Number of deleted transactions"`
}

// ClearTransactionsOutput is the Huma output for clearing the ledger.
type ClearTransactionsOutput struct {
	Body ClearTransactionsResponseBody
}

type ledgerClearer interface {
	ClearTransactions(ctx context.Context) (int64, error)
}

// ClearTransactionsHandler handles DELETE /v1/transaction.
type ClearTransactionsHandler struct {
	LedgerService ledgerClearer
}

func NewClearTransactionsHandler(svc ledgerClearer) *ClearTransactionsHandler {
	return &ClearTransactionsHandler{LedgerService: svc}
}

func (h *ClearTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-transactions",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction",
		Summary:     "Clear transactions",
		Description: "Deletes the whole purchase history. Products and stock are not affected.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ClearTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ClearTransactionsOutput, error) {
	deleted, err := h.LedgerService.ClearTransactions(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to clear transactions", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("deleted", deleted)
	}
	return &ClearTransactionsOutput{Body: ClearTransactionsResponseBody{Deleted: deleted}}, nil
}
