package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/service"
)

// SummaryResponseBody is the response body for the ledger summary.
type SummaryResponseBody struct {
	TotalTransactions       int64  `json:"totalTransactions" doc:"Number of recorded purchases"`
	TotalRevenue            int64  `json:"totalRevenue" doc:"Sum of prices paid"`
	TotalRevenueLabel       string `json:"totalRevenueLabel" doc:"Formatted revenue"`
	AverageTransactionValue string `json:"averageTransactionValue" doc:"Revenue per purchase as a decimal string with two places"`
}

// SummaryOutput is the Huma output for the ledger summary.
type SummaryOutput struct {
	Body SummaryResponseBody
}

type ledgerSummarizer interface {
	Summary(ctx context.Context) (service.LedgerSummary, error)
}

// SummaryHandler handles GET /v1/transaction/summary.
type SummaryHandler struct {
	LedgerService ledgerSummarizer
	Formatter     *currency.Formatter
}

func NewSummaryHandler(svc ledgerSummarizer, f *currency.Formatter) *SummaryHandler {
	return &SummaryHandler{LedgerService: svc, Formatter: f}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/v1/transaction/summary",
		Summary:     "Transaction summary",
		Description: "Returns the purchase count, total revenue and average purchase value.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summary, err := h.LedgerService.Summary(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarize transactions", err)
	}

	return &SummaryOutput{Body: SummaryResponseBody{
		TotalTransactions:       summary.TotalTransactions,
		TotalRevenue:            summary.TotalRevenue,
		TotalRevenueLabel:       h.Formatter.Format(summary.TotalRevenue),
		AverageTransactionValue: summary.AverageTransactionValue.StringFixed(2),
	}}, nil
}
