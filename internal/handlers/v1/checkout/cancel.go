package checkout

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
)

// CancelPurchaseHandler handles POST /v1/purchase/{attemptId}/cancel.
type CancelPurchaseHandler struct {
	PurchaseService purchaseService
	Formatter       *currency.Formatter
}

func NewCancelPurchaseHandler(svc purchaseService, f *currency.Formatter) *CancelPurchaseHandler {
	return &CancelPurchaseHandler{PurchaseService: svc, Formatter: f}
}

func (h *CancelPurchaseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cancel-purchase",
		Method:      http.MethodPost,
		Path:        "/v1/purchase/{attemptId}/cancel",
		Summary:     "Cancel purchase",
		Description: "Abandons an evaluated attempt. Inserted money stays with the caller.",
		Tags:        []string{"Purchase"},
	}, h.handle)
}

func (h *CancelPurchaseHandler) handle(ctx context.Context, input *AttemptInput) (*PurchaseOutput, error) {
	attemptID, err := uuid.FromString(input.AttemptID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid attemptId", err)
	}

	outcome, err := h.PurchaseService.Cancel(attemptID)
	if err != nil {
		return nil, purchaseError(err)
	}
	return &PurchaseOutput{Body: newPurchaseResult(outcome, h.Formatter)}, nil
}
