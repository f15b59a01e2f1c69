package checkout

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/logging"
)

// AttemptInput addresses a pending purchase attempt.
type AttemptInput struct {
	AttemptID string `path:"attemptId" format:"uuid" doc:"Attempt UUID returned by evaluate"`
}

// ConfirmPurchaseHandler handles POST /v1/purchase/{attemptId}/confirm.
type ConfirmPurchaseHandler struct {
	PurchaseService purchaseService
	Formatter       *currency.Formatter
}

func NewConfirmPurchaseHandler(svc purchaseService, f *currency.Formatter) *ConfirmPurchaseHandler {
	return &ConfirmPurchaseHandler{PurchaseService: svc, Formatter: f}
}

func (h *ConfirmPurchaseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "confirm-purchase",
		Method:      http.MethodPost,
		Path:        "/v1/purchase/{attemptId}/confirm",
		Summary:     "Confirm purchase",
		Description: "Commits an evaluated attempt: decrements stock and records the transaction together. A lost race for the last unit is retried once and then reported as OUT_OF_STOCK.",
		Tags:        []string{"Purchase"},
	}, h.handle)
}

func (h *ConfirmPurchaseHandler) handle(ctx context.Context, input *AttemptInput) (*PurchaseOutput, error) {
	attemptID, err := uuid.FromString(input.AttemptID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid attemptId", err)
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		logData.AddData("attemptID", attemptID.String())
		stopTimer = logData.AddTiming("confirmPurchaseMs")
	}
	outcome, err := h.PurchaseService.Confirm(ctx, attemptID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, purchaseError(err)
	}

	result := newPurchaseResult(outcome, h.Formatter)
	if logData != nil {
		logData.AddData("state", result.State)
		logData.AddData("reason", result.Reason)
		logData.AddData("retried", result.Retried)
	}
	return &PurchaseOutput{Body: result}, nil
}
