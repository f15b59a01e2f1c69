package checkout

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/logging"
)

// EvaluatePurchaseBody is the request body for evaluating a purchase.
type EvaluatePurchaseBody struct {
	ProductID     string `json:"productId" required:"true" format:"uuid" doc:"Product UUID"`
	InsertedMoney int64  `json:"insertedMoney" doc:"Total money inserted so far, in the smallest currency unit"`
}

// EvaluatePurchaseInput is the Huma input for evaluating a purchase.
type EvaluatePurchaseInput struct {
	Body EvaluatePurchaseBody
}

// EvaluatePurchaseHandler handles POST /v1/purchase/evaluate.
type EvaluatePurchaseHandler struct {
	PurchaseService purchaseService
	Formatter       *currency.Formatter
}

func NewEvaluatePurchaseHandler(svc purchaseService, f *currency.Formatter) *EvaluatePurchaseHandler {
	return &EvaluatePurchaseHandler{PurchaseService: svc, Formatter: f}
}

func (h *EvaluatePurchaseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "evaluate-purchase",
		Method:      http.MethodPost,
		Path:        "/v1/purchase/evaluate",
		Summary:     "Evaluate purchase",
		Description: "Checks stock and inserted money for a product. Sufficient money yields an attempt to confirm or cancel; otherwise the result is REJECTED with a reason.",
		Tags:        []string{"Purchase"},
	}, h.handle)
}

func (h *EvaluatePurchaseHandler) handle(ctx context.Context, input *EvaluatePurchaseInput) (*PurchaseOutput, error) {
	productID, err := uuid.FromString(input.Body.ProductID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid productId", err)
	}

	logData := logging.GetLogData(ctx)
	evaluation, err := h.PurchaseService.Evaluate(ctx, productID, input.Body.InsertedMoney)
	if err != nil {
		return nil, purchaseError(err)
	}

	result := newPurchaseResult(evaluation.Outcome, h.Formatter)
	if evaluation.AttemptID != uuid.Nil {
		result.AttemptID = evaluation.AttemptID.String()
		result.ExpiresAt = evaluation.ExpiresAt.Format(time.RFC3339)
	}

	if logData != nil {
		logData.AddData("productID", productID.String())
		logData.AddData("state", result.State)
		logData.AddData("reason", result.Reason)
	}

	return &PurchaseOutput{Body: result}, nil
}
