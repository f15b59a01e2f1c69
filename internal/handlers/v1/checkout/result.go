package checkout

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/purchase"
	"github.com/carson-networks/vending-server/internal/service"
)

// purchaseService is the interface the checkout handlers drive.
type purchaseService interface {
	Evaluate(ctx context.Context, productID uuid.UUID, inserted int64) (service.Evaluation, error)
	Confirm(ctx context.Context, attemptID uuid.UUID) (purchase.Outcome, error)
	Cancel(attemptID uuid.UUID) (purchase.Outcome, error)
}

// Product is the product state attached to a purchase result.
type Product struct {
	ID    string `json:"id" doc:"Product UUID"`
	Name  string `json:"name" doc:"Product name"`
	Price int64  `json:"price" doc:"Price in the smallest currency unit"`
	Stock int64  `json:"stock" doc:"Units left"`
}

// Transaction is the ledger record written by a completed purchase.
type Transaction struct {
	ID            string `json:"id" doc:"Transaction UUID"`
	ProductID     string `json:"productId" doc:"Product UUID"`
	ProductName   string `json:"productName" doc:"Product name at purchase time"`
	Quantity      int64  `json:"quantity" doc:"Units bought"`
	TotalPrice    int64  `json:"totalPrice" doc:"Price paid"`
	MoneyInserted int64  `json:"moneyInserted" doc:"Money inserted"`
	Change        int64  `json:"change" doc:"Change returned"`
	Timestamp     string `json:"timestamp" doc:"RFC3339 purchase time"`
}

// PurchaseResult describes where a purchase attempt ended up.
type PurchaseResult struct {
	State     string `json:"state" enum:"IDLE,AWAITING_CONFIRMATION,REJECTED,COMPLETED,FAILED" doc:"Workflow state"`
	Reason    string `json:"reason,omitempty" doc:"Why the attempt was rejected or failed"`
	Message   string `json:"message,omitempty" doc:"Human readable explanation of the reason"`
	Shortfall int64  `json:"shortfall,omitempty" doc:"Money still missing for INSUFFICIENT_FUNDS"`

	AttemptID     string `json:"attemptId,omitempty" doc:"Attempt to confirm or cancel, set while awaiting confirmation"`
	ExpiresAt     string `json:"expiresAt,omitempty" doc:"RFC3339 time after which the attempt can no longer be confirmed"`
	MoneyInserted int64  `json:"moneyInserted,omitempty" doc:"Money inserted for the attempt"`
	Change        int64  `json:"change,omitempty" doc:"Change due for the attempt"`
	ChangeLabel   string `json:"changeLabel,omitempty" doc:"Formatted change"`

	Product     *Product     `json:"product,omitempty" doc:"Product snapshot, or the updated product after completion"`
	Transaction *Transaction `json:"transaction,omitempty" doc:"Ledger record, set when completed"`
	Retried     bool         `json:"retried,omitempty" doc:"True when the result came from the automatic retry"`
}

// PurchaseOutput is the Huma output shared by the checkout endpoints.
type PurchaseOutput struct {
	Body PurchaseResult
}

func newPurchaseResult(outcome purchase.Outcome, f *currency.Formatter) PurchaseResult {
	result := PurchaseResult{
		State:     string(outcome.State),
		Reason:    string(outcome.Reason),
		Message:   outcome.Message(f),
		Shortfall: outcome.Shortfall,
		Retried:   outcome.Retried,
	}

	if outcome.Attempt != nil {
		result.MoneyInserted = outcome.Attempt.MoneyInserted
		result.Change = outcome.Attempt.Change
		result.ChangeLabel = f.Format(outcome.Attempt.Change)
		result.Product = convertProduct(outcome.Attempt.Product)
	}
	if outcome.Product != nil {
		result.Product = convertProduct(*outcome.Product)
	}
	if tx := outcome.Transaction; tx != nil {
		result.Transaction = &Transaction{
			ID:            tx.ID.String(),
			ProductID:     tx.ProductID.String(),
			ProductName:   tx.ProductName,
			Quantity:      tx.Quantity,
			TotalPrice:    tx.TotalPrice,
			MoneyInserted: tx.MoneyInserted,
			Change:        tx.Change,
			Timestamp:     tx.Timestamp.Format(time.RFC3339),
		}
	}
	return result
}

func convertProduct(p purchase.Product) *Product {
	return &Product{
		ID:    p.ID.String(),
		Name:  p.Name,
		Price: p.Price,
		Stock: p.Stock,
	}
}

// purchaseError maps workflow errors onto HTTP errors. Rejections are not errors and never get here.
func purchaseError(err error) error {
	switch {
	case errors.Is(err, purchase.ErrNegativeMoney), errors.Is(err, purchase.ErrAttemptNotEvaluated):
		return huma.NewError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, purchase.ErrProductNotFound):
		return huma.NewError(http.StatusNotFound, "product not found", err)
	case errors.Is(err, service.ErrAttemptNotFound):
		return huma.NewError(http.StatusNotFound, "purchase attempt not found or expired", err)
	case errors.Is(err, purchase.ErrCommitFailed):
		return huma.NewError(http.StatusServiceUnavailable, "purchase could not be recorded, nothing was charged", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.NewError(http.StatusServiceUnavailable, "request cancelled", err)
	}
	return huma.NewError(http.StatusInternalServerError, "purchase failed", err)
}
