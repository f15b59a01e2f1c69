package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/currency"
)

// Catalog reads the current product state. Implementations return ErrProductNotFound
// for unknown ids.
type Catalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (Product, error)
}

// Committer applies a CommitRequest as one unit: either the stock decrement and the
// ledger append both happen, or neither does. A decrement against zero stock fails
// with ErrStockConflict.
type Committer interface {
	CommitPurchase(ctx context.Context, req CommitRequest) (Transaction, Product, error)
}

// Evaluate decides whether inserted money can buy product. It reads no state besides its arguments.
func Evaluate(product Product, inserted int64) (Outcome, error) {
	if inserted < 0 {
		return Outcome{}, ErrNegativeMoney
	}

	if product.Stock <= 0 {
		return Outcome{State: StateRejected, Reason: ReasonOutOfStock}, nil
	}

	if inserted < product.Price {
		return Outcome{
			State:     StateRejected,
			Reason:    ReasonInsufficientFunds,
			Shortfall: product.Price - inserted,
		}, nil
	}

	return Outcome{
		State: StateAwaitingConfirmation,
		Attempt: &Attempt{
			Product:       product,
			MoneyInserted: inserted,
			Change:        inserted - product.Price,
			evaluated:     true,
		},
	}, nil
}

// Workflow drives single purchase attempts against a catalog and a committer.
type Workflow struct {
	catalog   Catalog
	committer Committer
	logger    logrus.FieldLogger
	now       func() time.Time
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock overrides the clock used for transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

func NewWorkflow(catalog Catalog, committer Committer, logger logrus.FieldLogger, opts ...Option) *Workflow {
	w := &Workflow{
		catalog:   catalog,
		committer: committer,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// EvaluatePurchase reads the product and evaluates it against inserted money.
func (w *Workflow) EvaluatePurchase(ctx context.Context, productID uuid.UUID, inserted int64) (Outcome, error) {
	if inserted < 0 {
		return Outcome{}, ErrNegativeMoney
	}

	product, err := w.catalog.GetProduct(ctx, productID)
	if err != nil {
		return Outcome{}, err
	}

	outcome, err := Evaluate(product, inserted)
	if err != nil {
		return Outcome{}, err
	}

	w.logger.WithFields(logrus.Fields{
		"productID": productID.String(),
		"state":     outcome.State,
		"reason":    outcome.Reason,
	}).Debug("Workflow.EvaluatePurchase")

	return outcome, nil
}

// ConfirmPurchase commits an evaluated attempt. Stock conflicts and commit failures are
// retried once by re-evaluating against fresh catalog state; a second stock conflict is
// reported as OUT_OF_STOCK and a second commit failure as StateFailed with ErrCommitFailed.
func (w *Workflow) ConfirmPurchase(ctx context.Context, attempt Attempt) (Outcome, error) {
	if !attempt.Evaluated() {
		return Outcome{}, ErrAttemptNotEvaluated
	}

	log := w.logger.WithField("productID", attempt.Product.ID.String())

	outcome, err := w.commit(ctx, attempt)
	if err == nil {
		return outcome, nil
	}
	if !retryable(err) {
		log.WithError(err).Warn("Workflow.ConfirmPurchase.failed")
		return failed(err), err
	}

	log.WithError(err).Info("Workflow.ConfirmPurchase.reevaluating")

	fresh, err := w.EvaluatePurchase(ctx, attempt.Product.ID, attempt.MoneyInserted)
	if err != nil {
		return failed(err), err
	}
	if fresh.State != StateAwaitingConfirmation {
		fresh.Retried = true
		return fresh, nil
	}

	outcome, err = w.commit(ctx, *fresh.Attempt)
	if err == nil {
		outcome.Retried = true
		return outcome, nil
	}
	if errors.Is(err, ErrStockConflict) {
		log.Info("Workflow.ConfirmPurchase.conflictRepeated")
		return Outcome{State: StateRejected, Reason: ReasonOutOfStock, Retried: true}, nil
	}

	log.WithError(err).Error("Workflow.ConfirmPurchase.retryFailed")
	outcome = failed(err)
	outcome.Retried = true
	return outcome, err
}

// CancelPurchase abandons an attempt. Inserted money belongs to the caller and is not touched.
func (w *Workflow) CancelPurchase(attempt Attempt) Outcome {
	w.logger.WithField("productID", attempt.Product.ID.String()).Debug("Workflow.CancelPurchase")
	return Outcome{State: StateIdle}
}

func (w *Workflow) commit(ctx context.Context, attempt Attempt) (Outcome, error) {
	req := CommitRequest{
		ProductID:     attempt.Product.ID,
		ProductName:   attempt.Product.Name,
		Quantity:      1,
		TotalPrice:    attempt.Product.Price,
		MoneyInserted: attempt.MoneyInserted,
		Change:        attempt.Change,
		Timestamp:     w.now().UTC(),
	}

	transaction, product, err := w.committer.CommitPurchase(ctx, req)
	if err != nil {
		if errors.Is(err, ErrStockConflict) || errors.Is(err, ErrProductNotFound) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	return Outcome{
		State:       StateCompleted,
		Attempt:     &attempt,
		Transaction: &transaction,
		Product:     &product,
	}, nil
}

func retryable(err error) bool {
	return errors.Is(err, ErrStockConflict) || errors.Is(err, ErrCommitFailed)
}

func failed(err error) Outcome {
	reason := ReasonCommitFailed
	if errors.Is(err, ErrProductNotFound) {
		reason = ReasonProductNotFound
	}
	return Outcome{State: StateFailed, Reason: reason}
}

// Message renders a user-facing description of a rejected or failed outcome.
func (o Outcome) Message(f *currency.Formatter) string {
	switch o.Reason {
	case ReasonOutOfStock:
		return "Sorry, this product is out of stock."
	case ReasonInsufficientFunds:
		return fmt.Sprintf("Not enough money inserted: %s short.", f.Format(o.Shortfall))
	case ReasonProductNotFound:
		return "This product is no longer available."
	case ReasonCommitFailed:
		return "The purchase could not be processed. Please try again."
	}
	return ""
}
