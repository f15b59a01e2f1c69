package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/purchase"
)

// ErrAttemptNotFound is returned for attempt ids that were never issued, were already
// confirmed or cancelled, or have expired.
var ErrAttemptNotFound = errors.New("purchase attempt not found")

type PurchaseOptions struct {
	// AttemptTTL bounds how long an evaluated attempt waits for confirmation.
	AttemptTTL time.Duration
	// Now overrides the clock for attempt expiry and transaction timestamps.
	Now func() time.Time
}

// Evaluation is the result of evaluating a purchase. AttemptID is set only when the
// outcome is awaiting confirmation.
type Evaluation struct {
	AttemptID uuid.UUID
	ExpiresAt time.Time
	Outcome   purchase.Outcome
}

// PurchaseService exposes the purchase workflow to callers that refer to attempts by id.
type PurchaseService struct {
	workflow *purchase.Workflow
	attempts *attemptRegistry
	log      logrus.FieldLogger
}

func NewPurchaseService(catalog purchase.Catalog, committer purchase.Committer, opts PurchaseOptions, log logrus.FieldLogger) *PurchaseService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ttl := opts.AttemptTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PurchaseService{
		workflow: purchase.NewWorkflow(catalog, committer, log, purchase.WithClock(now)),
		attempts: newAttemptRegistry(ttl, now),
		log:      log,
	}
}

func (s *PurchaseService) Evaluate(ctx context.Context, productID uuid.UUID, inserted int64) (Evaluation, error) {
	outcome, err := s.workflow.EvaluatePurchase(ctx, productID, inserted)
	if err != nil {
		return Evaluation{}, err
	}

	evaluation := Evaluation{Outcome: outcome}
	if outcome.State != purchase.StateAwaitingConfirmation {
		return evaluation, nil
	}

	evaluation.AttemptID, evaluation.ExpiresAt, err = s.attempts.put(*outcome.Attempt)
	if err != nil {
		return Evaluation{}, err
	}
	return evaluation, nil
}

// Confirm commits the attempt. An attempt is consumed by its first Confirm or Cancel.
func (s *PurchaseService) Confirm(ctx context.Context, attemptID uuid.UUID) (purchase.Outcome, error) {
	attempt, ok := s.attempts.take(attemptID)
	if !ok {
		return purchase.Outcome{}, ErrAttemptNotFound
	}

	outcome, err := s.workflow.ConfirmPurchase(ctx, attempt)
	log := s.log.WithFields(logrus.Fields{
		"attemptID": attemptID.String(),
		"state":     outcome.State,
		"reason":    outcome.Reason,
	})
	if err != nil {
		log.WithError(err).Warn("PurchaseService.Confirm.failed")
		return outcome, err
	}
	log.Info("PurchaseService.Confirm")
	return outcome, nil
}

func (s *PurchaseService) Cancel(attemptID uuid.UUID) (purchase.Outcome, error) {
	attempt, ok := s.attempts.take(attemptID)
	if !ok {
		return purchase.Outcome{}, ErrAttemptNotFound
	}
	return s.workflow.CancelPurchase(attempt), nil
}
