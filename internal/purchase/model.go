package purchase

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// State is the position of a purchase attempt in the workflow.
type State string

const (
	StateIdle                 State = "IDLE"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
	StateRejected             State = "REJECTED"
	StateCompleted            State = "COMPLETED"
	StateFailed               State = "FAILED"
)

// Reason explains a rejected or failed attempt.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonOutOfStock        Reason = "OUT_OF_STOCK"
	ReasonInsufficientFunds Reason = "INSUFFICIENT_FUNDS"
	ReasonCommitFailed      Reason = "COMMIT_FAILED"
	ReasonProductNotFound   Reason = "PRODUCT_NOT_FOUND"
)

// Product is the catalog snapshot the workflow evaluates against.
type Product struct {
	ID    uuid.UUID
	Name  string
	Price int64
	Stock int64
	Image string
}

// Transaction is a completed purchase as recorded in the ledger.
type Transaction struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int64
	TotalPrice    int64
	MoneyInserted int64
	Change        int64
	Timestamp     time.Time
}

// Attempt is an evaluated purchase waiting for confirmation. Only Evaluate produces
// attempts that ConfirmPurchase accepts.
type Attempt struct {
	Product       Product
	MoneyInserted int64
	Change        int64

	evaluated bool
}

// Evaluated reports whether the attempt came out of Evaluate.
func (a Attempt) Evaluated() bool {
	return a.evaluated && a.Change >= 0 && a.MoneyInserted-a.Product.Price == a.Change
}

// Outcome is the result value of every workflow operation.
type Outcome struct {
	State State
	// Reason is set for StateRejected and StateFailed.
	Reason Reason
	// Shortfall is price minus inserted money for ReasonInsufficientFunds.
	Shortfall int64
	// Attempt is set for StateAwaitingConfirmation and StateCompleted.
	Attempt *Attempt
	// Transaction and Product are set for StateCompleted.
	Transaction *Transaction
	Product     *Product
	// Retried is true when the outcome came from the automatic re-evaluation after a failed commit.
	Retried bool
}

// CommitRequest is the paired mutation for one confirmed attempt: decrement the product's
// stock by Quantity and append a ledger row with these fields.
type CommitRequest struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int64
	TotalPrice    int64
	MoneyInserted int64
	Change        int64
	Timestamp     time.Time
}
