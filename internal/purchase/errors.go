package purchase

import "errors"

var (
	// ErrNegativeMoney is a contract violation: inserted money is never negative.
	ErrNegativeMoney = errors.New("inserted money cannot be negative")
	// ErrAttemptNotEvaluated is a contract violation: only evaluated attempts can be confirmed.
	ErrAttemptNotEvaluated = errors.New("purchase attempt was not evaluated")
	ErrProductNotFound     = errors.New("product not found")
	// ErrStockConflict means the conditional stock decrement lost the race for the last unit.
	ErrStockConflict = errors.New("stock conflict")
	ErrCommitFailed  = errors.New("purchase commit failed")
)
