package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Product represents a catalog product in the service layer.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     int64
	Stock     int64
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductInput carries the fields of a new product.
type ProductInput struct {
	Name  string
	Price int64
	Stock int64
	Image string
}

// ProductPatch carries the fields to change on an existing product. Unset fields are kept.
type ProductPatch struct {
	Name  omit.Val[string]
	Price omit.Val[int64]
	Stock omit.Val[int64]
	Image omit.Val[string]
}

// ProductCursor identifies a position in the catalog listing.
type ProductCursor struct {
	Position int
	Limit    int
}

// Transaction represents a ledger record in the service layer.
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

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxTimestamp so subsequent pages are consistent.
type TransactionCursor struct {
	Position     int
	Limit        int
	MaxTimestamp time.Time
}

// LedgerSummary aggregates the whole ledger.
type LedgerSummary struct {
	TotalTransactions int64
	TotalRevenue      int64
	// AverageTransactionValue is TotalRevenue / TotalTransactions rounded to two places, zero for an empty ledger.
	AverageTransactionValue decimal.Decimal
}
