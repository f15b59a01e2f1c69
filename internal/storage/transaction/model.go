package transaction

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

const tableName = "transactions"

var columns = []any{"id", "product_id", "product_name", "quantity", "total_price", "money_inserted", "change", "purchased_at"}

// Transaction represents a ledger record.
type Transaction struct {
	ID            uuid.UUID `db:"id"`
	ProductID     uuid.UUID `db:"product_id"`
	ProductName   string    `db:"product_name"`
	Quantity      int64     `db:"quantity"`
	TotalPrice    int64     `db:"total_price"`
	MoneyInserted int64     `db:"money_inserted"`
	Change        int64     `db:"change"`
	Timestamp     time.Time `db:"purchased_at"`
}

// TransactionCreate is the input for appending a ledger record.
type TransactionCreate struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int64
	TotalPrice    int64
	MoneyInserted int64
	Change        int64
	Timestamp     time.Time // defaults to now if zero
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	ProductID    *uuid.UUID
	Limit        int
	Offset       int
	MaxTimestamp *time.Time
}

// Summary aggregates the whole ledger.
type Summary struct {
	TotalTransactions int64 `db:"total_transactions"`
	TotalRevenue      int64 `db:"total_revenue"`
}
