package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

const defaultLimit = 20

// LedgerService handles transaction history business logic.
type LedgerService struct {
	reader    TransactionReader
	processor Processor
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(reader TransactionReader, processor Processor) *LedgerService {
	return &LedgerService{reader: reader, processor: processor}
}

// ListTransactions returns a page of transactions, newest first, using cursor-based pagination.
func (s *LedgerService) ListTransactions(ctx context.Context, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxTimestamp *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxTimestamp = &cursor.MaxTimestamp
	}

	filter := &transaction.TransactionFilter{
		Limit:        limit,
		Offset:       offset,
		MaxTimestamp: maxTimestamp,
	}

	rows, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxTimestamp := rows[0].Timestamp
		if maxTimestamp != nil {
			cursorMaxTimestamp = *maxTimestamp
		}

		nextCursor = &TransactionCursor{
			Position:     offset + limit,
			Limit:        limit,
			MaxTimestamp: cursorMaxTimestamp,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = convertTransaction(row)
	}

	return convertedTransactions, nextCursor, nil
}

// Summary returns the count, revenue and average value of the whole ledger.
func (s *LedgerService) Summary(ctx context.Context) (LedgerSummary, error) {
	row, err := s.reader.Summary(ctx)
	if err != nil {
		return LedgerSummary{}, err
	}

	average := decimal.Zero
	if row.TotalTransactions > 0 {
		average = decimal.NewFromInt(row.TotalRevenue).
			DivRound(decimal.NewFromInt(row.TotalTransactions), 2)
	}

	return LedgerSummary{
		TotalTransactions:       row.TotalTransactions,
		TotalRevenue:            row.TotalRevenue,
		AverageTransactionValue: average,
	}, nil
}

// ClearTransactions deletes the whole ledger and returns how many records were removed.
// Products and stock are untouched.
func (s *LedgerService) ClearTransactions(ctx context.Context) (int64, error) {
	action := &actions.ClearTransactions{}
	if err := s.processor.Process(ctx, action); err != nil {
		return 0, err
	}
	return action.Deleted, nil
}

func convertTransaction(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:            row.ID,
		ProductID:     row.ProductID,
		ProductName:   row.ProductName,
		Quantity:      row.Quantity,
		TotalPrice:    row.TotalPrice,
		MoneyInserted: row.MoneyInserted,
		Change:        row.Change,
		Timestamp:     row.Timestamp,
	}
}
