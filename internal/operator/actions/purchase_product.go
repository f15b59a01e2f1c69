package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/vending-server/internal/purchase"
	"github.com/carson-networks/vending-server/internal/storage"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

// PurchaseProduct decrements the product's stock and appends the ledger row in the same
// transaction. Results are set only after Perform succeeds.
type PurchaseProduct struct {
	Request purchase.CommitRequest

	Transaction *transaction.Transaction
	Product     *product.Product
}

func (p *PurchaseProduct) Name() string {
	return "PurchaseProduct"
}

func (p *PurchaseProduct) Perform(ctx context.Context, writer *storage.Writer) error {
	updated, err := writer.Product.DecrementStock(ctx, p.Request.ProductID, p.Request.Quantity)
	if errors.Is(err, product.ErrAlreadyZero) {
		return purchase.ErrStockConflict
	}
	if errors.Is(err, product.ErrNotFound) {
		return purchase.ErrProductNotFound
	}
	if err != nil {
		return err
	}

	row, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		ProductID:     p.Request.ProductID,
		ProductName:   p.Request.ProductName,
		Quantity:      p.Request.Quantity,
		TotalPrice:    p.Request.TotalPrice,
		MoneyInserted: p.Request.MoneyInserted,
		Change:        p.Request.Change,
		Timestamp:     p.Request.Timestamp,
	})
	if err != nil {
		return err
	}

	p.Product = updated
	p.Transaction = row
	return nil
}
