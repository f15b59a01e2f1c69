package service

import (
	"context"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/purchase"
)

// Committer performs the stock decrement and ledger append of a purchase as one operator action.
type Committer struct {
	processor Processor
}

func NewCommitter(processor Processor) *Committer {
	return &Committer{processor: processor}
}

func (c *Committer) CommitPurchase(ctx context.Context, req purchase.CommitRequest) (purchase.Transaction, purchase.Product, error) {
	action := &actions.PurchaseProduct{Request: req}
	if err := c.processor.Process(ctx, action); err != nil {
		return purchase.Transaction{}, purchase.Product{}, err
	}

	row := action.Transaction
	p := action.Product
	return purchase.Transaction{
			ID:            row.ID,
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			Quantity:      row.Quantity,
			TotalPrice:    row.TotalPrice,
			MoneyInserted: row.MoneyInserted,
			Change:        row.Change,
			Timestamp:     row.Timestamp,
		}, purchase.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Image: p.Image,
		}, nil
}
