package actions

import (
	"context"

	"github.com/carson-networks/vending-server/internal/storage"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

// ClearTransactions deletes every ledger row.
type ClearTransactions struct {
	Deleted int64
}

func (c *ClearTransactions) Name() string {
	return "ClearTransactions"
}

func (c *ClearTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Transaction.Clear(ctx)
	if err != nil {
		return err
	}
	c.Deleted = deleted
	return nil
}

// SeedCatalog replaces both tables with Products and one sample purchase of the first product.
// The sample's product, price and change are taken from the first created product.
type SeedCatalog struct {
	Products []product.ProductCreate
	Sample   *transaction.TransactionCreate

	Created     []*product.Product
	Transaction *transaction.Transaction
}

func (s *SeedCatalog) Name() string {
	return "SeedCatalog"
}

func (s *SeedCatalog) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Transaction.Clear(ctx); err != nil {
		return err
	}
	if _, err := writer.Product.DeleteAll(ctx); err != nil {
		return err
	}

	created := make([]*product.Product, 0, len(s.Products))
	for i := range s.Products {
		p, err := writer.Product.Create(ctx, &s.Products[i])
		if err != nil {
			return err
		}
		created = append(created, p)
	}

	if s.Sample != nil && len(created) > 0 {
		sample := *s.Sample
		sample.ProductID = created[0].ID
		sample.ProductName = created[0].Name
		sample.TotalPrice = created[0].Price * sample.Quantity
		sample.Change = sample.MoneyInserted - sample.TotalPrice
		row, err := writer.Transaction.Insert(ctx, &sample)
		if err != nil {
			return err
		}
		s.Transaction = row
	}

	s.Created = created
	return nil
}
