package service

import (
	"context"
	"time"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

var starterProducts = []product.ProductCreate{
	{Name: "Coca Cola", Price: 5000, Stock: 10, Image: "https://images.unsplash.com/photo-1622483767028-3f66f32aef97?w=400&h=400&fit=crop&crop=center"},
	{Name: "Sprite", Price: 5000, Stock: 8, Image: "https://images.unsplash.com/photo-1690988109041-458628590a9e?w=400&h=400&fit=crop&crop=center"},
	{Name: "Malkist Abon", Price: 8000, Stock: 15, Image: "https://images.unsplash.com/photo-1641189614066-59860ff72f2f?w=400&h=400&fit=crop&crop=center"},
	{Name: "Aqua 600ml", Price: 3000, Stock: 20, Image: "https://images.unsplash.com/photo-1612134678926-7592c521aa52?w=400&h=400&fit=crop&crop=center"},
	{Name: "Oreo Original", Price: 6000, Stock: 12, Image: "https://images.unsplash.com/photo-1599629954294-14df9ec8bc05?w=400&h=400&fit=crop&crop=center"},
}

var sampleTransaction = transaction.TransactionCreate{
	Quantity:      1,
	MoneyInserted: 10000,
	Timestamp:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
}

// SeedResult reports what SeedCatalog wrote.
type SeedResult struct {
	Products     []Product
	Transactions int
}

// SeedCatalog wipes the ledger and catalog and writes the starter products plus one
// sample purchase of the first product.
func (s *CatalogService) SeedCatalog(ctx context.Context) (SeedResult, error) {
	sample := sampleTransaction
	action := &actions.SeedCatalog{
		Products: append([]product.ProductCreate(nil), starterProducts...),
		Sample:   &sample,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{Products: make([]Product, len(action.Created))}
	for i, row := range action.Created {
		result.Products[i] = convertProduct(row)
	}
	if action.Transaction != nil {
		result.Transactions = 1
	}
	return result, nil
}
