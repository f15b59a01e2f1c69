package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/currency"
	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

// Processor runs write actions inside a database transaction. The operator delegator
// implements it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// ProductReader is the read side of the catalog table.
type ProductReader interface {
	List(ctx context.Context, filter *product.ProductFilter) (*product.ProductListResult, error)
	FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

// TransactionReader is the read side of the ledger table.
type TransactionReader interface {
	List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
	Summary(ctx context.Context) (*transaction.Summary, error)
}

// Service holds all business logic services.
type Service struct {
	Catalog  *CatalogService
	Ledger   *LedgerService
	Purchase *PurchaseService
	Currency *currency.Formatter
}

// NewService wires the services over storage reads and operator writes.
func NewService(store *storage.Storage, processor Processor, formatter *currency.Formatter, opts PurchaseOptions, log logrus.FieldLogger) *Service {
	catalog := NewCatalogService(store.Reader.Products, processor)
	return &Service{
		Catalog:  catalog,
		Ledger:   NewLedgerService(store.Reader.Transactions, processor),
		Purchase: NewPurchaseService(catalog, NewCommitter(processor), opts, log),
		Currency: formatter,
	}
}
