package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockProductReader struct {
	mock.Mock
}

func (m *mockProductReader) List(ctx context.Context, filter *product.ProductFilter) (*product.ProductListResult, error) {
	args := m.Called(ctx, filter)
	result, _ := args.Get(0).(*product.ProductListResult)
	return result, args.Error(1)
}

func (m *mockProductReader) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*product.Product)
	return row, args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionReader) Summary(ctx context.Context) (*transaction.Summary, error) {
	args := m.Called(ctx)
	row, _ := args.Get(0).(*transaction.Summary)
	return row, args.Error(1)
}
