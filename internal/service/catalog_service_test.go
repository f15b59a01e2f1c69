package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/vending-server/internal/operator/actions"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

func newTestCatalog(t *testing.T) (*CatalogService, *mockProductReader, *mockProcessor) {
	t.Helper()
	reader := &mockProductReader{}
	processor := &mockProcessor{}
	t.Cleanup(func() {
		reader.AssertExpectations(t)
		processor.AssertExpectations(t)
	})
	return NewCatalogService(reader, processor), reader, processor
}

func storageProduct(name string, price, stock int64) *product.Product {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &product.Product{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestListProducts_DefaultsAndCursor(t *testing.T) {
	svc, reader, _ := newTestCatalog(t)

	rows := []*product.Product{storageProduct("Coca Cola", 5000, 10)}
	reader.On("List", mock.Anything, mock.MatchedBy(func(f *product.ProductFilter) bool {
		return f.Limit == defaultProductLimit && f.Offset == 0
	})).Return(&product.ProductListResult{
		Products:   rows,
		NextCursor: &product.ProductCursor{Position: 20, Limit: 20},
	}, nil)

	products, next, err := svc.ListProducts(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, rows[0].ID, products[0].ID)
	assert.Equal(t, &ProductCursor{Position: 20, Limit: 20}, next)
}

func TestFindProduct_NotFound(t *testing.T) {
	svc, reader, _ := newTestCatalog(t)

	id := uuid.Must(uuid.NewV4())
	reader.On("FindByID", mock.Anything, id).Return(nil, product.ErrNotFound)

	_, err := svc.FindProduct(context.Background(), id)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.GetProduct(context.Background(), id)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct_Snapshot(t *testing.T) {
	svc, reader, _ := newTestCatalog(t)

	row := storageProduct("Sprite", 5000, 8)
	reader.On("FindByID", mock.Anything, row.ID).Return(row, nil)

	p, err := svc.GetProduct(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ID, p.ID)
	assert.Equal(t, int64(5000), p.Price)
	assert.Equal(t, int64(8), p.Stock)
}

func TestCreateProduct_Success(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	created := storageProduct("Aqua 600ml", 3000, 20)
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateProduct) bool {
		return a.Create.Name == "Aqua 600ml" && a.Create.Price == 3000 && a.Create.Stock == 20
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateProduct).Product = created
	}).Return(nil)

	p, err := svc.CreateProduct(context.Background(), ProductInput{Name: "  Aqua 600ml ", Price: 3000, Stock: 20})

	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
}

func TestCreateProduct_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input ProductInput
	}{
		{"empty name", ProductInput{Name: "  ", Price: 1000}},
		{"zero price", ProductInput{Name: "Oreo", Price: 0}},
		{"negative stock", ProductInput{Name: "Oreo", Price: 1000, Stock: -1}},
		{"bad image", ProductInput{Name: "Oreo", Price: 1000, Image: "ftp://x/y.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestCatalog(t)
			_, err := svc.CreateProduct(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	processor.On("Process", mock.Anything, mock.AnythingOfType("*actions.UpdateProduct")).Return(product.ErrNotFound)

	_, err := svc.UpdateProduct(context.Background(), uuid.Must(uuid.NewV4()), ProductPatch{Stock: omit.From[int64](3)})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProduct_OnlySetFieldsValidated(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	updated := storageProduct("Sprite", 5500, 8)
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.UpdateProduct) bool {
		return a.Update.Price.GetOr(0) == 5500 && a.Update.Name.IsUnset()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.UpdateProduct).Product = updated
	}).Return(nil)

	p, err := svc.UpdateProduct(context.Background(), updated.ID, ProductPatch{Price: omit.From[int64](5500)})

	require.NoError(t, err)
	assert.Equal(t, int64(5500), p.Price)

	_, err = svc.UpdateProduct(context.Background(), updated.ID, ProductPatch{Price: omit.From[int64](-1)})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestDeleteProduct(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	known := uuid.Must(uuid.NewV4())
	unknown := uuid.Must(uuid.NewV4())
	processor.On("Process", mock.Anything, &actions.DeleteProduct{ID: known}).Return(nil)
	processor.On("Process", mock.Anything, &actions.DeleteProduct{ID: unknown}).Return(product.ErrNotFound)

	assert.NoError(t, svc.DeleteProduct(context.Background(), known))
	assert.ErrorIs(t, svc.DeleteProduct(context.Background(), unknown), ErrProductNotFound)
}

func TestSeedCatalog(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.SeedCatalog) bool {
		return len(a.Products) == 5 && a.Sample != nil && a.Sample.MoneyInserted == 10000
	})).Run(func(args mock.Arguments) {
		a := args.Get(1).(*actions.SeedCatalog)
		for _, p := range a.Products {
			a.Created = append(a.Created, storageProduct(p.Name, p.Price, p.Stock))
		}
		a.Transaction = &transaction.Transaction{ID: uuid.Must(uuid.NewV4())}
	}).Return(nil)

	result, err := svc.SeedCatalog(context.Background())

	require.NoError(t, err)
	require.Len(t, result.Products, 5)
	assert.Equal(t, "Coca Cola", result.Products[0].Name)
	assert.Equal(t, 1, result.Transactions)
}

func TestSeedCatalog_Error(t *testing.T) {
	svc, _, processor := newTestCatalog(t)

	processor.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.SeedCatalog(context.Background())
	assert.EqualError(t, err, "connection reset")
}
