package storage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/vending-server/internal/storage"
	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/storagetest"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

func write(t *testing.T, store *storage.Storage, fn func(w *storage.Writer) error) error {
	t.Helper()
	w, err := store.Write(context.Background())
	require.NoError(t, err)
	if err := fn(w); err != nil {
		_ = w.Rollback()
		return err
	}
	return w.Commit()
}

func createProduct(t *testing.T, store *storage.Storage, name string, price, stock int64) *product.Product {
	t.Helper()
	var created *product.Product
	err := write(t, store, func(w *storage.Writer) error {
		var err error
		created, err = w.Product.Create(context.Background(), &product.ProductCreate{Name: name, Price: price, Stock: stock})
		return err
	})
	require.NoError(t, err)
	return created
}

func TestStorage_Integration(t *testing.T) {
	store := storagetest.NewStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	t.Run("products list oldest first", func(t *testing.T) {
		first := createProduct(t, store, "Coca Cola", 5000, 10)
		second := createProduct(t, store, "Sprite", 5000, 8)

		result, err := store.Reader.Products.List(ctx, &product.ProductFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, first.ID, result.Products[0].ID)
		require.NotNil(t, result.NextCursor)

		result, err = store.Reader.Products.List(ctx, &product.ProductFilter{Limit: 1, Offset: result.NextCursor.Position})
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, second.ID, result.Products[0].ID)
	})

	t.Run("find unknown product", func(t *testing.T) {
		_, err := store.Reader.Products.FindByID(ctx, uuid.Must(uuid.NewV4()))
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		p := createProduct(t, store, "Aqua 600ml", 3000, 20)
		var updated *product.Product
		err := write(t, store, func(w *storage.Writer) error {
			var err error
			updated, err = w.Product.Update(ctx, p.ID, &product.ProductUpdate{Price: omit.From[int64](3500)})
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3500), updated.Price)
		assert.Equal(t, "Aqua 600ml", updated.Name)
		assert.Equal(t, int64(20), updated.Stock)
	})

	t.Run("decrement stops at zero", func(t *testing.T) {
		p := createProduct(t, store, "Oreo Original", 6000, 1)

		err := write(t, store, func(w *storage.Writer) error {
			got, err := w.Product.DecrementStock(ctx, p.ID, 1)
			if err == nil {
				assert.Equal(t, int64(0), got.Stock)
			}
			return err
		})
		require.NoError(t, err)

		err = write(t, store, func(w *storage.Writer) error {
			_, err := w.Product.DecrementStock(ctx, p.ID, 1)
			return err
		})
		assert.ErrorIs(t, err, product.ErrAlreadyZero)

		err = write(t, store, func(w *storage.Writer) error {
			_, err := w.Product.DecrementStock(ctx, uuid.Must(uuid.NewV4()), 1)
			return err
		})
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("concurrent decrements of the last unit", func(t *testing.T) {
		p := createProduct(t, store, "Malkist Abon", 8000, 1)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = write(t, store, func(w *storage.Writer) error {
					_, err := w.Product.DecrementStock(ctx, p.ID, 1)
					return err
				})
			}()
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
			} else {
				assert.ErrorIs(t, err, product.ErrAlreadyZero)
			}
		}
		assert.Equal(t, 1, successes)
	})

	t.Run("ledger insert, list, summary and clear", func(t *testing.T) {
		productID := uuid.Must(uuid.NewV4())
		older := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
		newer := older.Add(time.Hour)

		err := write(t, store, func(w *storage.Writer) error {
			for _, ts := range []time.Time{older, newer} {
				if _, err := w.Transaction.Insert(ctx, &transaction.TransactionCreate{
					ProductID:     productID,
					ProductName:   "Coca Cola",
					Quantity:      1,
					TotalPrice:    5000,
					MoneyInserted: 10000,
					Change:        5000,
					Timestamp:     ts,
				}); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		rows, err := store.Reader.Transactions.List(ctx, &transaction.TransactionFilter{ProductID: &productID})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.True(t, rows[0].Timestamp.Equal(newer), "newest first")

		summary, err := store.Reader.Transactions.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), summary.TotalTransactions)
		assert.Equal(t, int64(10000), summary.TotalRevenue)

		var deleted int64
		err = write(t, store, func(w *storage.Writer) error {
			var err error
			deleted, err = w.Transaction.Clear(ctx)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		rows, err = store.Reader.Transactions.List(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, rows)

		summary, err = store.Reader.Transactions.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), summary.TotalTransactions)
		assert.Equal(t, int64(0), summary.TotalRevenue)

		catalog, err := store.Reader.Products.List(ctx, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, catalog.Products, "clearing the ledger leaves the catalog alone")
	})

	t.Run("ledger rejects inconsistent change", func(t *testing.T) {
		err := write(t, store, func(w *storage.Writer) error {
			_, err := w.Transaction.Insert(ctx, &transaction.TransactionCreate{
				ProductID:     uuid.Must(uuid.NewV4()),
				ProductName:   "Sprite",
				Quantity:      1,
				TotalPrice:    5000,
				MoneyInserted: 10000,
				Change:        1000,
			})
			return err
		})
		assert.Error(t, err)
	})
}
