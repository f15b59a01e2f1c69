// Package storagetest starts a throwaway Postgres for integration tests.
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/vending-server/internal/storage"
)

const image = "postgres:16-alpine"

// NewStorage returns a migrated Storage backed by a fresh container. The test is skipped
// when no container provider is available.
func NewStorage(t *testing.T) *storage.Storage {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, image,
		postgres.WithDatabase("vending"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)

	store := storage.NewStorageFromDB(db)
	t.Cleanup(func() { _ = store.Close() })

	_, _, err = storage.Migrate(db)
	require.NoError(t, err)

	return store
}
