package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/vending-server/internal/config"
)

// Storage owns the database handle. Reads go through Reader; writes go through a Writer
// obtained from Write, which wraps one database transaction.
type Storage struct {
	sqlDB  *sql.DB
	DB     bob.DB
	Reader *Reader
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.Postgres.ConnectionString())
	if err != nil {
		return nil, err
	}

	return NewStorageFromDB(db), nil
}

// NewStorageFromDB wraps an already opened database handle.
func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		sqlDB:  db,
		DB:     bobDB,
		Reader: NewReader(bobDB),
	}
}

// Write begins a database transaction. The caller must Commit or Rollback the Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Storage) SQLDB() *sql.DB {
	return s.sqlDB
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}
