package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const defaultLimit = 20

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns products oldest first.
func (r *Reader) List(ctx context.Context, filter *ProductFilter) (*ProductListResult, error) {
	limit := defaultLimit
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}

	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
		sm.Limit(limit+1),
		sm.Offset(offset),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[*Product]())
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &ProductListResult{Products: nil, NextCursor: nil}, nil
	}

	var nextCursor *ProductCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &ProductCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return &ProductListResult{Products: rows, NextCursor: nextCursor}, nil
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Product]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
