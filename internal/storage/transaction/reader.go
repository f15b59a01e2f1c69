package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var ErrNotFound = errors.New("transaction not found")

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// List returns transactions matching the filter, newest first. A positive Limit fetches one
// extra row so callers can tell whether another page exists.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.ProductID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("product_id").EQ(psql.Arg(*filter.ProductID))))
		}
		if filter.MaxTimestamp != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("purchased_at").LTE(psql.Arg(*filter.MaxTimestamp))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("purchased_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// Summary returns the transaction count and the summed total price of the whole ledger.
func (r *Reader) Summary(ctx context.Context) (*Summary, error) {
	query := psql.Select(
		sm.Columns(
			psql.Raw("count(*) AS total_transactions"),
			psql.Raw("COALESCE(SUM(total_price), 0)::BIGINT AS total_revenue"),
		),
		sm.From(tableName),
	)
	return bob.One(ctx, r.exec, query, scan.StructMapper[*Summary]())
}
