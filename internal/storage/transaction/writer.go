package transaction

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert appends a ledger record. The row is durable once the enclosing transaction commits.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	cols := []string{"product_id", "product_name", "quantity", "total_price", "money_inserted", "change"}
	values := []bob.Expression{
		psql.Arg(create.ProductID),
		psql.Arg(create.ProductName),
		psql.Arg(create.Quantity),
		psql.Arg(create.TotalPrice),
		psql.Arg(create.MoneyInserted),
		psql.Arg(create.Change),
	}
	if !create.Timestamp.IsZero() {
		cols = append(cols, "purchased_at")
		values = append(values, psql.Arg(create.Timestamp))
	}

	query := psql.Insert(
		im.Into(tableName, cols...),
		im.Values(values...),
		im.Returning(columns...),
	)
	return bob.One(ctx, w.tx, query, scan.StructMapper[*Transaction]())
}

// Clear deletes the whole ledger and returns how many records were removed.
func (w *Writer) Clear(ctx context.Context) (int64, error) {
	result, err := bob.Exec(ctx, w.tx, psql.Delete(dm.From(tableName)))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
