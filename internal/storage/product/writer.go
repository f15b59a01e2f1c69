package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
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

func (w *Writer) Create(ctx context.Context, create *ProductCreate) (*Product, error) {
	query := psql.Insert(
		im.Into(tableName, "name", "price", "stock", "image"),
		im.Values(psql.Arg(create.Name), psql.Arg(create.Price), psql.Arg(create.Stock), psql.Arg(create.Image)),
		im.Returning(columns...),
	)
	return bob.One(ctx, w.tx, query, scan.StructMapper[*Product]())
}

// Update applies the set fields of update. An update with no set fields returns the stored row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *ProductUpdate) (*Product, error) {
	mods := []bob.Mod[*dialect.UpdateQuery]{um.Table(tableName)}
	if name, ok := update.Name.Get(); ok {
		mods = append(mods, um.SetCol("name").ToArg(name))
	}
	if price, ok := update.Price.Get(); ok {
		mods = append(mods, um.SetCol("price").ToArg(price))
	}
	if stock, ok := update.Stock.Get(); ok {
		mods = append(mods, um.SetCol("stock").ToArg(stock))
	}
	if image, ok := update.Image.Get(); ok {
		mods = append(mods, um.SetCol("image").ToArg(image))
	}
	mods = append(mods,
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)

	row, err := bob.One(ctx, w.tx, psql.Update(mods...), scan.StructMapper[*Product]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// DecrementStock lowers stock by `by` only if at least that much is left. The check and the
// write are one statement, so concurrent callers cannot both take the last unit.
func (w *Writer) DecrementStock(ctx context.Context, id uuid.UUID, by int64) (*Product, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("stock").To(psql.Raw("stock - ?", by)),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("stock").GTE(psql.Arg(by))),
		um.Returning(columns...),
	)
	row, err := bob.One(ctx, w.tx, query, scan.StructMapper[*Product]())
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := w.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyZero
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	result, err := bob.Exec(ctx, w.tx, query)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every product and returns how many were removed.
func (w *Writer) DeleteAll(ctx context.Context) (int64, error) {
	result, err := bob.Exec(ctx, w.tx, psql.Delete(dm.From(tableName)))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
