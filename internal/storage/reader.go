package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/vending-server/internal/storage/product"
	"github.com/carson-networks/vending-server/internal/storage/transaction"
)

type Reader struct {
	Products     *product.Reader
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Products:     product.NewReader(exec),
		Transactions: transaction.NewReader(exec),
	}
}
