package actions

import (
	"context"

	"github.com/carson-networks/vending-server/internal/storage"
)

// IAction is one unit of write work. Perform runs inside a single database transaction
// that the operator commits when it returns nil and rolls back otherwise.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}
