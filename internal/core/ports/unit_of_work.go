package ports

import "context"

// UnitOfWork coordinates a database transaction around repository operations.
// Each business operation gets its own instance; Begin is idempotent, and
// Commit/Rollback close the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the current
	// transaction when one is active, or to the base connection otherwise.
	OrderRepository() OrderRepository
}
