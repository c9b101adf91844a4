package ports

import (
	"context"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The collection methods back the broker snapshot publishes; per-request
// read shapes are served by the query handlers, not through this port.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns an object-not-found error when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	// Returns an object-not-found error when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetActive retrieves non-terminal orders oldest first, excluding
	// delivered, cancelled, and the legacy completed value.
	GetActive(ctx context.Context) ([]*order.Order, error)
}
