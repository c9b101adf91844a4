package queries

import (
	"errors"

	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"
	"tableserve/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList*OrdersQuery constructors",
)

// listMode selects one of the fixed read shapes.
type listMode int

const (
	listAll listMode = iota
	listPending
	listRecent
	listByStatus
)

// maxRecentLimit caps the recent listing so a bad query parameter cannot
// drag the whole table through the wire.
const maxRecentLimit = 200

// ListOrdersQuery retrieves order collections in one of the fixed shapes:
// everything newest first, the active (non-terminal) set oldest first, the
// most recent N, or all orders in a given status.
type ListOrdersQuery struct {
	mode   listMode
	limit  int
	status order.Status

	guard guard.ConstructorGuard
}

// NewListAllOrdersQuery creates a query for every order, newest first.
func NewListAllOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{mode: listAll, guard: guard.NewConstructorGuard()}
}

// NewListPendingOrdersQuery creates a query for the active working set:
// orders that are not delivered, cancelled, or completed, oldest first so
// the kitchen sees the longest-waiting tables on top.
func NewListPendingOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{mode: listPending, guard: guard.NewConstructorGuard()}
}

// NewListRecentOrdersQuery creates a query for the limit most recently
// created orders, newest first.
func NewListRecentOrdersQuery(limit int) (ListOrdersQuery, error) {
	if limit < 1 || limit > maxRecentLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxRecentLimit)
	}
	return ListOrdersQuery{mode: listRecent, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// NewListOrdersByStatusQuery creates a query for all orders in the given
// status, newest first.
func NewListOrdersByStatusQuery(status order.Status) (ListOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{mode: listByStatus, status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
