package ports

import (
	"tableserve/internal/core/domain/model/order"
)

// DashboardBroadcaster is the outbound contract to the live dashboard push
// channel. Delivery is connection-scoped and best-effort: implementations
// drop unreachable clients and never persist or retry, so errors here are
// informational only.
type DashboardBroadcaster interface {
	// OrderCreated announces a newly submitted order.
	OrderCreated(o *order.Order) error

	// StatusUpdated announces a committed transition with old and new
	// status. Automated transitions carry their source marker.
	StatusUpdated(o *order.Order, from, to order.Status, automated bool, source string) error

	// OrderSentToAgent announces the outcome of an agent dispatch attempt.
	OrderSentToAgent(o *order.Order, notified bool) error

	// TransportWarning surfaces a transport-unavailable condition to the
	// dashboards.
	TransportWarning(message string) error
}
