package ports

import (
	"tableserve/internal/core/domain/model/order"
)

// AgentTransport is the outbound contract to the pub/sub broker that reaches
// the delivery agent and other external subscribers. The adapter behind it
// owns the connection, the topic namespace, and the wire payload shapes.
//
// Every publish method fails immediately with a transport-unavailable error
// when the connection is down; nothing is queued or retried here. Callers
// decide whether a miss is worth surfacing (the distributor does, the
// listing side publishes do not).
type AgentTransport interface {
	// Connected reports whether the broker connection is currently up.
	Connected() bool

	// NotifyOrderCreated publishes a newly submitted order.
	NotifyOrderCreated(o *order.Order) error

	// NotifyStatusChange publishes a committed status transition.
	NotifyStatusChange(o *order.Order, from, to order.Status) error

	// DispatchOrder publishes the one-shot dispatch instruction for the
	// agent: a self-contained description of the order with a priority
	// marker.
	DispatchOrder(o *order.Order) error

	// PublishSnapshot publishes the full order collection for bulk
	// reconciliation by external subscribers.
	PublishSnapshot(orders []*order.Order) error

	// PublishPendingSnapshot publishes the non-terminal subset as a
	// retained message so late-joining subscribers converge immediately.
	PublishPendingSnapshot(orders []*order.Order) error
}
