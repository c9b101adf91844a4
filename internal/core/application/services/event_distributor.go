package services

import (
	"context"
	"fmt"
	"log/slog"

	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/core/ports"
)

// DeliveryReport records the outcome of one distribution fan-out. It is
// ephemeral: returned to the triggering caller and forwarded to dashboards,
// never persisted.
type DeliveryReport struct {
	// BroadcastDelivered is true when the push broadcast went out.
	BroadcastDelivered bool `json:"broadcastDelivered"`

	// StatusPublished is true when the status change was published to the
	// broker. False either because the transport was down (see
	// TransportConnected) or because the publish itself failed.
	StatusPublished bool `json:"statusPublished"`

	// TransportConnected captures the transport state at fan-out time.
	TransportConnected bool `json:"transportConnected"`

	// DispatchRequired is true when this transition asked for an agent
	// dispatch.
	DispatchRequired bool `json:"dispatchRequired"`

	// RobotNotified is true when the dispatch publish reached the broker.
	// Only meaningful when DispatchRequired is set.
	RobotNotified bool `json:"robotNotified"`
}

// EventDistributor delivers notice of committed order changes over the two
// independent channels: the broker transport and the dashboard push channel.
//
// The distributor never fails its caller and never rolls anything back: by
// the time it runs, the state change has been committed, so every channel
// failure is swallowed, logged, and recorded in the DeliveryReport. The two
// channels are attempted independently; one failing does not stop the other.
type EventDistributor struct {
	transport   ports.AgentTransport
	broadcaster ports.DashboardBroadcaster
	orders      ports.OrderRepository
	logger      *slog.Logger
}

// NewEventDistributor creates the distributor with its two outbound channels.
// The repository feeds the bulk snapshot publishes.
func NewEventDistributor(
	transport ports.AgentTransport,
	broadcaster ports.DashboardBroadcaster,
	orders ports.OrderRepository,
	logger *slog.Logger,
) *EventDistributor {
	return &EventDistributor{
		transport:   transport,
		broadcaster: broadcaster,
		orders:      orders,
		logger:      logger.With("component", "event_distributor"),
	}
}

// AnnounceCreated distributes notice of a newly submitted order: a push
// broadcast to dashboards and, when the transport is up, a broker publish.
func (d *EventDistributor) AnnounceCreated(o *order.Order) DeliveryReport {
	report := DeliveryReport{TransportConnected: d.transport.Connected()}

	if err := d.broadcaster.OrderCreated(o); err != nil {
		d.logger.Warn("dashboard broadcast failed", "order_id", o.ID().String(), "error", err)
	} else {
		report.BroadcastDelivered = true
	}

	if !report.TransportConnected {
		d.logger.Debug("transport unavailable, new-order publish skipped", "order_id", o.ID().String())
		return report
	}

	if err := d.transport.NotifyOrderCreated(o); err != nil {
		d.logger.Warn("new-order publish failed", "order_id", o.ID().String(), "error", err)
	} else {
		report.StatusPublished = true
	}

	return report
}

// AnnounceTransition distributes a committed status transition.
//
// The push broadcast is always attempted. The broker status publish is
// attempted only while connected; a down transport is recorded, not queued.
// When dispatchRequired is set, exactly one dispatch publish is attempted for
// this call; on failure the report carries RobotNotified=false, dashboards
// get both the failed order-sent-to-agent event and a transport warning, and
// the committed status stays exactly as it is. A ready order with an
// unreachable agent is an operational condition to surface, not to mask.
func (d *EventDistributor) AnnounceTransition(
	o *order.Order,
	from, to order.Status,
	dispatchRequired bool,
	automated bool,
	source string,
) DeliveryReport {
	report := DeliveryReport{
		TransportConnected: d.transport.Connected(),
		DispatchRequired:   dispatchRequired,
	}

	if err := d.broadcaster.StatusUpdated(o, from, to, automated, source); err != nil {
		d.logger.Warn("dashboard broadcast failed",
			"order_id", o.ID().String(), "from", from.String(), "to", to.String(), "error", err)
	} else {
		report.BroadcastDelivered = true
	}

	if report.TransportConnected {
		if err := d.transport.NotifyStatusChange(o, from, to); err != nil {
			d.logger.Warn("status publish failed", "order_id", o.ID().String(), "error", err)
		} else {
			report.StatusPublished = true
		}
	} else {
		d.logger.Debug("transport unavailable, status publish skipped", "order_id", o.ID().String())
	}

	if dispatchRequired {
		report.RobotNotified = d.dispatch(o)
	}

	return report
}

// dispatch performs the one-shot agent dispatch publish and informs the
// dashboards of the outcome. Returns whether the agent was notified.
func (d *EventDistributor) dispatch(o *order.Order) bool {
	var dispatchErr error
	if d.transport.Connected() {
		dispatchErr = d.transport.DispatchOrder(o)
	} else {
		dispatchErr = fmt.Errorf("transport disconnected")
	}

	if dispatchErr != nil {
		d.logger.Warn("agent dispatch failed", "order_id", o.ID().String(), "error", dispatchErr)
		if err := d.broadcaster.OrderSentToAgent(o, false); err != nil {
			d.logger.Warn("dashboard broadcast failed", "order_id", o.ID().String(), "error", err)
		}
		warning := fmt.Sprintf("order %s is ready but the delivery agent could not be notified", o.ID().String())
		if err := d.broadcaster.TransportWarning(warning); err != nil {
			d.logger.Warn("dashboard warning failed", "order_id", o.ID().String(), "error", err)
		}
		return false
	}

	d.logger.Info("agent dispatched", "order_id", o.ID().String())
	if err := d.broadcaster.OrderSentToAgent(o, true); err != nil {
		d.logger.Warn("dashboard broadcast failed", "order_id", o.ID().String(), "error", err)
	}
	return true
}

// SyncOrders reads the full order collection and publishes it to the broker
// so external subscribers stay aligned with bulk reads. Tolerates an
// unavailable transport silently; the triggering read must never fail
// because of it.
func (d *EventDistributor) SyncOrders(ctx context.Context) {
	if !d.transport.Connected() {
		d.logger.Debug("transport unavailable, snapshot publish skipped")
		return
	}

	orders, err := d.orders.GetAll(ctx)
	if err != nil {
		d.logger.Warn("snapshot read failed", "error", err)
		return
	}
	if err = d.transport.PublishSnapshot(orders); err != nil {
		d.logger.Warn("snapshot publish failed", "error", err)
	}
}

// SyncPending reads the active working set and publishes it as the retained
// pending-orders snapshot.
func (d *EventDistributor) SyncPending(ctx context.Context) {
	if !d.transport.Connected() {
		d.logger.Debug("transport unavailable, pending snapshot publish skipped")
		return
	}

	orders, err := d.orders.GetActive(ctx)
	if err != nil {
		d.logger.Warn("pending snapshot read failed", "error", err)
		return
	}
	if err = d.transport.PublishPendingSnapshot(orders); err != nil {
		d.logger.Warn("pending snapshot publish failed", "error", err)
	}
}
