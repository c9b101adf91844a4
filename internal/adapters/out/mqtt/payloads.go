package mqtt

import (
	"time"

	"tableserve/internal/core/domain/model/order"
)

// ItemPayload is one consolidated line on the wire.
type ItemPayload struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// DispatchPayload is the self-contained order description published to the
// agent dispatch topic. The agent acts on it without any further lookup.
type DispatchPayload struct {
	OrderID       string        `json:"orderId"`
	TableID       string        `json:"tableId"`
	TableLocation string        `json:"tableLocation,omitempty"`
	Items         []ItemPayload `json:"items"`
	TotalPrice    float64       `json:"totalPrice"`
	Priority      int           `json:"priority"`
	Timestamp     time.Time     `json:"timestamp"`
}

// OrderPayload announces a new order on the orders topic.
type OrderPayload struct {
	OrderID    string        `json:"orderId"`
	TableID    string        `json:"tableId"`
	Items      []ItemPayload `json:"items"`
	TotalPrice float64       `json:"totalPrice"`
	Status     string        `json:"status"`
	Timestamp  time.Time     `json:"timestamp"`
}

// StatusChangePayload announces a committed lifecycle transition.
type StatusChangePayload struct {
	OrderID   string    `json:"orderId"`
	TableID   string    `json:"tableId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// SystemStatusPayload is the retained online/offline notice on system/status.
// The offline variant doubles as the connection's last testament.
type SystemStatusPayload struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotPayload wraps a bulk order collection for snapshot topics.
type SnapshotPayload struct {
	Orders    []OrderPayload `json:"orders"`
	Count     int            `json:"count"`
	Timestamp time.Time      `json:"timestamp"`
}

// Priority thresholds for agent dispatch. Larger orders jump the queue.
const (
	priorityHigh   = 10
	priorityMedium = 5
	priorityLow    = 1

	highPriorityTotal   = 100
	mediumPriorityTotal = 50
)

// dispatchPriority derives the dispatch priority marker from the order total.
func dispatchPriority(totalPrice float64) int {
	switch {
	case totalPrice >= highPriorityTotal:
		return priorityHigh
	case totalPrice >= mediumPriorityTotal:
		return priorityMedium
	default:
		return priorityLow
	}
}

func itemPayloads(items []order.LineItem) []ItemPayload {
	payloads := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, ItemPayload{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return payloads
}

func dispatchPayload(o *order.Order) DispatchPayload {
	return DispatchPayload{
		OrderID:       o.ID().String(),
		TableID:       o.TableID(),
		TableLocation: o.TableLocation(),
		Items:         itemPayloads(o.Items()),
		TotalPrice:    o.TotalPrice(),
		Priority:      dispatchPriority(o.TotalPrice()),
		Timestamp:     time.Now().UTC(),
	}
}

func orderPayload(o *order.Order) OrderPayload {
	return OrderPayload{
		OrderID:    o.ID().String(),
		TableID:    o.TableID(),
		Items:      itemPayloads(o.Items()),
		TotalPrice: o.TotalPrice(),
		Status:     o.Status().String(),
		Timestamp:  time.Now().UTC(),
	}
}

func snapshotPayload(orders []*order.Order) SnapshotPayload {
	payloads := make([]OrderPayload, 0, len(orders))
	for _, o := range orders {
		payloads = append(payloads, orderPayload(o))
	}
	return SnapshotPayload{
		Orders:    payloads,
		Count:     len(payloads),
		Timestamp: time.Now().UTC(),
	}
}

func statusChangePayload(o *order.Order, from, to order.Status) StatusChangePayload {
	return StatusChangePayload{
		OrderID:   o.ID().String(),
		TableID:   o.TableID(),
		From:      from.String(),
		To:        to.String(),
		Timestamp: time.Now().UTC(),
	}
}
