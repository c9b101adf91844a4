// Package ws implements the dashboard push channel over websockets. The hub
// fans committed order events out to every connected dashboard; delivery is
// best-effort, and a client whose write fails is dropped on the spot.
package ws

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tableserve/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const writeTimeout = 5 * time.Second

// Event is the envelope every dashboard message travels in.
type Event struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// orderEventData is the order projection pushed to dashboards.
type orderEventData struct {
	OrderID       string  `json:"orderId"`
	TableID       string  `json:"tableId"`
	TableLocation string  `json:"tableLocation,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
}

type statusEventData struct {
	orderEventData
	From      string `json:"from"`
	To        string `json:"to"`
	Automated bool   `json:"automated"`
	Source    string `json:"source,omitempty"`
}

type dispatchEventData struct {
	orderEventData
	Notified bool `json:"notified"`
}

// Hub tracks connected dashboards and broadcasts events to all of them.
// It implements ports.DashboardBroadcaster.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "ws_hub"),
		upgrader: websocket.Upgrader{
			// dashboards are served from arbitrary staff devices
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handle upgrades an HTTP request to a websocket and registers the client.
// The read loop exists only to notice the close handshake; dashboards never
// send application data.
func (h *Hub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("dashboard connected", "clients", count)

	go h.readLoop(conn)
	return nil
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	_ = conn.Close()
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// broadcast writes the event to every client, dropping the ones that fail.
// Holding the lock across the writes keeps event order identical for all
// clients; writes are bounded by writeTimeout.
func (h *Hub) broadcast(event Event) error {
	event.Timestamp = time.Now().UTC()

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("dashboard write failed, dropping client", "error", err)
			_ = conn.Close()
			delete(h.clients, conn)
		}
	}
	return nil
}

func orderData(o *order.Order) orderEventData {
	return orderEventData{
		OrderID:       o.ID().String(),
		TableID:       o.TableID(),
		TableLocation: o.TableLocation(),
		TotalPrice:    o.TotalPrice(),
		Status:        o.Status().String(),
	}
}

// OrderCreated announces a newly submitted order.
func (h *Hub) OrderCreated(o *order.Order) error {
	return h.broadcast(Event{Event: "order_created", Data: orderData(o)})
}

// StatusUpdated announces a committed transition.
func (h *Hub) StatusUpdated(o *order.Order, from, to order.Status, automated bool, source string) error {
	return h.broadcast(Event{Event: "status_updated", Data: statusEventData{
		orderEventData: orderData(o),
		From:           from.String(),
		To:             to.String(),
		Automated:      automated,
		Source:         source,
	}})
}

// OrderSentToAgent announces the outcome of an agent dispatch attempt.
func (h *Hub) OrderSentToAgent(o *order.Order, notified bool) error {
	return h.broadcast(Event{Event: "order_sent_to_agent", Data: dispatchEventData{
		orderEventData: orderData(o),
		Notified:       notified,
	}})
}

// TransportWarning surfaces a transport condition to the dashboards.
func (h *Hub) TransportWarning(message string) error {
	return h.broadcast(Event{Event: "transport_warning", Data: map[string]string{
		"message": message,
	}})
}
