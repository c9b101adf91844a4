// Package mqtt wraps the broker connection for agent communication. It owns
// the connect/backoff state machine, the topic namespace, and inbound message
// routing; the rest of the service talks to it only through the
// AgentTransport port.
package mqtt

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	qosAtMostOnce  byte = 0
	qosAtLeastOnce byte = 1
	qosExactlyOnce byte = 2
)

const serviceName = "tableserve"

// ConnState is the wrapper's connection state. Reconnection is owned by the
// wrapper itself; the paho auto-reconnect stays disabled so state changes
// are always ours.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

// String returns the state name for logging.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// Config carries the broker connection settings.
type Config struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string

	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	PublishTimeout time.Duration

	ReconnectMaxAttempts int
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
}

// withDefaults fills unset timing fields.
func (c Config) withDefaults() Config {
	if c.ClientID == "" {
		c.ClientID = serviceName
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = 30 * time.Second
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 10 * time.Second
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = 5 * time.Second
	}
	if c.ReconnectMaxAttempts <= 0 {
		c.ReconnectMaxAttempts = 10
	}
	if c.ReconnectBaseDelay <= 0 {
		c.ReconnectBaseDelay = 2 * time.Second
	}
	if c.ReconnectMaxDelay <= 0 {
		c.ReconnectMaxDelay = 30 * time.Second
	}
	return c
}

// reconnectDelay returns the wait before the given attempt: the base delay
// grows linearly with the attempt number and is capped at max.
func reconnectDelay(attempt int, base, max time.Duration) time.Duration {
	delay := time.Duration(attempt) * base
	if delay > max {
		return max
	}
	return delay
}

// Message is one inbound broker message after classification. Fields holds
// the decoded JSON object when the payload is one; Raw always carries the
// untouched bytes.
type Message struct {
	Topic    string
	Category Category
	Fields   map[string]any
	Raw      []byte
}

// MessageHandler consumes one inbound message.
type MessageHandler func(msg Message)

// Client is the broker transport. It implements ports.AgentTransport.
type Client struct {
	cfg    Config
	logger *slog.Logger

	mu           sync.RWMutex
	state        ConnState
	conn         paho.Client
	reconnecting bool

	topicHandlers    map[string]MessageHandler
	categoryHandlers map[Category]MessageHandler
	genericHandler   MessageHandler

	failed     chan struct{}
	failedOnce sync.Once
}

// NewClient creates the transport wrapper. Handlers must be registered
// before Connect; routing reads them without locking afterwards.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:              cfg.withDefaults(),
		logger:           logger.With("component", "mqtt_transport"),
		state:            StateDisconnected,
		topicHandlers:    make(map[string]MessageHandler),
		categoryHandlers: make(map[Category]MessageHandler),
		failed:           make(chan struct{}),
	}
}

// HandleTopic registers an exact-topic handler. Exact handlers win over
// category handlers.
func (c *Client) HandleTopic(topic string, h MessageHandler) {
	c.topicHandlers[topic] = h
}

// HandleCategory registers a handler for every topic in a category that has
// no exact handler.
func (c *Client) HandleCategory(category Category, h MessageHandler) {
	c.categoryHandlers[category] = h
}

// HandleAny registers the fallback handler. It sees every message no other
// handler claimed, including unclassified topics.
func (c *Client) HandleAny(h MessageHandler) {
	c.genericHandler = h
}

// Connect dials the broker. The connection registers the retained offline
// status notice as its last testament so the broker announces an unclean
// drop on our behalf. On failure the background reconnect loop starts and
// the dial error is returned; the service keeps running without a broker.
func (c *Client) Connect() error {
	c.setState(StateConnecting)

	will, err := json.Marshal(SystemStatusPayload{
		Service:   serviceName,
		Status:    "offline",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	opts := paho.NewClientOptions().
		AddBroker(c.cfg.BrokerURL).
		SetClientID(c.cfg.ClientID).
		SetUsername(c.cfg.Username).
		SetPassword(c.cfg.Password).
		SetKeepAlive(c.cfg.KeepAlive).
		SetConnectTimeout(c.cfg.ConnectTimeout).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetBinaryWill(TopicSystemStatus, will, qosAtLeastOnce, true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost)

	conn := paho.NewClient(opts)

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	token := conn.Connect()
	if !token.WaitTimeout(c.cfg.ConnectTimeout) || token.Error() != nil {
		dialErr := token.Error()
		if dialErr == nil {
			dialErr = errs.NewTransportUnavailableError(c.cfg.BrokerURL)
		}
		c.logger.Warn("broker dial failed", "broker", c.cfg.BrokerURL, "error", dialErr)
		c.startReconnect()
		return dialErr
	}

	return nil
}

// Disconnect publishes a clean retained offline notice and closes the
// connection, which suppresses the last testament.
func (c *Client) Disconnect() {
	if c.Connected() {
		_ = c.publish(TopicSystemStatus, qosAtLeastOnce, true, SystemStatusPayload{
			Service:   serviceName,
			Status:    "offline",
			Timestamp: time.Now().UTC(),
		})
	}

	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.Disconnect(250)
	}
}

// Connected reports whether the wrapper considers itself connected.
func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Failed is closed when the reconnect loop gives up for good. The
// composition root watches it to decide whether to keep running degraded.
func (c *Client) Failed() <-chan struct{} {
	return c.failed
}

func (c *Client) setState(s ConnState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) onConnect(conn paho.Client) {
	c.setState(StateConnected)
	c.logger.Info("broker connected", "broker", c.cfg.BrokerURL)

	token := conn.SubscribeMultiple(inboundTopics(), c.route)
	if !token.WaitTimeout(c.cfg.ConnectTimeout) || token.Error() != nil {
		c.logger.Warn("inbound subscription failed", "error", token.Error())
	}

	err := c.publish(TopicSystemStatus, qosAtLeastOnce, true, SystemStatusPayload{
		Service:   serviceName,
		Status:    "online",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		c.logger.Warn("online status publish failed", "error", err)
	}
}

func (c *Client) onConnectionLost(_ paho.Client, err error) {
	c.logger.Warn("broker connection lost", "error", err)
	c.startReconnect()
}

// startReconnect moves to the reconnecting state and launches the backoff
// loop, unless one is already running.
func (c *Client) startReconnect() {
	c.mu.Lock()
	if c.reconnecting {
		c.mu.Unlock()
		return
	}
	c.reconnecting = true
	c.state = StateReconnecting
	c.mu.Unlock()

	go c.reconnectLoop()
}

// reconnectLoop retries the dial with linearly growing, capped delays. After
// the attempt cap the state drops to disconnected for good and Failed is
// closed; the service keeps serving with the broker leg recorded as down.
func (c *Client) reconnectLoop() {
	defer func() {
		c.mu.Lock()
		c.reconnecting = false
		c.mu.Unlock()
	}()

	for attempt := 1; attempt <= c.cfg.ReconnectMaxAttempts; attempt++ {
		delay := reconnectDelay(attempt, c.cfg.ReconnectBaseDelay, c.cfg.ReconnectMaxDelay)
		c.logger.Info("broker reconnect scheduled", "attempt", attempt, "delay", delay)
		time.Sleep(delay)

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		token := conn.Connect()
		if token.WaitTimeout(c.cfg.ConnectTimeout) && token.Error() == nil {
			return
		}
		c.logger.Warn("broker reconnect failed", "attempt", attempt, "error", token.Error())
	}

	c.setState(StateDisconnected)
	c.logger.Error("broker reconnect attempts exhausted", "attempts", c.cfg.ReconnectMaxAttempts)
	c.failedOnce.Do(func() { close(c.failed) })
}

// publish sends one message. It fails immediately when not connected; there
// is no outbound queue.
func (c *Client) publish(topic string, qos byte, retain bool, payload any) error {
	c.mu.RLock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.RUnlock()

	if !connected || conn == nil {
		return errs.NewTransportUnavailableError(topic)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := conn.Publish(topic, qos, retain, body)
	if !token.WaitTimeout(c.cfg.PublishTimeout) {
		return errs.NewTransportUnavailableError(topic)
	}
	if token.Error() != nil {
		return errs.NewTransportUnavailableErrorWithCause(topic, token.Error())
	}
	return nil
}

// route dispatches one inbound message: exact-topic handler first, then the
// category handler, then the generic fallback.
func (c *Client) route(_ paho.Client, m paho.Message) {
	msg := Message{
		Topic:    m.Topic(),
		Category: Classify(m.Topic()),
		Raw:      m.Payload(),
	}

	var fields map[string]any
	if err := json.Unmarshal(m.Payload(), &fields); err == nil {
		msg.Fields = fields
	}

	c.logger.Debug("inbound message", "topic", msg.Topic, "category", msg.Category.String())

	if h, ok := c.topicHandlers[msg.Topic]; ok {
		h(msg)
		return
	}
	if h, ok := c.categoryHandlers[msg.Category]; ok {
		h(msg)
		return
	}
	if c.genericHandler != nil {
		c.genericHandler(msg)
	}
}

// NotifyOrderCreated publishes a new order announcement.
func (c *Client) NotifyOrderCreated(o *order.Order) error {
	return c.publish(TopicOrdersNew, qosAtLeastOnce, false, orderPayload(o))
}

// NotifyStatusChange publishes a committed status transition.
func (c *Client) NotifyStatusChange(o *order.Order, from, to order.Status) error {
	return c.publish(TopicOrdersStatusUpdate, qosAtLeastOnce, false, statusChangePayload(o, from, to))
}

// DispatchOrder publishes the self-contained dispatch request to the agent.
func (c *Client) DispatchOrder(o *order.Order) error {
	return c.publish(TopicRobotDispatch, qosAtLeastOnce, false, dispatchPayload(o))
}

// PublishSnapshot publishes the full order collection.
func (c *Client) PublishSnapshot(orders []*order.Order) error {
	return c.publish(TopicOrdersSnapshot, qosAtLeastOnce, false, snapshotPayload(orders))
}

// PublishPendingSnapshot publishes the pending working set, retained so a
// reconnecting agent immediately sees the current backlog.
func (c *Client) PublishPendingSnapshot(orders []*order.Order) error {
	return c.publish(TopicOrdersPending, qosAtLeastOnce, true, snapshotPayload(orders))
}
