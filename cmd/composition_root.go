package cmd

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	httpin "tableserve/internal/adapters/in/http"
	"tableserve/internal/adapters/in/ws"
	"tableserve/internal/adapters/out/mqtt"
	"tableserve/internal/adapters/out/postgres"
	"tableserve/internal/adapters/out/postgres/orderrepo"
	"tableserve/internal/core/application/services"
	"tableserve/internal/core/application/usecases/commands"
	"tableserve/internal/core/application/usecases/queries"
	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, the distributor, and the use case
// handlers. The transport's delivery-complete subscription is routed into
// the same status command handler the HTTP endpoints use, so the automated
// delivered transition follows the exact same path as a staff one.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	transport   *mqtt.Client
	hub         *ws.Hub
	distributor *services.EventDistributor
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	transport := mqtt.NewClient(mqtt.Config{
		BrokerURL:            config.MqttBrokerURL,
		ClientID:             config.MqttClientID,
		Username:             config.MqttUsername,
		Password:             config.MqttPassword,
		KeepAlive:            secondsOrZero(config.MqttKeepAliveSeconds),
		ReconnectMaxAttempts: intOrZero(config.MqttReconnectMaxAttempts),
		ReconnectBaseDelay:   millisOrZero(config.MqttReconnectBaseDelayMS),
		ReconnectMaxDelay:    millisOrZero(config.MqttReconnectMaxDelayMS),
	}, logger)

	hub := ws.NewHub(logger)

	root := &CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		transport:   transport,
		hub:         hub,
		distributor: services.NewEventDistributor(transport, hub, orderrepo.NewGormOrderRepository(gormDB), logger),
		logger:      logger,
	}

	root.registerInboundHandlers()
	return root
}

// Transport returns the broker transport for connect/disconnect control.
func (c *CompositionRoot) Transport() *mqtt.Client {
	return c.transport
}

// Hub returns the dashboard websocket hub.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), c.distributor)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.distributor)
}

func (c *CompositionRoot) CreateAmendOrderItemsCommandHandler() commands.AmendOrderItemsCommandHandler {
	return commands.NewAmendOrderItemsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo-facing server over the handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateAmendOrderItemsCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.distributor,
		c.transport,
	)
}

// CreateJobManager assembles the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.distributor, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// registerInboundHandlers installs the broker subscriptions' behavior. The
// delivery-complete message is the one inbound event with a side effect; the
// category handlers only log.
func (c *CompositionRoot) registerInboundHandlers() {
	handler := c.CreateUpdateOrderStatusCommandHandler()

	c.transport.HandleTopic(mqtt.TopicDeliveryComplete, func(msg mqtt.Message) {
		orderID, ok := msg.Fields["orderId"].(string)
		if !ok {
			c.logger.Warn("delivery-complete message without orderId", "topic", msg.Topic)
			return
		}

		id, err := kernel.UUIDFromString(orderID)
		if err != nil {
			c.logger.Warn("delivery-complete message with malformed orderId", "order_id", orderID, "error", err)
			return
		}

		source, _ := msg.Fields["source"].(string)
		if source == "" {
			source = "delivery-agent"
		}

		cmd, err := commands.NewUpdateOrderStatusCommand(id, order.Delivered, order.OriginAutomated, source)
		if err != nil {
			c.logger.Warn("delivery-complete transition rejected", "order_id", orderID, "error", err)
			return
		}

		if _, err = handler.Handle(context.Background(), cmd); err != nil {
			c.logger.Warn("delivery-complete transition failed", "order_id", orderID, "error", err)
		}
	})

	c.transport.HandleTopic(mqtt.TopicSystemEmergency, func(msg mqtt.Message) {
		c.logger.Error("emergency message received", "payload", string(msg.Raw))
		_ = c.hub.TransportWarning("emergency stop signalled: " + string(msg.Raw))
	})

	c.transport.HandleCategory(mqtt.CategoryAgent, func(msg mqtt.Message) {
		c.logger.Debug("agent message", "topic", msg.Topic)
	})

	c.transport.HandleAny(func(msg mqtt.Message) {
		c.logger.Debug("unhandled broker message", "topic", msg.Topic, "category", msg.Category.String())
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

func intOrZero(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func secondsOrZero(raw string) time.Duration {
	return time.Duration(intOrZero(raw)) * time.Second
}

func millisOrZero(raw string) time.Duration {
	return time.Duration(intOrZero(raw)) * time.Millisecond
}
