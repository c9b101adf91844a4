// Package http exposes the order service over echo. Handlers translate
// requests into commands and queries; every body they accept or return is a
// plain JSON shape, and failures always carry {"success": false}.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tableserve/internal/core/application/usecases/commands"
	"tableserve/internal/core/application/usecases/queries"
	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultRecentLimit = 10

// snapshotSyncer is the slice of the distributor the listing endpoints use
// for their side publishes. The syncer reads the collection itself and never
// fails the triggering request.
type snapshotSyncer interface {
	SyncOrders(ctx context.Context)
	SyncPending(ctx context.Context)
}

// Server wires HTTP routes to the application layer.
type Server struct {
	submitHandler       commands.SubmitOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	amendItemsHandler   commands.AmendOrderItemsCommandHandler

	getOrderHandler   queries.GetOrderQueryHandler
	listOrdersHandler queries.ListOrdersQueryHandler

	syncer    snapshotSyncer
	transport interface{ Connected() bool }
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	submitHandler commands.SubmitOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	amendItemsHandler commands.AmendOrderItemsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	syncer snapshotSyncer,
	transport interface{ Connected() bool },
) *Server {
	return &Server{
		submitHandler:       submitHandler,
		updateStatusHandler: updateStatusHandler,
		amendItemsHandler:   amendItemsHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		syncer:              syncer,
		transport:           transport,
	}
}

// RegisterRoutes installs all order routes plus the websocket upgrade.
func (s *Server) RegisterRoutes(e *echo.Echo, wsHandler echo.HandlerFunc) {
	e.POST("/orders/submit", s.SubmitOrder)
	e.GET("/orders/all", s.GetAllOrders)
	e.GET("/orders/pending", s.GetPendingOrders)
	e.GET("/orders/recent", s.GetRecentOrders)
	e.GET("/orders/status/:status", s.GetOrdersByStatus)
	e.GET("/orders/:orderId", s.GetOrder)
	e.PUT("/orders/:orderId/status", s.UpdateOrderStatus)
	e.POST("/orders/auto-update-status", s.AutoUpdateOrderStatus)
	e.DELETE("/orders/:orderId", s.CancelOrder)
	e.PUT("/orders/:orderId/items", s.AmendOrderItems)
	e.GET("/ws", wsHandler)
	e.GET("/health", s.Health)
}

type submitOrderRequest struct {
	TableID       string           `json:"tableId"`
	TableLocation string           `json:"tableLocation"`
	RestaurantID  string           `json:"restaurantId"`
	Items         []order.LineItem `json:"items"`
	TotalPrice    float64          `json:"totalPrice"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

type autoUpdateStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Source  string `json:"source"`
}

type amendItemsRequest struct {
	Items []order.LineItem `json:"items"`
}

type itemResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

type orderResponse struct {
	ID            string         `json:"id"`
	TableID       string         `json:"tableId"`
	TableLocation string         `json:"tableLocation,omitempty"`
	RestaurantID  string         `json:"restaurantId,omitempty"`
	Items         []itemResponse `json:"items"`
	TotalPrice    float64        `json:"totalPrice"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func toOrderResponse(o *order.Order) orderResponse {
	items := make([]itemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemResponse{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}

	return orderResponse{
		ID:            o.ID().String(),
		TableID:       o.TableID(),
		TableLocation: o.TableLocation(),
		RestaurantID:  o.RestaurantID(),
		Items:         items,
		TotalPrice:    o.TotalPrice(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

// failure renders the uniform error body with the status mapped from the
// error class.
func failure(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrStatusIsInvalid):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, echo.Map{
		"success": false,
		"message": err.Error(),
	})
}

// SubmitOrder handles POST /orders/submit. The client-side total in the body
// is accepted and ignored; the response carries the recomputed one.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	var req submitOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return failure(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSubmitOrderCommand(
		req.TableID, req.TableLocation, req.RestaurantID, req.Items, req.TotalPrice,
	)
	if err != nil {
		return failure(ctx, err)
	}

	created, report, err := s.submitHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"order":   toOrderResponse(created),
		"report":  report,
	})
}

// GetAllOrders handles GET /orders/all. The listing also feeds the broker
// snapshot topic as a side publish.
func (s *Server) GetAllOrders(ctx echo.Context) error {
	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListAllOrdersQuery())
	if err != nil {
		return failure(ctx, err)
	}

	s.syncer.SyncOrders(ctx.Request().Context())
	return listResponse(ctx, views)
}

// GetPendingOrders handles GET /orders/pending: the active working set,
// oldest first, republished retained for reconnecting agents.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListPendingOrdersQuery())
	if err != nil {
		return failure(ctx, err)
	}

	s.syncer.SyncPending(ctx.Request().Context())
	return listResponse(ctx, views)
}

// GetRecentOrders handles GET /orders/recent?limit=N.
func (s *Server) GetRecentOrders(ctx echo.Context) error {
	limit := defaultRecentLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return failure(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
		limit = parsed
	}

	query, err := queries.NewListRecentOrdersQuery(limit)
	if err != nil {
		return failure(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err)
	}

	return listResponse(ctx, views)
}

// GetOrdersByStatus handles GET /orders/status/:status.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.ParseStatus(ctx.Param("status"))
	if err != nil {
		return failure(ctx, err)
	}

	query, err := queries.NewListOrdersByStatusQuery(status)
	if err != nil {
		return failure(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err)
	}

	return listResponse(ctx, views)
}

// GetOrder handles GET /orders/:orderId.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return failure(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return failure(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   view,
	})
}

// UpdateOrderStatus handles PUT /orders/:orderId/status for staff requests.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return failure(ctx, err)
	}

	var req updateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return failure(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return failure(ctx, err)
	}

	return s.applyTransition(ctx, orderID, target, order.OriginStaff, req.Source)
}

// AutoUpdateOrderStatus handles POST /orders/auto-update-status for
// automated actors; the lifecycle restricts them to the delivered status.
func (s *Server) AutoUpdateOrderStatus(ctx echo.Context) error {
	var req autoUpdateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return failure(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return failure(ctx, err)
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return failure(ctx, err)
	}

	source := req.Source
	if source == "" {
		source = "automated"
	}

	return s.applyTransition(ctx, orderID, target, order.OriginAutomated, source)
}

// CancelOrder handles DELETE /orders/:orderId as a soft cancel: the row is
// kept, the status moves to cancelled.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return failure(ctx, err)
	}

	return s.applyTransition(ctx, orderID, order.Cancelled, order.OriginStaff, "")
}

func (s *Server) applyTransition(
	ctx echo.Context,
	orderID kernel.UUID,
	target order.Status,
	origin order.Origin,
	source string,
) error {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, target, origin, source)
	if err != nil {
		return failure(ctx, err)
	}

	result, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   toOrderResponse(result.Order),
		"report":  result.Report,
	})
}

// AmendOrderItems handles PUT /orders/:orderId/items.
func (s *Server) AmendOrderItems(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return failure(ctx, err)
	}

	var req amendItemsRequest
	if err = ctx.Bind(&req); err != nil {
		return failure(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewAmendOrderItemsCommand(orderID, req.Items)
	if err != nil {
		return failure(ctx, err)
	}

	amended, err := s.amendItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failure(ctx, err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"order":   toOrderResponse(amended),
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":             "ok",
		"transportConnected": s.transport.Connected(),
	})
}

func listResponse(ctx echo.Context, views []queries.OrderView) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(views),
		"orders":  views,
	})
}

func parseOrderID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	return id, nil
}
