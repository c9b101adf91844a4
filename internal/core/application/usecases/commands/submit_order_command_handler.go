package commands

import (
	"context"

	"tableserve/internal/core/application/services"
	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
)

// SubmitOrderCommandHandler handles order submission: it builds the
// aggregate (consolidation and pricing happen there), commits it, and only
// then announces the creation over both channels.
type SubmitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	announcer  EventAnnouncer
}

// NewSubmitOrderCommandHandler creates a handler for order submissions.
func NewSubmitOrderCommandHandler(uowFactory OrderUoWFactory, announcer EventAnnouncer) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		announcer:  announcer,
	}
}

// Handle processes the submission. The store assigns the order id; the
// client total on the command is deliberately ignored. Distribution runs
// strictly after the commit and its outcome never fails the request.
func (h *SubmitOrderCommandHandler) Handle(
	ctx context.Context,
	cmd SubmitOrderCommand,
) (*order.Order, services.DeliveryReport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, services.DeliveryReport{}, err
	}

	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.TableID(),
		cmd.TableLocation(),
		cmd.RestaurantID(),
		cmd.Items(),
	)
	if err != nil {
		return nil, services.DeliveryReport{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, services.DeliveryReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, services.DeliveryReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, services.DeliveryReport{}, err
	}

	report := h.announcer.AnnounceCreated(newOrder)
	return newOrder, report, nil
}
