package commands

import (
	"context"

	"tableserve/internal/core/application/services"
	"tableserve/internal/core/domain/model/order"
)

// UpdateOrderStatusResult carries the outcome of a status transition back to
// the caller: the updated aggregate and the per-channel delivery report.
type UpdateOrderStatusResult struct {
	Order  *order.Order
	Report services.DeliveryReport
}

// UpdateOrderStatusCommandHandler applies lifecycle transitions. It serves
// staff updates, automated delivery confirmations, and cancellations alike;
// the command's origin decides which transitions the aggregate permits.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	announcer  EventAnnouncer
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	announcer EventAnnouncer,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		announcer:  announcer,
	}
}

// Handle loads the order, applies the transition through the aggregate, and
// commits. Distribution happens strictly after the commit; its failures are
// reported, never rolled back. A rejected transition leaves the row untouched.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (UpdateOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	previous := aggregate.Status()
	dispatchRequired, err := aggregate.ChangeStatus(cmd.Target(), cmd.Origin())
	if err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateOrderStatusResult{}, err
	}

	report := h.announcer.AnnounceTransition(
		aggregate, previous, aggregate.Status(),
		dispatchRequired, cmd.Origin().IsAutomated(), cmd.Source(),
	)

	return UpdateOrderStatusResult{Order: aggregate, Report: report}, nil
}
