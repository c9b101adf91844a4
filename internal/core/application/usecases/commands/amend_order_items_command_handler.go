package commands

import (
	"context"

	"tableserve/internal/core/domain/model/order"
)

// AmendOrderItemsCommandHandler replaces the item list of an existing order.
// Amendments touch items and total only; they do not move the lifecycle and
// are not distributed as events.
type AmendOrderItemsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAmendOrderItemsCommandHandler creates a handler for item amendments.
func NewAmendOrderItemsCommandHandler(uowFactory OrderUoWFactory) AmendOrderItemsCommandHandler {
	return AmendOrderItemsCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order, re-consolidates the replacement items through the
// aggregate, and commits items and total together.
func (h *AmendOrderItemsCommandHandler) Handle(
	ctx context.Context,
	cmd AmendOrderItemsCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ReplaceItems(cmd.Items()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
