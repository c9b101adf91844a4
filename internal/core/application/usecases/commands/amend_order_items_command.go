package commands

import (
	"errors"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"
	"tableserve/internal/pkg/guard"
)

// ErrAmendOrderItemsCommandIsNotConstructed is returned when an
// AmendOrderItemsCommand was not created via its constructor.
var ErrAmendOrderItemsCommandIsNotConstructed = errors.New(
	"AmendOrderItemsCommand must be created via NewAmendOrderItemsCommand constructor",
)

// AmendOrderItemsCommand represents a request to replace the items on an
// existing order. The replacement list goes through the same consolidation
// and pricing as a submission.
type AmendOrderItemsCommand struct {
	orderID kernel.UUID
	items   []order.LineItem

	guard guard.ConstructorGuard
}

// NewAmendOrderItemsCommand creates a command to replace an order's items.
func NewAmendOrderItemsCommand(orderID kernel.UUID, items []order.LineItem) (AmendOrderItemsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AmendOrderItemsCommand{}, err
	}
	if len(items) == 0 {
		return AmendOrderItemsCommand{}, errs.NewValueIsRequiredError("items")
	}

	return AmendOrderItemsCommand{
		orderID: orderID,
		items:   items,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AmendOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrAmendOrderItemsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to amend.
func (c AmendOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the raw replacement item list.
func (c AmendOrderItemsCommand) Items() []order.LineItem {
	return c.items
}
