package commands

import (
	"errors"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/guard"
)

// ErrUpdateOrderStatusCommandIsNotConstructed is returned when an
// UpdateOrderStatusCommand was not created via its constructor.
var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Cancellation is expressed as a transition to Cancelled;
// there is no separate delete operation.
type UpdateOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	origin  order.Origin
	source  string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status transition command. The target
// must be one of the lifecycle values; whether the transition is legal for
// this particular order is decided by the aggregate against its current state.
// Source is a free-text actor label carried through to the dashboards.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	origin order.Origin,
	source string,
) (UpdateOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err := target.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		target:  target,
		origin:  origin,
		source:  source,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Origin returns who requested the transition.
func (c UpdateOrderStatusCommand) Origin() order.Origin {
	return c.origin
}

// Source returns the actor label forwarded to dashboards.
func (c UpdateOrderStatusCommand) Source() string {
	return c.source
}
