package commands

import (
	"errors"

	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"
	"tableserve/internal/pkg/guard"
)

// ErrSubmitOrderCommandIsNotConstructed is returned when a SubmitOrderCommand
// was not created via its constructor.
var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a request to create a new order from a table.
// The client-supplied total is carried for API compatibility but never used:
// the server always recomputes the total from the consolidated items.
type SubmitOrderCommand struct {
	tableID       string
	tableLocation string
	restaurantID  string
	items         []order.LineItem
	clientTotal   float64

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a new order.
// Requires a table id and a non-empty raw item list; deeper item validation
// (quantities surviving consolidation) happens in the aggregate.
func NewSubmitOrderCommand(
	tableID, tableLocation, restaurantID string,
	items []order.LineItem,
	clientTotal float64,
) (SubmitOrderCommand, error) {
	if tableID == "" {
		return SubmitOrderCommand{}, errs.NewValueIsRequiredError("tableId")
	}
	if len(items) == 0 {
		return SubmitOrderCommand{}, errs.NewValueIsRequiredError("items")
	}

	return SubmitOrderCommand{
		tableID:       tableID,
		tableLocation: tableLocation,
		restaurantID:  restaurantID,
		items:         items,
		clientTotal:   clientTotal,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// TableID returns the identifier of the submitting table.
func (c SubmitOrderCommand) TableID() string {
	return c.tableID
}

// TableLocation returns the optional table location text.
func (c SubmitOrderCommand) TableLocation() string {
	return c.tableLocation
}

// RestaurantID returns the optional restaurant reference.
func (c SubmitOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Items returns the raw, not yet consolidated item list.
func (c SubmitOrderCommand) Items() []order.LineItem {
	return c.items
}

// ClientTotal returns the total the client claimed. It is informational
// only and never trusted.
func (c SubmitOrderCommand) ClientTotal() float64 {
	return c.clientTotal
}
