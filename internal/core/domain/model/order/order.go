package order

import (
	"errors"
	"time"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly
// validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a customer's placed request, tracked through the status
// lifecycle. It is the aggregate root that owns item consolidation, pricing,
// and status transitions.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier, assigned once and never changed
//   - Must reference a table
//   - Holds at least one consolidated line item; every quantity >= 1 and
//     every unit price >= 0
//   - totalPrice always equals the sum of the current line totals; it is
//     recomputed on every write that touches items
//   - status is always one of the lifecycle enum values
//   - Every mutation bumps updatedAt
//
// The struct uses private fields to ensure encapsulation; mutation happens
// only through ChangeStatus and ReplaceItems.
type Order struct {
	id            kernel.UUID
	tableID       string
	tableLocation string
	restaurantID  string
	items         []LineItem
	totalPrice    float64
	status        Status
	createdAt     time.Time
	updatedAt     time.Time

	isConstructed bool
}

// NewOrder creates a new Order from a submission. The raw items are
// consolidated and priced; any client-supplied total is ignored by design of
// the calling layer, which never passes one here.
//
// Validation failures:
//   - invalid id
//   - empty tableID (value-required error)
//   - empty rawItems (value-required error)
//   - no item with quantity >= 1 after consolidation (value-invalid error)
//
// A new order always starts in Pending with createdAt == updatedAt.
func NewOrder(id kernel.UUID, tableID, tableLocation, restaurantID string, rawItems []LineItem) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tableID == "" {
		return nil, errs.NewValueIsRequiredError("tableId")
	}
	if len(rawItems) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := Consolidate(rawItems)
	if len(items) == 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("items",
			errors.New("no item has a quantity of at least 1 after consolidation"))
	}

	now := time.Now().UTC()
	return &Order{
		id:            id,
		tableID:       tableID,
		tableLocation: tableLocation,
		restaurantID:  restaurantID,
		items:         items,
		totalPrice:    TotalPrice(items),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored items are
// assumed consolidated; the total is recomputed from them so the pricing
// invariant holds even for rows written by older versions.
func RestoreOrder(
	id kernel.UUID,
	tableID, tableLocation, restaurantID string,
	items []LineItem,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tableID == "" {
		return nil, errs.NewValueIsRequiredError("tableId")
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsInvalidError("items")
	}

	return &Order{
		id:            id,
		tableID:       tableID,
		tableLocation: tableLocation,
		restaurantID:  restaurantID,
		items:         items,
		totalPrice:    TotalPrice(items),
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// It returns ErrOrderIsNotConstructed for zero-value instances, preventing
// validation from being bypassed by direct struct initialization.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableID returns the identifier of the table the order was placed from.
func (o *Order) TableID() string {
	return o.tableID
}

// TableLocation returns the optional free-text location of the table.
func (o *Order) TableLocation() string {
	return o.tableLocation
}

// RestaurantID returns the optional restaurant reference.
func (o *Order) RestaurantID() string {
	return o.restaurantID
}

// Items returns a copy of the consolidated line items, in first-seen order.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// TotalPrice returns the server-computed total: the sum of all line totals.
func (o *Order) TotalPrice() float64 {
	return o.totalPrice
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last write.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus applies a lifecycle transition and reports whether an agent
// dispatch is required for this call.
//
// The transition rules live on Status.TransitionTo: the target must be a
// lifecycle value, automated origins may only set Delivered, and terminal
// states reject everything. A transition landing on Ready reports
// dispatchRequired = true every time it is applied; the aggregate does not
// deduplicate repeated entries into Ready.
func (o *Order) ChangeStatus(target Status, origin Origin) (bool, error) {
	newStatus, dispatchRequired, err := o.status.TransitionTo(target, origin)
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	return dispatchRequired, nil
}

// ReplaceItems re-consolidates the order's items from a raw amendment and
// recomputes the total price. Items and total are mutated together,
// atomically from the caller's perspective, and independent of status.
func (o *Order) ReplaceItems(rawItems []LineItem) error {
	if len(rawItems) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := Consolidate(rawItems)
	if len(items) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("items",
			errors.New("no item has a quantity of at least 1 after consolidation"))
	}

	o.items = items
	o.totalPrice = TotalPrice(items)
	o.updatedAt = time.Now().UTC()
	return nil
}
