// Package queries contains the read side of the service. Query handlers go
// straight to the database with raw SQL and map rows into read models; they
// never load aggregates and never mutate anything.
package queries

import (
	"encoding/json"
	"time"

	"tableserve/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderItemView is one consolidated line in a read model, with the line
// total already computed for display.
type OrderItemView struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
}

// OrderView is the read model returned by all order queries. The id is the
// raw uuid.UUID so it marshals to its canonical string form on every surface
// the view reaches.
type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	TableID       string          `json:"tableId"`
	TableLocation string          `json:"tableLocation,omitempty"`
	RestaurantID  string          `json:"restaurantId,omitempty"`
	Items         []OrderItemView `json:"items"`
	TotalPrice    float64         `json:"totalPrice"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// itemViewsFromJSON decodes the stored items column and derives line totals.
func itemViewsFromJSON(raw []byte) ([]OrderItemView, error) {
	var stored []order.LineItem
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, err
	}

	views := make([]OrderItemView, 0, len(stored))
	for _, item := range stored {
		views = append(views, OrderItemView{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return views, nil
}
