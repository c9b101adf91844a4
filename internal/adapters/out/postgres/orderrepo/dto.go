// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order aggregate and its
// relational representation; the consolidated items travel as a jsonb column.
package orderrepo

import (
	"encoding/json"
	"time"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status is stored as its lowercase string so rows stay readable and the
// legacy "completed" value survives round trips untouched.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TableID       string    `gorm:"type:text;not null;index"`
	TableLocation string    `gorm:"type:text"`
	RestaurantID  string    `gorm:"type:text"`
	Items         []byte    `gorm:"type:jsonb;not null"`
	TotalPrice    float64   `gorm:"not null"`
	Status        string    `gorm:"type:text;not null;index"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items, err := json.Marshal(aggregate.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		TableID:       aggregate.TableID(),
		TableLocation: aggregate.TableLocation(),
		RestaurantID:  aggregate.RestaurantID(),
		Items:         items,
		TotalPrice:    aggregate.TotalPrice(),
		Status:        aggregate.Status().String(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO back into an order aggregate. The stored
// status goes through the tolerant parser so rows written by older versions
// still restore.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var items []order.LineItem
	if err = json.Unmarshal(dto.Items, &items); err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.TableID,
		dto.TableLocation,
		dto.RestaurantID,
		items,
		order.ParseStoredStatus(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
