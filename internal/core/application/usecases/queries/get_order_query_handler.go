package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tableserve/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model by id.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an object-not-found error when the
// order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			table_id,
			table_location,
			restaurant_id,
			items,
			total_price,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	view, err := scanOrderView(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
		}
		return OrderView{}, err
	}
	return view, nil
}

// scanOrderView maps one orders row onto the read model. The scan function
// abstracts over sql.Row and sql.Rows.
func scanOrderView(scan func(dest ...any) error) (OrderView, error) {
	var (
		id          uuid.UUID
		rawItems    []byte
		view        OrderView
		createdAt   time.Time
		updatedAt   time.Time
		statusValue string
	)

	err := scan(
		&id,
		&view.TableID,
		&view.TableLocation,
		&view.RestaurantID,
		&rawItems,
		&view.TotalPrice,
		&statusValue,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return OrderView{}, err
	}
	view.ID = id

	items, err := itemViewsFromJSON(rawItems)
	if err != nil {
		return OrderView{}, err
	}
	view.Items = items

	view.Status = statusValue
	view.CreatedAt = createdAt
	view.UpdatedAt = updatedAt
	return view, nil
}
