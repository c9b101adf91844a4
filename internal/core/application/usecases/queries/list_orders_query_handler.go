package queries

import (
	"context"

	"tableserve/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order collections from the database.
// Rows carrying an unrecognized status are still returned; the stored status
// string is passed through untouched so one bad row cannot poison a listing.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

const orderViewColumns = `
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
`

// Handle executes the listing for the query's shape. An empty result is an
// empty slice, never nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx)
	var rowsQuery *gorm.DB

	switch query.mode {
	case listPending:
		rowsQuery = tx.Raw(orderViewColumns+`
			WHERE status NOT IN (?, ?, ?)
			ORDER BY created_at ASC
		`, order.Delivered.String(), order.Cancelled.String(), order.Completed.String())
	case listRecent:
		rowsQuery = tx.Raw(orderViewColumns+`
			ORDER BY created_at DESC
			LIMIT ?
		`, query.limit)
	case listByStatus:
		rowsQuery = tx.Raw(orderViewColumns+`
			WHERE status = ?
			ORDER BY created_at DESC
		`, query.status.String())
	default:
		rowsQuery = tx.Raw(orderViewColumns + `
			ORDER BY created_at DESC
		`)
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrderView(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
