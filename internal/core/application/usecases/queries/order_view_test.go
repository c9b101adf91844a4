package queries_test

import (
	"encoding/json"
	"testing"
	"time"

	"tableserve/internal/core/application/usecases/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOrderView_MarshalsIDAsUUIDString(t *testing.T) {
	id := uuid.New()
	view := queries.OrderView{
		ID:         id,
		TableID:    "table-7",
		Items:      []queries.OrderItemView{{Name: "Tea", Quantity: 2, UnitPrice: 2, LineTotal: 4}},
		TotalPrice: 4,
		Status:     "pending",
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	require.Equal(t, id.String(), decoded["id"])
	require.Equal(t, "table-7", decoded["tableId"])
}

func TestOrderView_MarshalsInsideCollections(t *testing.T) {
	id := uuid.New()
	views := []queries.OrderView{{ID: id, Status: "ready"}}

	body, err := json.Marshal(views)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, id.String(), decoded[0]["id"])
}
