package order_test

import (
	"testing"

	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "table-7", "terrace", "rest-1", []order.LineItem{
		{Name: "Tea", Quantity: 1, UnitPrice: 2},
		{Name: "Tea", Quantity: 2, UnitPrice: 2},
		{Name: "Cake", Quantity: 1, UnitPrice: 5.5},
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order with consolidated items and computed total", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "table-7", o.TableID())
		assert.Equal(t, "terrace", o.TableLocation())
		assert.Equal(t, "rest-1", o.RestaurantID())

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "Tea", items[0].Name)
		assert.Equal(t, 3, items[0].Quantity)
		assert.InDelta(t, 11.5, o.TotalPrice(), 1e-9)
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("requires a table", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", "", "", []order.LineItem{{Name: "Tea", Quantity: 1}})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "table-7", "", "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires at least one item surviving consolidation", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "table-7", "", "", []order.LineItem{
			{Name: "Ghost", Quantity: 1, UnitPrice: 2},
			{Name: "Ghost", Quantity: -1, UnitPrice: 2},
		})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires a valid id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "table-7", "", "", []order.LineItem{{Name: "Tea", Quantity: 1}})
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is rejected", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil is rejected", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("moves through the lifecycle and bumps updatedAt", func(t *testing.T) {
		o := newTestOrder(t)
		created := o.UpdatedAt()

		dispatch, err := o.ChangeStatus(order.Preparing, order.OriginStaff)
		require.NoError(t, err)
		assert.False(t, dispatch)
		assert.Equal(t, order.Preparing, o.Status())
		assert.False(t, o.UpdatedAt().Before(created))
	})

	t.Run("ready requests a dispatch every time", func(t *testing.T) {
		o := newTestOrder(t)

		dispatch, err := o.ChangeStatus(order.Ready, order.OriginStaff)
		require.NoError(t, err)
		assert.True(t, dispatch)

		// moving away and back in again re-triggers the request
		dispatch, err = o.ChangeStatus(order.Pending, order.OriginStaff)
		require.NoError(t, err)
		assert.False(t, dispatch)

		dispatch, err = o.ChangeStatus(order.Ready, order.OriginStaff)
		require.NoError(t, err)
		assert.True(t, dispatch)
	})

	t.Run("terminal orders reject further transitions", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.ChangeStatus(order.Cancelled, order.OriginStaff)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Pending, order.OriginStaff)
		require.ErrorIs(t, err, errs.ErrTransitionForbidden)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("automated origin is limited to delivered", func(t *testing.T) {
		o := newTestOrder(t)

		_, err := o.ChangeStatus(order.Ready, order.OriginAutomated)
		require.ErrorIs(t, err, errs.ErrTransitionForbidden)
		assert.Equal(t, order.Pending, o.Status())

		_, err = o.ChangeStatus(order.Delivered, order.OriginAutomated)
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("failed transitions leave the order untouched", func(t *testing.T) {
		o := newTestOrder(t)
		before := o.UpdatedAt()

		_, err := o.ChangeStatus(order.Unknown, order.OriginStaff)
		require.ErrorIs(t, err, errs.ErrStatusIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})
}

func TestOrder_ReplaceItems(t *testing.T) {
	t.Run("re-consolidates and recomputes the total", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ReplaceItems([]order.LineItem{
			{Name: "Soup", Quantity: 2, UnitPrice: 4},
			{Name: "Soup", Quantity: 1, UnitPrice: 4},
		})
		require.NoError(t, err)

		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.InDelta(t, 12.0, o.TotalPrice(), 1e-9)
	})

	t.Run("amendment is independent of status", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.ChangeStatus(order.Ready, order.OriginStaff)
		require.NoError(t, err)

		require.NoError(t, o.ReplaceItems([]order.LineItem{{Name: "Tea", Quantity: 1, UnitPrice: 2}}))
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("rejects empty amendments", func(t *testing.T) {
		o := newTestOrder(t)
		require.ErrorIs(t, o.ReplaceItems(nil), errs.ErrValueIsRequired)
	})

	t.Run("total always equals the sum of line totals", func(t *testing.T) {
		o := newTestOrder(t)
		amendments := [][]order.LineItem{
			{{Name: "A", Quantity: 2, UnitPrice: 1.25}},
			{{Name: "B", Quantity: 1, UnitPrice: 0}, {Name: "C", Quantity: 5, UnitPrice: 3}},
			{{Name: "D"}, {Name: "D", Quantity: 3, UnitPrice: 2}},
		}
		for _, raw := range amendments {
			require.NoError(t, o.ReplaceItems(raw))
			assert.InDelta(t, order.TotalPrice(o.Items()), o.TotalPrice(), 1e-9)
		}
	})
}
