package commands_test

import (
	"errors"
	"testing"

	"tableserve/internal/core/application/services"
	"tableserve/internal/core/application/usecases/commands"
	"tableserve/internal/core/domain/model/kernel"
	"tableserve/internal/core/domain/model/order"
	"tableserve/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "table-3", "patio", "", rawItems())
	require.NoError(t, err)
	if status != order.Pending {
		_, err = o.ChangeStatus(status, order.OriginStaff)
		require.NoError(t, err)
	}
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t, order.Pending)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID(), order.Preparing, order.OriginStaff, "kitchen-ui")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)
	announcer.On("AnnounceTransition", existing, order.Pending, order.Preparing, false, false, "kitchen-ui").
		Return(services.DeliveryReport{BroadcastDelivered: true, StatusPublished: true, TransportConnected: true}).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Preparing, result.Order.Status())
	require.True(t, result.Report.StatusPublished)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	announcer.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ReadyReportsDispatch(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t, order.Preparing)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID(), order.Ready, order.OriginStaff, "kitchen-ui")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)
	announcer.On("AnnounceTransition", existing, order.Preparing, order.Ready, true, false, "kitchen-ui").
		Return(services.DeliveryReport{DispatchRequired: true, RobotNotified: true}).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, result.Report.DispatchRequired)
	announcer.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_TerminalRejected(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t, order.Cancelled)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID(), order.Preparing, order.OriginStaff, "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTransitionForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	announcer.AssertNotCalled(t, "AnnounceTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_AutomatedOnlyDelivers(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t, order.Ready)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID(), order.Preparing, order.OriginAutomated, "delivery-agent")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTransitionForbidden)
	require.Equal(t, order.Ready, existing.Status())
}

func TestUpdateOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewUpdateOrderStatusCommand(id, order.Preparing, order.OriginStaff, "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("orderId", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateOrderStatusCommandHandler_Handle_CommitErrorSkipsAnnouncement(t *testing.T) {
	ctx := t.Context()
	existing := storedOrder(t, order.Pending)
	cmd, _ := commands.NewUpdateOrderStatusCommand(existing.ID(), order.Preparing, order.OriginStaff, "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	repo.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	announcer := new(MockEventAnnouncer)

	h := commands.NewUpdateOrderStatusCommandHandler(factory, announcer)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	announcer.AssertNotCalled(t, "AnnounceTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
