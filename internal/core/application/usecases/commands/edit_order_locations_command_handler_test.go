package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEditOrderLocationsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := newPendingOrder(t, "alice")
	newDestination := testLocation(t, 42.0, -72.0)

	cmd, err := commands.NewEditOrderLocationsCommand(testOrder.ID(), nil, &newDestination)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateIfStatus", ctx, testOrder, order.Pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	originBefore := testOrder.Origin()

	handler := commands.NewEditOrderLocationsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	changed, err := testOrder.Destination().IsEqual(newDestination)
	require.NoError(t, err)
	assert.True(t, changed)
	kept, err := testOrder.Origin().IsEqual(originBefore)
	require.NoError(t, err)
	assert.True(t, kept)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestEditOrderLocationsCommandHandler_Handle_NotPending(t *testing.T) {
	ctx := t.Context()
	testOrder, _ := newReservedPair(t, "alice", "drone-7")
	newOrigin := testLocation(t, 42.0, -72.0)

	cmd, err := commands.NewEditOrderLocationsCommand(testOrder.ID(), &newOrigin, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewEditOrderLocationsCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestNewEditOrderLocationsCommand_BothNil(t *testing.T) {
	_, err := commands.NewEditOrderLocationsCommand(kernel.NewUUID(), nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNoLocationsToEdit)
}
