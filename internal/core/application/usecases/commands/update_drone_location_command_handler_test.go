package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDroneLocationCommandHandler_Handle_IdleDrone(t *testing.T) {
	ctx := t.Context()
	reported := testLocation(t, 40.5, -73.5)
	cmd, err := commands.NewUpdateDroneLocationCommand("drone-7", reported)
	require.NoError(t, err)

	testDrone := newIdleDrone(t, "drone-7")
	staleHeartbeat := testDrone.LastHeartbeat()

	orderRepo := new(MockOrderRepository)
	droneRepo := new(MockDroneRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetByExternalIdentity", ctx, "drone-7").Return(testDrone, nil).Once(),
		droneRepo.On("Update", ctx, testDrone).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDroneLocationCommandHandler(factory, testETACalculator(t))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	moved, err := updated.Location().IsEqual(reported)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.False(t, updated.LastHeartbeat().Before(staleHeartbeat))
	orderRepo.AssertNotCalled(t, "Get", ctx, mock.Anything)
	droneRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateDroneLocationCommandHandler_Handle_InTransitRefreshesETA(t *testing.T) {
	ctx := t.Context()
	testOrder, testDrone := newInTransitPair(t, "alice", "drone-7")

	// Report a position closer to the destination than the pickup point.
	closer := testLocation(t, 40.9, -73.1)
	cmd, err := commands.NewUpdateDroneLocationCommand("drone-7", closer)
	require.NoError(t, err)

	previousETA := *testOrder.EstimatedDeliveryTime()

	orderRepo := new(MockOrderRepository)
	droneRepo := new(MockDroneRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetByExternalIdentity", ctx, "drone-7").Return(testDrone, nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateIfStatus", ctx, testOrder, order.InTransit).Return(nil).Once(),
		droneRepo.On("Update", ctx, testDrone).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDroneLocationCommandHandler(factory, testETACalculator(t))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)

	require.NotNil(t, testOrder.CurrentLocation())
	tracked, err := testOrder.CurrentLocation().IsEqual(closer)
	require.NoError(t, err)
	assert.True(t, tracked)

	require.NotNil(t, testOrder.EstimatedDeliveryTime())
	assert.NotEqual(t, previousETA, *testOrder.EstimatedDeliveryTime())
	orderRepo.AssertExpectations(t)
	droneRepo.AssertExpectations(t)
}

func TestUpdateDroneLocationCommandHandler_Handle_BrokenDroneStillHeartbeats(t *testing.T) {
	ctx := t.Context()
	reported := testLocation(t, 40.5, -73.5)
	cmd, err := commands.NewUpdateDroneLocationCommand("drone-7", reported)
	require.NoError(t, err)

	testDrone := newIdleDrone(t, "drone-7")
	require.NoError(t, testDrone.MarkBroken())

	orderRepo := new(MockOrderRepository)
	droneRepo := new(MockDroneRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetByExternalIdentity", ctx, "drone-7").Return(testDrone, nil).Once(),
		droneRepo.On("Update", ctx, testDrone).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDroneLocationCommandHandler(factory, testETACalculator(t))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, updated.IsStale(time.Now().UTC(), commands.DefaultHeartbeatThreshold))
	orderRepo.AssertNotCalled(t, "Get", ctx, mock.Anything)
}

func TestNewUpdateDroneLocationCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewUpdateDroneLocationCommand("", testLocation(t, 40.5, -73.5))
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDroneIdentityIsRequired)

	_, err = commands.NewUpdateDroneLocationCommand("drone-7", kernel.Location{})
	require.Error(t, err)
}

func TestUpdateDroneLocationCommandHandler_Handle_ClosedOrderStillHeartbeats(t *testing.T) {
	ctx := t.Context()
	testOrder, testDrone := newInTransitPair(t, "alice", "drone-7")

	closer := testLocation(t, 40.9, -73.1)
	cmd, err := commands.NewUpdateDroneLocationCommand("drone-7", closer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	droneRepo := new(MockDroneRepository)
	uow := new(MockUoW)

	// The carried order was read as InTransit, but an outcome committed in
	// between; the estimate refresh is skipped and the report still updates
	// the drone's position and heartbeat.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("DroneRepository").Return(droneRepo).Once(),
		droneRepo.On("GetByExternalIdentity", ctx, "drone-7").Return(testDrone, nil).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		orderRepo.On("UpdateIfStatus", ctx, testOrder, order.InTransit).
			Return(errs.NewConcurrencyConflictError("order", testOrder.ID().String())).Once(),
		droneRepo.On("Update", ctx, testDrone).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateDroneLocationCommandHandler(factory, testETACalculator(t))
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	moved, err := updated.Location().IsEqual(closer)
	require.NoError(t, err)
	assert.True(t, moved)
	orderRepo.AssertExpectations(t)
	droneRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
