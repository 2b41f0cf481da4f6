package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/dronerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/drone"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and both
// repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &dronerepo.DroneDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, drones").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(owner string) *order.Order {
	origin, err := kernel.NewLocation(40.0, -74.0)
	suite.Require().NoError(err)
	destination, err := kernel.NewLocation(41.0, -73.0)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), owner, origin, destination)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newDrone(externalIdentity string) *drone.Drone {
	d, err := drone.NewDrone(kernel.NewUUID(), externalIdentity)
	suite.Require().NoError(err)
	return d
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DroneRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without transaction must fail")
	suite.Require().Error(uow.Rollback(ctx), "rollback without transaction must fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersists() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.newOrder("alice")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), loaded.ID())
	suite.Equal("alice", loaded.Owner())
	suite.Equal(order.Pending, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscards() {
	ctx := context.Background()
	uow := suite.factory.Create()
	testOrder := suite.newOrder("alice")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetFirstPending_FIFO() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	first := suite.newOrder("alice")
	suite.Require().NoError(repo.Add(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := suite.newOrder("bob")
	suite.Require().NoError(repo.Add(ctx, second))

	oldest, err := repo.GetFirstPending(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), oldest.ID())

	// Reserving the oldest moves selection to the next one.
	claimingDrone := suite.newDrone("drone-1")
	suite.Require().NoError(oldest.Reserve(claimingDrone.ID()))
	suite.Require().NoError(repo.Update(ctx, oldest))

	next, err := repo.GetFirstPending(ctx)
	suite.Require().NoError(err)
	suite.Equal(second.ID(), next.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetFirstPending_Empty() {
	ctx := context.Background()

	_, err := suite.factory.Create().OrderRepository().GetFirstPending(ctx)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdateIfStatus_Conflict() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	contested := suite.newOrder("alice")
	suite.Require().NoError(repo.Add(ctx, contested))

	winner := suite.newDrone("drone-winner")
	loser := suite.newDrone("drone-loser")

	// The winner claims the order first.
	suite.Require().NoError(contested.Reserve(winner.ID()))
	suite.Require().NoError(repo.UpdateIfStatus(ctx, contested, order.Pending))

	// The loser raced on the same snapshot; its guarded write must fail.
	stale, err := order.RestoreOrder(
		contested.ID(), "alice", contested.Origin(), contested.Destination(),
		order.Pending, nil, nil, nil, nil, nil,
		contested.CreatedAt(), contested.UpdatedAt(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Reserve(loser.ID()))

	err = repo.UpdateIfStatus(ctx, stale, order.Pending)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	// The winner's assignment survives.
	persisted, err := repo.Get(ctx, contested.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Reserved, persisted.Status())
	suite.Require().NotNil(persisted.AssignedDrone())
	suite.Equal(winner.ID(), *persisted.AssignedDrone())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDroneRoundTrip() {
	ctx := context.Background()
	repo := suite.factory.Create().DroneRepository()

	testDrone := suite.newDrone("drone-42")
	suite.Require().NoError(repo.Add(ctx, testDrone))

	byIdentity, err := repo.GetByExternalIdentity(ctx, "drone-42")
	suite.Require().NoError(err)
	suite.Equal(testDrone.ID(), byIdentity.ID())
	suite.Equal(drone.Idle, byIdentity.Status())

	_, err = repo.GetByExternalIdentity(ctx, "drone-unknown")
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetStale() {
	ctx := context.Background()
	repo := suite.factory.Create().DroneRepository()

	fresh := suite.newDrone("drone-fresh")
	suite.Require().NoError(repo.Add(ctx, fresh))

	silent := suite.newDrone("drone-silent")
	location, err := kernel.NewLocation(40.0, -74.0)
	suite.Require().NoError(err)
	suite.Require().NoError(silent.MoveTo(location, time.Now().UTC().Add(-time.Hour)))
	suite.Require().NoError(repo.Add(ctx, silent))

	grounded := suite.newDrone("drone-grounded")
	suite.Require().NoError(grounded.MoveTo(location, time.Now().UTC().Add(-time.Hour)))
	suite.Require().NoError(grounded.MarkBroken())
	suite.Require().NoError(repo.Add(ctx, grounded))

	stale, err := repo.GetStale(ctx, time.Now().UTC().Add(-5*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.Equal(silent.ID(), stale[0].ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCrossAggregateTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.newOrder("alice")
	testDrone := suite.newDrone("drone-7")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DroneRepository().Add(ctx, testDrone))

	suite.Require().NoError(testOrder.Reserve(testDrone.ID()))
	suite.Require().NoError(testDrone.Reserve(testOrder.ID()))
	suite.Require().NoError(uow.OrderRepository().UpdateIfStatus(ctx, testOrder, order.Pending))
	suite.Require().NoError(uow.DroneRepository().UpdateIfStatus(ctx, testDrone, drone.Idle))
	suite.Require().NoError(uow.Commit(ctx))

	persistedOrder, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	persistedDrone, err := suite.factory.Create().DroneRepository().Get(ctx, testDrone.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Reserved, persistedOrder.Status())
	suite.Equal(drone.Reserved, persistedDrone.Status())
	suite.Require().NotNil(persistedDrone.CurrentOrder())
	suite.Equal(persistedOrder.ID(), *persistedDrone.CurrentOrder())
}

// reserveUoWFactory adapts the adapter-level factory to the command handler
// dependency so the reservation path can be driven against a real database.
type reserveUoWFactory struct {
	factory ports.UnitOfWorkFactory
}

func (f reserveUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentReservation_SingleWinner() {
	ctx := context.Background()

	contested := suite.newOrder("alice")
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, contested))

	handler := commands.NewReserveJobCommandHandler(reserveUoWFactory{factory: suite.factory})

	const contenders = 8
	results := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd, err := commands.NewReserveJobCommand(fmt.Sprintf("drone-%d", i))
			if err != nil {
				results[i] = err
				return
			}
			_, results[i] = handler.Handle(ctx, cmd)
		}(i)
	}
	wg.Wait()

	// Exactly one drone claims the single pending order; everyone else finds
	// nothing left to reserve.
	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		suite.Require().ErrorIs(err, commands.ErrNoPendingOrders)
	}
	suite.Equal(1, winners)

	persisted, err := suite.factory.Create().OrderRepository().Get(ctx, contested.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Reserved, persisted.Status())
	suite.Require().NotNil(persisted.AssignedDrone())

	var carrying int64
	suite.Require().NoError(suite.db.Model(&dronerepo.DroneDTO{}).
		Where("current_order_id IS NOT NULL").Count(&carrying).Error)
	suite.Equal(int64(1), carrying)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDroneAdd_DuplicateIdentity() {
	ctx := context.Background()

	first := suite.newDrone("drone-dup")
	suite.Require().NoError(suite.factory.Create().DroneRepository().Add(ctx, first))

	second := suite.newDrone("drone-dup")
	err := suite.factory.Create().DroneRepository().Add(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	// The original registration is untouched.
	persisted, err := suite.factory.Create().DroneRepository().GetByExternalIdentity(ctx, "drone-dup")
	suite.Require().NoError(err)
	suite.Equal(first.ID(), persisted.ID())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
