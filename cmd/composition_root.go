package cmd

import (
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// CompositionRoot wires use case handlers to their infrastructure
// dependencies. All handlers share one unit of work factory over the same
// database handle.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	etaCalc    services.ETACalculator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	speed := config.CruiseSpeedKmPerHour
	if speed <= 0 {
		speed = services.DefaultCruiseSpeedKmPerHour
	}

	etaCalc, err := services.NewETACalculator(speed)
	if err != nil {
		log.Fatalf("invalid cruise speed %v: %v", speed, err)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		etaCalc:    etaCalc,
	}
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateWithdrawOrderCommandHandler() commands.WithdrawOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewWithdrawOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateEditOrderLocationsCommandHandler() commands.EditOrderLocationsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderLocationsCommandHandler(f)
}

func (c *CompositionRoot) CreateReserveJobCommandHandler() commands.ReserveJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReserveJobCommandHandler(f)
}

func (c *CompositionRoot) CreatePickupOrderCommandHandler() commands.PickupOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickupOrderCommandHandler(f, c.etaCalc)
}

func (c *CompositionRoot) CreateMarkOutcomeCommandHandler() commands.MarkOutcomeCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOutcomeCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDroneLocationCommandHandler() commands.UpdateDroneLocationCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDroneLocationCommandHandler(f, c.etaCalc)
}

func (c *CompositionRoot) CreateMarkDroneBrokenCommandHandler() commands.MarkDroneBrokenCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDroneBrokenCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkDroneFixedCommandHandler() commands.MarkDroneFixedCommandHandler {
	var f commands.DroneUoWFactory = FuncDroneUoWFactory(func() commands.DroneUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkDroneFixedCommandHandler(f)
}

func (c *CompositionRoot) CreateGroundStaleDronesCommandHandler() commands.GroundStaleDronesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewGroundStaleDronesCommandHandler(f, c.config.HeartbeatThreshold)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByOwnerQueryHandler() queries.GetOrdersByOwnerQueryHandler {
	return queries.NewGetOrdersByOwnerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCurrentOrderQueryHandler() queries.GetCurrentOrderQueryHandler {
	return queries.NewGetCurrentOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllDronesQueryHandler() queries.GetAllDronesQueryHandler {
	return queries.NewGetAllDronesQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDroneUoWFactory func() commands.DroneUoW

func (f FuncDroneUoWFactory) Create() commands.DroneUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
