package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/dronerepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateGroundStaleDronesCommandHandler(),
		configs.StaleSweepSchedule,
		slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:            goDotEnvVariable("JWT_SECRET"),
		CruiseSpeedKmPerHour: envFloat("CRUISE_SPEED_KM_PER_HOUR"),
		HeartbeatThreshold:   envDuration("HEARTBEAT_THRESHOLD"),
		StaleSweepSchedule:   envOrDefault("STALE_SWEEP_SCHEDULE", "0 * * * * *"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envOrDefault(key string, fallback string) string {
	if value := goDotEnvVariable(key); value != "" {
		return value
	}
	return fallback
}

// envFloat parses an optional float variable; empty or invalid values
// yield zero so the composition root can apply its defaults.
func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		return 0
	}
	return value
}

func envDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		return 0
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &dronerepo.DroneDTO{}); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		httpin.Commands{
			SubmitOrder:         app.CreateSubmitOrderCommandHandler(),
			WithdrawOrder:       app.CreateWithdrawOrderCommandHandler(),
			EditOrderLocations:  app.CreateEditOrderLocationsCommandHandler(),
			ReserveJob:          app.CreateReserveJobCommandHandler(),
			PickupOrder:         app.CreatePickupOrderCommandHandler(),
			MarkOutcome:         app.CreateMarkOutcomeCommandHandler(),
			UpdateDroneLocation: app.CreateUpdateDroneLocationCommandHandler(),
			MarkDroneBroken:     app.CreateMarkDroneBrokenCommandHandler(),
			MarkDroneFixed:      app.CreateMarkDroneFixedCommandHandler(),
		},
		httpin.Queries{
			GetOrder:         app.CreateGetOrderQueryHandler(),
			GetOrdersByOwner: app.CreateGetOrdersByOwnerQueryHandler(),
			GetPendingOrders: app.CreateGetPendingOrdersQueryHandler(),
			GetCurrentOrder:  app.CreateGetCurrentOrderQueryHandler(),
			GetAllOrders:     app.CreateGetAllOrdersQueryHandler(),
			GetAllDrones:     app.CreateGetAllDronesQueryHandler(),
		},
	)
	server.RegisterRoutes(e, configs.JWTSecret)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
