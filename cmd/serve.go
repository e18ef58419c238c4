package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/api"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/config"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/cache"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/database"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/repository"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/service"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/storage"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/telemetry"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Serve command flags
	disableNewRelic bool
	serverPort      int
	gracefulTimeout int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Starts the operations API server that handles intake tickets,
delivery records, documentation uploads, and impact reporting.

The server respects the configuration in config.yaml or specified via the --config flag.
It will gracefully shut down on receiving SIGINT or SIGTERM signals.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&disableNewRelic, "disable-newrelic", false, "Disable New Relic monitoring")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "Server port (overrides config file)")
	serveCmd.Flags().IntVar(&gracefulTimeout, "graceful-timeout", 30, "Graceful shutdown timeout in seconds")
}

// startServer initializes and starts the API server
func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override config with command line flags if provided
	if serverPort > 0 {
		cfg.Server.Port = serverPort
	}
	if disableNewRelic {
		cfg.NewRelic.Enabled = false
	}

	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		log.Fatalf("Invalid business timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	log.WithFields(logrus.Fields{
		"port":             cfg.Server.Port,
		"timezone":         cfg.Schedule.Timezone,
		"newrelic_enabled": cfg.NewRelic.Enabled,
	}).Info("Initializing service components...")

	// Initialize NewRelic
	nrApp, err := telemetry.InitNewRelic(cfg.NewRelic)
	if err != nil {
		log.Warnf("Failed to initialize New Relic: %v", err)
	}

	// Initialize database with retry logic
	var db database.DB
	maxRetries := 5
	retryInterval := time.Second

	for i := 0; i < maxRetries; i++ {
		log.WithField("attempt", i+1).Info("Connecting to database...")
		db, err = database.Connect(cfg.Database)
		if err == nil {
			break
		}

		log.WithFields(logrus.Fields{
			"error":         err.Error(),
			"retry_attempt": i + 1,
			"max_retries":   maxRetries,
		}).Error("Failed to connect to database, retrying...")

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	if err != nil {
		log.Fatalf("Failed to connect to database after %d attempts: %v", maxRetries, err)
	}

	log.Info("Successfully connected to database")
	defer func() {
		log.Info("Closing database connection...")
		if err := db.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing database connection")
		}
	}()

	// Run database migrations
	log.Info("Running database migrations...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize Redis cache client
	log.Info("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() {
		log.Info("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing Redis connection")
		}
	}()

	// Initialize object storage
	log.Info("Connecting to object storage...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewGCSStore(ctx, cfg.Storage)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithField("error", err.Error()).Error("Error closing storage client")
		}
	}()

	gormDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB instance: %v", err)
	}

	// Initialize repositories
	deliveryRepo := repository.NewDeliveryRepository(gormDB)
	intakeRepo := repository.NewIntakeRepository(gormDB)
	clientRepo := repository.NewClientRepository(gormDB)
	contaminationRepo := repository.NewContaminationRepository(gormDB)

	// Initialize services
	deliverySvc := service.NewDeliveryService(deliveryRepo, redisClient, log)
	scheduleSvc := service.NewScheduleService(intakeRepo, loc, cfg.Schedule.TonsPerLoad, log)
	attachmentSvc := service.NewAttachmentService(deliverySvc, intakeRepo, store, cfg.Schedule.TonsPerLoad, log)
	clientSvc := service.NewClientService(clientRepo)
	contaminationSvc := service.NewContaminationService(contaminationRepo)
	reportSvc := service.NewReportService(deliveryRepo, contaminationRepo, loc, log)

	// Initialize and start the server
	server := api.NewServer(cfg, log, nrApp, api.Services{
		Delivery:      deliverySvc,
		Schedule:      scheduleSvc,
		Attachment:    attachmentSvc,
		Client:        clientSvc,
		Contamination: contaminationSvc,
		Report:        reportSvc,
	}, loc)
	go func() {
		if err := server.Start(); err != nil {
			log.Infof("Server stopped: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(gracefulTimeout)*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server successfully shutdown")
}
