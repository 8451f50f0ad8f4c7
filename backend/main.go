package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"meowdrop/backend/config"
	"meowdrop/backend/middleware"
	"meowdrop/backend/models"
	"meowdrop/backend/progress"
	"meowdrop/backend/routes"
	"meowdrop/backend/store"
	"meowdrop/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{Format: cfg.LogFormat, Level: cfg.LogLevel})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", zap.Error(err))
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatal("Error migrating database", zap.Error(err))
	}

	src, closeSrc, err := progressSource(cfg, db, logger)
	if err != nil {
		logger.Fatal("Error opening progress source", zap.Error(err))
	}
	tracker := progress.NewTracker(src, progress.Options{
		Logger:       logger.Named("progress"),
		WriteTimeout: cfg.ProgressWriteTimeout,
	})

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, tracker, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error("Error shutting down server", zap.Error(err))
		}
	}()

	logger.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("progress_source", cfg.ProgressSource),
	)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}

	// Pending toggles are written before the source goes away.
	tracker.Close()
	if err := closeSrc(); err != nil {
		logger.Error("Error closing progress source", zap.Error(err))
	}
}

// progressSource opens the configured source of daily task completion. The
// returned func releases what the source holds.
func progressSource(cfg *config.Config, db *gorm.DB, logger *zap.Logger) (progress.Source, func() error, error) {
	if cfg.ProgressSource == config.ProgressSourceLocal {
		cache, err := store.NewCompletionCache(cfg.ProgressCachePath)
		if err != nil {
			return nil, nil, err
		}
		return progress.NewLocalSource(cache, logger.Named("progress")), cache.Close, nil
	}
	return progress.NewRemoteSource(store.NewProjectStore(db), cfg.ProgressPruneStale), func() error { return nil }, nil
}
