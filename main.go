// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/cmd"
	"github.com/sameer-776/seminar-app/internal/data/repository"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/internal/wire"
	"github.com/sameer-776/seminar-app/internal/worker"
	"github.com/sameer-776/seminar-app/pkg/database"
	"github.com/sameer-776/seminar-app/pkg/firebase"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

const migrationsDir = "migrations"

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Apply migrations, then open the pool
	if err := database.Migrate(config.Database, migrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Managed collaborators: auth provider + push gateway
	clients, err := firebase.InitClients(context.Background(), config.Firebase)
	if err != nil {
		logger.Fatal("Failed to init firebase clients", zap.Error(err))
	}

	// Initialize repositories and services
	repos := repository.NewRepository(db, logger)
	service := usecase.NewService(
		repos,
		firebase.NewAuthority(clients.Auth),
		firebase.NewPusher(clients.Messaging, logger),
		logger,
	)

	// Wire handlers and routes
	app := wire.Wiring(service, config, logger)

	// Optional event-bus binding of the trigger host
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if config.AMQP.URL != "" {
		consumer := worker.NewConsumer(config.AMQP, service.Dispatch, logger)
		go runConsumer(ctx, consumer, logger)
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

// runConsumer keeps the AMQP consumer alive, redialing on failure.
func runConsumer(ctx context.Context, consumer *worker.Consumer, logger *zap.Logger) {
	for {
		if ctx.Err() != nil {
			return
		}

		if err := consumer.Connect(); err != nil {
			logger.Error("AMQP connect failed, retrying in 2s", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
			}
			continue
		}

		if err := consumer.Run(ctx); err != nil {
			logger.Error("AMQP consumer stopped", zap.Error(err))
		}
		consumer.Close()
	}
}
