package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/nobanko/banking-core/internal/api"
	"github.com/nobanko/banking-core/internal/archiver"
	"github.com/nobanko/banking-core/internal/config"
	"github.com/nobanko/banking-core/internal/data/mongo"
	"github.com/nobanko/banking-core/internal/data/postgres"
	"github.com/nobanko/banking-core/internal/logger"
	"github.com/nobanko/banking-core/internal/notifier"
	"github.com/nobanko/banking-core/internal/platform/messaging/producers"
	"github.com/nobanko/banking-core/internal/platform/persistence"
	"github.com/nobanko/banking-core/internal/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for ledger events
	eventProducer, err := producers.NewLedgerEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	clientRepo := postgres.NewClientRepository(log, postgresDB)
	managerRepo := postgres.NewManagerRepository(log, postgresDB)
	ledgerRepo := postgres.NewLedgerRepository(log, postgresDB)
	transferRepo := postgres.NewTransferRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	creditRepo := postgres.NewCreditRequestRepository(log, postgresDB)
	productRepo := postgres.NewCardProductRepository(log, postgresDB)
	cardRequestRepo := postgres.NewCardRequestRepository(log, postgresDB)
	cardRepo := postgres.NewCardRepository(log, postgresDB)
	notificationRepo := postgres.NewNotificationRepository(log, postgresDB)
	statementRepo := mongo.NewStatementRepository(log, mongoDB.Database())

	// Initialize the notification worker pool
	clientNotifier, err := notifier.NewPoolNotifier(&cfg.Notifier, notificationRepo, log)
	if err != nil {
		log.Error("Failed to initialize notifier", "error", err)
		os.Exit(1)
	}

	// Initialize services
	accountService := service.NewAccountService(clientRepo, managerRepo, notificationRepo, log)
	ledgerService := service.NewLedgerService(postgresDB, clientRepo, ledgerRepo, statementRepo, transferRepo, outboxRepo, eventProducer, clientNotifier, log)
	creditService := service.NewCreditService(postgresDB, clientRepo, creditRepo, clientNotifier, log)
	cardService := service.NewCardService(postgresDB, clientRepo, productRepo, cardRequestRepo, cardRepo, clientNotifier, log)

	// Initialize REST server
	server := api.NewServer(log, cfg, accountService, ledgerService, creditService, cardService)
	log.Info("REST server initialized")

	// Start the statement archiver in the background
	statementPoller := archiver.NewPoller(&cfg.Archiver, outboxRepo, statementRepo, log)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		statementPoller.Start(appCtx)
	}()

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context to stop the archiver
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new work arrives
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Wait for the archiver to finish its current batch
	wg.Wait()

	// Drain the notification pool
	clientNotifier.Shutdown()

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
