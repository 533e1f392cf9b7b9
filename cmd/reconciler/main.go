package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hazard-watch/internal/adapters/eventbroker/nats"
	"hazard-watch/internal/adapters/repository/postgres"
	"hazard-watch/internal/adapters/storage/minio"
	"hazard-watch/internal/config"
	"hazard-watch/internal/core/port"
	"hazard-watch/internal/core/service/metadata"
	"hazard-watch/internal/core/service/reconcile"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// Initialize database
	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}
	logger.Info("minio adapter initialized")

	// Initialize services
	unitOfWork := postgres.NewUnitOfWork(db)
	metadataService := metadata.NewMetadataService(unitOfWork, cfg.Minio.LogBucket, logger)
	reconcilerService := reconcile.NewReconcilerService(minioAdapter, metadataService, logger)
	messageService := reconcile.NewMessageService(reconcilerService, logger)

	// Initialize NATS consumer
	natsConsumer, err := nats.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to create NATS consumer", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS consumer initialized")

	// Subscribe to NATS
	if err := natsConsumer.Subscribe(ctx, messageService); err != nil {
		logger.Error("failed to subscribe to NATS", "error", err)
		os.Exit(1)
	}
	logger.Info("NATS subscription active")

	// Periodic sweep catches objects whose notification was lost
	go initSweepTask(ctx, reconcilerService, metadataService, cfg.Reconcile.SweepEvery, logger)

	// Wait for termination signal
	<-ctx.Done()
	logger.Info("gracefully shutting down reconciler")

	// Close blocks until the in-flight message handler has finished.
	if err := natsConsumer.Close(); err != nil {
		logger.Error("failed to close NATS consumer during shutdown", "error", err)
	}

	logger.Info("reconciler shutdown complete")
}

func initSweepTask(ctx context.Context, reconciler port.ReconcilerService, meta port.MetadataStore, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("sweep task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("sweep starting")
			if err := sweepAllUsers(ctx, reconciler, meta, logger); err != nil {
				logger.Error("sweep failed", "error", err)
			} else {
				logger.Info("sweep completed")
			}
		case <-ctx.Done():
			logger.Info("sweep task stopped")
			return
		}
	}
}

func sweepAllUsers(ctx context.Context, reconciler port.ReconcilerService, meta port.MetadataStore, logger *slog.Logger) error {
	usernames, err := meta.ListUsernames(ctx)
	if err != nil {
		return err
	}

	for _, username := range usernames {
		created, err := reconciler.BackfillUser(ctx, username)
		if err != nil {
			logger.Error("backfill failed for user", "username", username, "error", err)
			continue
		}
		if created > 0 {
			logger.Info("backfill adopted objects", "username", username, "created", created)
		}
	}
	return nil
}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
