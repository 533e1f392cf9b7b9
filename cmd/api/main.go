package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hazard-watch/internal/adapters/detector"
	"hazard-watch/internal/adapters/handlers/http/chi"
	authhandler "hazard-watch/internal/adapters/handlers/http/chi/v1/auth"
	videohandler "hazard-watch/internal/adapters/handlers/http/chi/v1/video"
	"hazard-watch/internal/adapters/repository/postgres"
	"hazard-watch/internal/adapters/storage/minio"
	"hazard-watch/internal/config"
	"hazard-watch/internal/core/service/auth"
	"hazard-watch/internal/core/service/metadata"
	"hazard-watch/internal/core/service/process"
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

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//services
	unitOfWork := postgres.NewUnitOfWork(db)
	metadataService := metadata.NewMetadataService(unitOfWork, cfg.Minio.LogBucket, logger)
	authService := auth.NewAuthService(metadataService, cfg.Auth, logger)
	detectorAdapter := detector.NewAdapter(cfg.Detector, logger)
	processingService := process.NewProcessingService(minioAdapter, metadataService, detectorAdapter, cfg.Detector, logger)
	reconcilerService := reconcile.NewReconcilerService(minioAdapter, metadataService, logger)

	//http
	authHandler := authhandler.NewAuthHandlerV1(authService, logger)
	videoHandler := videohandler.NewVideoHandlerV1(processingService, reconcilerService, metadataService, cfg.Minio.PresignTTL, logger)

	router := chi.NewRouter(logger, authService, authHandler, videoHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

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
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}
