package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomloft/roomsync/internal/server/handlers"
	"github.com/roomloft/roomsync/internal/server/middleware"
	"github.com/roomloft/roomsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "roomsync-server.db", "Path to SQLite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (required)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Access token lifetime")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *jwtSecret == "" {
		logger.Error("missing required flag -jwt-secret")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *addr, *dbPath, *jwtSecret, *tokenTTL); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, addr, dbPath, jwtSecret string, tokenTTL time.Duration) error {
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(jwtSecret),
		AccessTokenTTL: tokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig)
	floorsHandler := handlers.NewFloorsHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	authRequired := middleware.AuthMiddleware(logger, jwtConfig)
	adminOnly := middleware.RequireAdmin(logger)
	// Лимит на попытки логина/регистрации с одного IP
	authRate := middleware.RateLimitMiddleware(10, time.Minute, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("POST /api/v1/auth/register", authRate(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", authRate(http.HandlerFunc(authHandler.Login)))

	mux.Handle("GET /api/v1/floors",
		authRequired(http.HandlerFunc(floorsHandler.ListFloors)))
	mux.Handle("POST /api/v1/floors",
		authRequired(adminOnly(http.HandlerFunc(floorsHandler.CreateFloor))))
	mux.Handle("GET /api/v1/floors/{id}/rooms",
		authRequired(http.HandlerFunc(floorsHandler.ListRooms)))
	mux.Handle("POST /api/v1/floors/{id}/rooms",
		authRequired(adminOnly(http.HandlerFunc(floorsHandler.CreateRoom))))
	mux.Handle("PUT /api/v1/rooms/{id}",
		authRequired(adminOnly(http.HandlerFunc(floorsHandler.UpdateRoom))))
	mux.Handle("DELETE /api/v1/rooms/{id}",
		authRequired(adminOnly(http.HandlerFunc(floorsHandler.DeleteRoom))))

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(mux))

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func printVersion() {
	fmt.Printf("RoomSync Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
