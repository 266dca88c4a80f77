package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomloft/roomsync/internal/client/api"
	"github.com/roomloft/roomsync/internal/client/cli"
	"github.com/roomloft/roomsync/internal/client/connectivity"
	"github.com/roomloft/roomsync/internal/client/floors"
	"github.com/roomloft/roomsync/internal/client/queue"
	"github.com/roomloft/roomsync/internal/client/session"
	"github.com/roomloft/roomsync/internal/client/storage/boltdb"
	"github.com/roomloft/roomsync/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "roomsync-client.db", "Path to local database")
	pingInterval := flag.Duration("ping-interval", 15*time.Second, "Connectivity probe interval")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент
	apiClient := api.NewClient(*serverURL)

	// Восстанавливаем очередь отложенных операций
	pending, err := queue.New(ctx, boltStorage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pending queue: %v\n", err)
		os.Exit(1)
	}

	// Начальное состояние связности определяет первый probe
	monitor := connectivity.NewMonitor(apiClient.Ping(ctx) == nil)
	watcher := connectivity.NewWatcher(monitor, apiClient, *pingInterval, logger)
	go watcher.Run(ctx)

	sessions := session.NewService(boltStorage)
	gateway := floors.NewService(apiClient, boltStorage, boltStorage, pending, monitor, sessions, logger)

	syncService := sync.NewService(
		apiClient, boltStorage, boltStorage, boltStorage, pending, monitor, sessions, logger)
	syncService.Initialize(ctx)
	defer syncService.Close()

	c := cli.New(apiClient, sessions, gateway, syncService, monitor)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("RoomSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
