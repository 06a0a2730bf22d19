package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/devgateway"
)

// gatewaydev runs a local stand-in for the hosted backend platform so the
// site can be developed and tested without an account there.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9091"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./gateway.db"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./gateway-data"
	}

	store, err := devgateway.NewStore(dbPath)
	if err != nil {
		slog.Error("Failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: devgateway.NewServer(store, dataDir),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Dev gateway starting", "port", port, "db", dbPath, "data", dataDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Dev gateway failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down dev gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Dev gateway shutdown failed", "error", err)
		os.Exit(1)
	}
}
