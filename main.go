package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/contesthub/server/config"
	"github.com/contesthub/server/db"
	"github.com/contesthub/server/middleware"
	"github.com/contesthub/server/payments"
	"github.com/contesthub/server/router"
)

func main() {
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Create unique indexes
	if err := store.EnsureIndexes(context.Background()); err != nil {
		slog.Error("index creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database indexes ready")

	// Payment provider
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)

	// Create router
	mux := router.NewRouter(store, provider, cfg)
	handler := middleware.CORS(middleware.WithRequestID(mux))

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then drain in-flight requests
		<-ctrlc
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	// Disconnect mongo after the server has stopped accepting requests
	disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer disconnectCancel()
	if err := store.Close(disconnectCtx); err != nil {
		slog.Error("mongo disconnect", "error", err)
	}
}
