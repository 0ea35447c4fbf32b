package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	"scorecast/httpapi"
	"scorecast/internal"
	"scorecast/repositories"
	"scorecast/runtime"
	"scorecast/runtime/workers"
	"scorecast/services"
	"scorecast/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer (database close, worker
// drain) executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Canonical state, registry, dispatcher
	matchRepository := repositories.NewMatchRepository(db, log)
	matchStore, err := store.NewMatchStore(matchRepository, log)
	if err != nil {
		return fmt.Errorf("failed to rebuild match state: %w", err)
	}
	registry := runtime.NewRegistry()
	dispatcher := runtime.NewDispatcher(log, registry, config.BufferSize, config.SinkTimeout)

	scoring := services.NewScoringService(matchStore, dispatcher, registry)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Supervised workers: dispatcher fan-out + process health
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(dispatcher, workers.NewHealthWorker(log, config.MetricInterval))

	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// 6. HTTP gateway
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := httpapi.NewServer(log, scoring, []byte(config.JWTSecret), config.ConnectionBufferSize)
	httpServer := &http.Server{
		Addr:    address,
		Handler: server.Router(),
		// Tie request contexts to the signal context so open SSE streams
		// unwind on shutdown instead of pinning Shutdown until its timeout.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final cleanup: close viewer streams, then drain the workers
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "err", err)
	}
	sup.Stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}
