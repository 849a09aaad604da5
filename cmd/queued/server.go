package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/queuekit/queuekit/api"
	"github.com/queuekit/queuekit/queue"
	"github.com/queuekit/queuekit/registry"
	"github.com/queuekit/queuekit/store"
	"gopkg.in/urfave/cli.v2"
)

func runServer(c *cli.Context) error {
	reg := registry.NewRegistry()
	if err := registerHandlers(reg); err != nil {
		return err
	}

	q := queue.New(reg, store.NewStore(),
		queue.WithConcurrency(c.Int(flagConcurrency)),
		queue.WithMaxRetries(c.Int(flagRetries)),
		queue.WithRetryDelay(c.Duration(flagRetryDelay)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := q.Start(ctx); err != nil {
		return err
	}

	srv := api.NewServer(c.String(flagAddr), q)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("API server error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown error", "error", err)
	}

	return q.Stop()
}
