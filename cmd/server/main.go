package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"literature/internal/config"
	"literature/internal/logging"
	"literature/internal/registry"
	"literature/internal/transport"
)

const shutdownGrace = 5 * time.Second

func main() {
	cmd := config.NewCommand(run)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	log := logging.New(cfg.Verbose)

	reg := registry.New(cfg.SeedRooms, registry.WithIdleTimeout(cfg.RoomIdleTimeout))
	defer reg.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: transport.NewRouter(ctx, reg, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("literature server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
