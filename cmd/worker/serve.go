package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/foxseedlab/mojiokoshin-worker/internal/transcriber"
	"github.com/foxseedlab/mojiokoshin-worker/internal/worker"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the transcriber and summarizer gRPC services",
		Long: `Run the transcriber and summarizer gRPC services.

Configuration is read from the environment and an optional .env file in
the working directory. The speech model is loaded before the listener
opens; a model that cannot be loaded is fatal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "engine", cfg.TranscriberEngine, "persistence", cfg.PersistenceDriver)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)
	defer injector.Shutdown()

	slog.Info("startup: loading speech model")
	model, err := do.Invoke[*transcriber.SharedModel](injector)
	if err != nil {
		slog.Error("failed to load speech model", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := model.Close(); err != nil {
			slog.Error("failed to release speech model", "error", err)
		}
	}()

	server, err := do.Invoke[*grpc.Server](injector)
	if err != nil {
		return fmt.Errorf("failed to resolve grpc server: %w", err)
	}

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	done := make(chan error, 1)
	go func() {
		slog.Info("startup: serving grpc", "address", lis.Addr().String())
		done <- server.Serve(lis)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
		server.GracefulStop()
		<-done
		waitNotifications(injector)
		return nil
	case err := <-done:
		return err
	}
}

// waitNotifications lets result webhooks of finished requests complete.
func waitNotifications(injector do.Injector) {
	if t, err := do.Invoke[*worker.Transcriber](injector); err == nil {
		t.WaitNotifications()
	}
	if s, err := do.Invoke[*worker.Summarizer](injector); err == nil {
		s.WaitNotifications()
	}
}
