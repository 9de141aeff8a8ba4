package main

import (
	"fmt"
	"log/slog"
	"os"

	audioimpl "github.com/foxseedlab/mojiokoshin-worker/external/audio"
	completionimpl "github.com/foxseedlab/mojiokoshin-worker/external/completion"
	configloader "github.com/foxseedlab/mojiokoshin-worker/external/config"
	persistenceimpl "github.com/foxseedlab/mojiokoshin-worker/external/persistence"
	"github.com/foxseedlab/mojiokoshin-worker/external/rpc"
	transcriberimpl "github.com/foxseedlab/mojiokoshin-worker/external/transcriber"
	webhookimpl "github.com/foxseedlab/mojiokoshin-worker/external/webhook"
	"github.com/foxseedlab/mojiokoshin-worker/internal/config"
	"github.com/foxseedlab/mojiokoshin-worker/internal/worker"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:           "mojiokoshin-worker",
		Short:         "Transcription and summarization gRPC worker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newDecodeCommand())
	return root
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.DebugLogging() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	audioimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	completionimpl.RegisterDI(injector)
	persistenceimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	worker.RegisterDI(injector)
	rpc.RegisterDI(injector)

	return injector
}
