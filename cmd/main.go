package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tipjar/internal/app"
	"tipjar/internal/config"
	"tipjar/internal/lib/logger/sl"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// @title Tipjar API
// @version 1.0
// @description USD tips settled in USDC. Tracks each tip from pending to a terminal status and notifies both sides.
// @host localhost:8080
// @BasePath /
func main() {
	root := &cobra.Command{
		Use:           "tipjar",
		Short:         "Tip transaction lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the confirmation consumer",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the Postgres schema",
			RunE:  runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()

	fmt.Println(`
 _   _       _
| |_(_)_ __ (_) __ _ _ __
| __| | '_ \| |/ _' | '__|
| |_| | |_) | | (_| | |
 \__|_| .__// |\__,_|_|
      |_| |__/`)

	log := setupLogger(cfg.Server.Env)

	log.Info("Starting http", slog.String("env", cfg.Server.Env))

	application, err := app.New(cmd.Context(), log, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	go application.HTTPServer.MustRun()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop

	log.Info("Application stopped", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.HTTPServer.Stop(ctx); err != nil {
		log.Error("failed to stop http server", sl.Err(err))
	}

	return nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Server.Env)

	return app.Migrate(cmd.Context(), log, cfg)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
