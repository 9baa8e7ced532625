package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nucamp/internal/config"
	"github.com/evcraddock/nucamp/internal/logging"
	"github.com/evcraddock/nucamp/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI and API",
		Long:  "Start an HTTP server for the campsite web UI and the JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides config)")

	return cmd
}

func runServe(cfg config.Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}

	logging.Setup(cfg.DevMode)

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, web.Options{
		ImageBaseURL: cfg.ImageBaseURL,
		ImagesDir:    cfg.ImagesDir,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("nucamp web UI", "url", fmt.Sprintf("http://localhost:%d", cfg.Port), "dev_mode", cfg.DevMode)
	return srv.ListenAndServe(ctx, cfg.Port)
}
