package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nucamp/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Show the configuration after applying the config file and NUCAMP_* environment variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), cfg)
			}
			path, err := config.Path()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file:    %s\n", path)
			fmt.Fprintf(out, "Server URL:     %s\n", cfg.ServerURL)
			fmt.Fprintf(out, "Port:           %d\n", cfg.Port)
			fmt.Fprintf(out, "Database:       %s\n", orDefault(cfg.DBPath, "(default)"))
			fmt.Fprintf(out, "Image base URL: %s\n", cfg.ImageBaseURL)
			fmt.Fprintf(out, "Images dir:     %s\n", orDefault(cfg.ImagesDir, "(none)"))
			fmt.Fprintf(out, "Dev mode:       %t\n", cfg.DevMode)
			return nil
		},
	}

	cmd.AddCommand(newConfigSetServerCmd())
	return cmd
}

func newConfigSetServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-server <url>",
		Short: "Save the API server URL used by the CLI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := url.Parse(args[0])
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid server URL: %s", args[0])
			}

			cfg, err := config.LoadFile()
			if err != nil {
				return err
			}
			cfg.ServerURL = args[0]
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Server URL set to %s\n", args[0])
			return nil
		},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
