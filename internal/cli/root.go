// Package cli defines the cobra command tree for nucamp.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nucamp/internal/client"
	"github.com/evcraddock/nucamp/internal/config"
	"github.com/evcraddock/nucamp/internal/db"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nucamp",
		Short:         "Browse campsites and share comments",
		Long:          "A campsite directory. Serve the web UI, manage campsites, and read or post comments from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagFormat != "text" && flagFormat != "json" {
				return fmt.Errorf("invalid --format %q (text|json)", flagFormat)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.nucamp/nucamp.db)")

	root.AddCommand(
		newServeCmd(),
		newCampsitesCmd(),
		newShowCmd(),
		newCampsiteCmd(),
		newCommentCmd(),
		newCommentsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database from --db, then the config, then the default path.
func openDB(cfg config.Config) (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newAPIClient creates an HTTP client for the nucamp API.
func newAPIClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.ServerURL), nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
