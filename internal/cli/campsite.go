package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/nucamp/internal/campsite"
	"github.com/evcraddock/nucamp/internal/config"
)

func newCampsiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campsite",
		Short: "Manage campsites in the local database",
		Long:  "Add, import, or remove campsites. These commands write to the SQLite database directly.",
	}

	cmd.AddCommand(
		newCampsiteAddCmd(),
		newCampsiteImportCmd(),
		newCampsiteRemoveCmd(),
	)

	return cmd
}

func newCampsiteAddCmd() *cobra.Command {
	var c campsite.Campsite

	cmd := &cobra.Command{
		Use:   "add --name NAME [--description TEXT] [--image REF] [--featured]",
		Short: "Add a campsite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeFn, err := newCampsiteRepo()
			if err != nil {
				return err
			}
			defer closeFn()

			saved, err := repo.Insert(&c)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Campsite #%d added: %s\n", saved.ID, saved.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "campsite name")
	cmd.Flags().StringVar(&c.Description, "description", "", "description (markdown)")
	cmd.Flags().StringVar(&c.Image, "image", "", "image reference, relative to the image base URL")
	cmd.Flags().BoolVar(&c.Featured, "featured", false, "feature the campsite")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		panic(err)
	}

	return cmd
}

func newCampsiteImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import campsites from a YAML seed file",
		Long:  "Import campsites from a YAML file. Existing campsites with the same name are updated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening seed file: %w", err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil {
					fmt.Fprintf(os.Stderr, "warning: closing seed file: %v\n", cerr)
				}
			}()

			seed, err := campsite.ParseSeed(f)
			if err != nil {
				return err
			}

			repo, closeFn, err := newCampsiteRepo()
			if err != nil {
				return err
			}
			defer closeFn()

			saved, err := repo.Import(seed)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d campsites.\n", len(saved))
			return nil
		},
	}
}

func newCampsiteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a campsite",
		Long:  "Remove a campsite and all its comments.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			repo, closeFn, err := newCampsiteRepo()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := repo.Delete(id); err != nil {
				if errors.Is(err, campsite.ErrNotFound) {
					return fmt.Errorf("campsite #%d not found", id)
				}
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"id":      id,
					"removed": true,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Campsite #%d removed.\n", id)
			return nil
		},
	}
}

// newCampsiteRepo opens the database and returns a campsite repository with
// a func that closes it.
func newCampsiteRepo() (*campsite.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	database, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return campsite.NewRepository(database), func() { closeDB(database) }, nil
}
