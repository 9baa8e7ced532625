package cli

import (
	"github.com/spf13/cobra"
)

func newCampsitesCmd() *cobra.Command {
	var featured bool

	cmd := &cobra.Command{
		Use:   "campsites",
		Short: "List campsites",
		Long:  "List the campsites in the directory, optionally only featured ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			campsites, err := c.ListCampsites(featured)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), campsites)
			}
			return printCampsiteTable(cmd.OutOrStdout(), campsites)
		},
	}

	cmd.Flags().BoolVar(&featured, "featured", false, "only list featured campsites")

	return cmd
}
