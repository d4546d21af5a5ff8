package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Apply a resolved lockfile and commit it as a new generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("lockfile")

			report, err := c.app.Install(cmd.Context(), path)
			if len(report.Results) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			}
			return err
		},
	}
	cmd.Flags().StringP("lockfile", "f", "pakr.lock.json", "Path to the resolved lockfile")
	return cmd
}
