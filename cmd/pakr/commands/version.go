package commands

import (
	"fmt"

	"github.com/pakrat/pakr/internal/build"
	"github.com/spf13/cobra"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pakr version %s (%s, %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
