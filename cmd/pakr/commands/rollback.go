package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <generation>",
		Short: "Repoint the installation at a previous generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return zerr.With(zerr.New("generation id must be a positive integer"), "arg", args[0])
			}

			report, err := c.app.Rollback(cmd.Context(), id)
			if len(report.Results) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			}
			return err
		},
	}
}
