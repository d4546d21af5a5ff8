package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pakrat/pakr/internal/core/domain"
	"github.com/spf13/cobra"
)

// generationView is the JSON shape of one generation in list output.
type generationView struct {
	ID        uint64    `json:"id"`
	ParentID  *uint64   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Packages  int       `json:"packages"`
	Active    bool      `json:"active"`
}

func (c *CLI) newGenerationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generations",
		Short: "List stored generations and the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generations, active, err := c.app.Generations()
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeGenerationsJSON(cmd, generations, active)
			}

			writeGenerationsTable(cmd, generations, active)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Emit machine-readable JSON")
	return cmd
}

func writeGenerationsJSON(cmd *cobra.Command, generations []domain.Lockfile, active *uint64) error {
	views := make([]generationView, 0, len(generations))
	for _, gen := range generations {
		views = append(views, generationView{
			ID:        gen.ID,
			ParentID:  gen.ParentID,
			CreatedAt: gen.CreatedAt,
			Packages:  len(gen.Packages),
			Active:    active != nil && gen.ID == *active,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}

func writeGenerationsTable(cmd *cobra.Command, generations []domain.Lockfile, active *uint64) {
	out := cmd.OutOrStdout()
	if len(generations) == 0 {
		fmt.Fprintln(out, "no generations")
		return
	}

	for _, gen := range generations {
		marker := " "
		if active != nil && gen.ID == *active {
			marker = "*"
		}
		parent := "-"
		if gen.ParentID != nil {
			parent = fmt.Sprintf("%d", *gen.ParentID)
		}
		fmt.Fprintf(out, "%s %4d  parent %-4s %s  %d packages\n",
			marker, gen.ID, parent, gen.CreatedAt.Format(time.RFC3339), len(gen.Packages))
	}
}
