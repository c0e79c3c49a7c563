package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var towerCmd = &cobra.Command{
	Use:   "tower",
	Short: "Mark tower completion",
}

var towerToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a tower",
	Args:  cobra.ExactArgs(1),
	RunE:  runTowerToggle,
}

func init() {
	towerCmd.AddCommand(towerToggleCmd)
	rootCmd.AddCommand(towerCmd)
}

func runTowerToggle(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withSession(cmd, func(ctx context.Context, s *session) error {
		label := "tower " + id
		if t, ok := s.catalog.Tower(id); ok {
			label = t.Name
		} else {
			s.printer.Warn(fmt.Sprintf("tower %q is not in the catalog; it will not score", id))
		}
		out := s.tracker.ToggleTower(ctx, id)
		s.printer.Toggled(label, out.Value)
		return nil
	})
}
