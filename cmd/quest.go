package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var questCmd = &cobra.Command{
	Use:   "quest",
	Short: "Mark guild quest completion",
}

var questToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a guild quest",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestToggle,
}

func init() {
	questCmd.AddCommand(questToggleCmd)
	rootCmd.AddCommand(questCmd)
}

func runQuestToggle(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withSession(cmd, func(ctx context.Context, s *session) error {
		label := "guild quest " + id
		if q, ok := s.catalog.GuildQuest(id); ok {
			label = q.Name
		} else {
			s.printer.Warn(fmt.Sprintf("guild quest %q is not in the catalog; it will not score", id))
		}
		out := s.tracker.ToggleGuildQuest(ctx, id)
		s.printer.Toggled(label, out.Value)
		return nil
	})
}
