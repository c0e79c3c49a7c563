package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all progress (preferences are kept)",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if !yes {
			ok, err := s.printer.Confirm("Reset all dungeon, tower, event and guild quest progress?")
			if err != nil {
				return err
			}
			if !ok {
				s.printer.Info("reset cancelled")
				return nil
			}
		}
		if err := s.tracker.Reset(ctx); err != nil {
			return err
		}
		s.printer.Info("all progress cleared")
		return nil
	})
}
