package cmd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/score"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress, points and tier",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	addStatusFlags(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func addStatusFlags(c *cobra.Command) {
	c.Flags().Bool("incomplete", false, "only list items that are not yet done")
	c.Flags().Bool("json", false, "print the summary as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	incomplete, _ := cmd.Flags().GetBool("incomplete")
	asJSON, _ := cmd.Flags().GetBool("json")

	return withSession(cmd, func(_ context.Context, s *session) error {
		sum := s.tracker.Summary()
		if incomplete {
			sum = sum.Incomplete()
		}
		if asJSON {
			return writeStatusJSON(cmd.OutOrStdout(), sum)
		}
		s.printer.Status(sum)
		return nil
	})
}

// writeStatusJSON encodes a summary as indented JSON.
func writeStatusJSON(w io.Writer, sum score.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
