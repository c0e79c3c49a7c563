package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/journal"
)

var errNoJournal = errors.New("no journal configured; set journal_file or pass --journal-file")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent progress changes from the journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.JournalFile == "" {
		return errNoJournal
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, err := journal.Read(cfg.JournalFile, limit)
	if err != nil {
		return err
	}
	newPrinter(cmd, cfg, false).History(entries)
	return nil
}
