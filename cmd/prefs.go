package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	prefDarkMode     = "dark-mode"
	prefCelebrations = "celebrations"
)

var prefsCmd = &cobra.Command{
	Use:       "prefs [dark-mode|celebrations] [on|off]",
	Short:     "Show or change display preferences",
	Args:      cobra.RangeArgs(0, 2),
	ValidArgs: []string{prefDarkMode, prefCelebrations},
	RunE:      runPrefs,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
}

// parseOnOff accepts on/off and the usual boolean spellings.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("value %q: want on or off", s)
	}
}

func runPrefs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && args[0] != prefDarkMode && args[0] != prefCelebrations {
		return fmt.Errorf("unknown preference %q: want %s or %s", args[0], prefDarkMode, prefCelebrations)
	}
	var value *bool
	if len(args) == 2 {
		v, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		value = &v
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if value != nil {
			switch args[0] {
			case prefDarkMode:
				if err := s.store.SetDarkMode(ctx, *value); err != nil {
					return err
				}
			case prefCelebrations:
				s.tracker.SetCelebrations(ctx, *value)
			}
		}
		s.printer.Prefs(s.store.DarkMode(ctx), s.tracker.CelebrationsEnabled())
		return nil
	})
}
