package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Mark world event completion",
}

var eventToggleCmd = &cobra.Command{
	Use:   "toggle <world> <n>",
	Short: "Toggle the n-th event (counting from 1) of a world",
	Args:  cobra.ExactArgs(2),
	RunE:  runEventToggle,
}

var eventSetWorldCmd = &cobra.Command{
	Use:   "set-world <world>",
	Short: "Mark every event of a world as done or not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventSetWorld,
}

func init() {
	addSetWorldFlags(eventSetWorldCmd)

	eventCmd.AddCommand(eventToggleCmd)
	eventCmd.AddCommand(eventSetWorldCmd)
	rootCmd.AddCommand(eventCmd)
}

// parseEventNumber converts a 1-based event number to a 0-based index.
func parseEventNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("event number %q: want a positive integer", s)
	}
	return n - 1, nil
}

func runEventToggle(cmd *cobra.Command, args []string) error {
	worldID := args[0]
	index, err := parseEventNumber(args[1])
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		label := fmt.Sprintf("world %s event %d", worldID, index+1)
		g, ok := s.catalog.WorldEventGroup(worldID)
		switch {
		case !ok:
			s.printer.Warn(fmt.Sprintf("world %q has no events in the catalog; it will not score", worldID))
		case index >= g.Count:
			s.printer.Warn(fmt.Sprintf("world %s has %d event(s); event %d will not score", worldID, g.Count, index+1))
		}
		if w, ok := s.catalog.World(worldID); ok {
			label = fmt.Sprintf("%s event %d", w.Name, index+1)
		}
		out := s.tracker.ToggleWorldEvent(ctx, worldID, index)
		s.printer.Toggled(label, out.Value)
		return nil
	})
}

func runEventSetWorld(cmd *cobra.Command, args []string) error {
	worldID := args[0]
	value := setWorldValue(cmd)

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if err := s.tracker.SetWorldEvents(ctx, worldID, value); err != nil {
			return err
		}
		g, _ := s.catalog.WorldEventGroup(worldID)
		label := fmt.Sprintf("world %s: all %d event(s)", worldID, g.Count)
		if w, ok := s.catalog.World(worldID); ok {
			label = fmt.Sprintf("%s: all %d event(s)", w.Name, g.Count)
		}
		s.printer.Toggled(label, value)
		return nil
	})
}
