package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/progress"
)

var dungeonCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Mark dungeon clears",
}

var dungeonToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle the normal clear of a dungeon (or the challenged clear with --challenged)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDungeonToggle,
}

var dungeonSetWorldCmd = &cobra.Command{
	Use:   "set-world <world>",
	Short: "Mark every dungeon of a world as done or not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runDungeonSetWorld,
}

func init() {
	dungeonToggleCmd.Flags().Bool("challenged", false, "toggle the challenged clear instead of the normal one")
	addSetWorldFlags(dungeonSetWorldCmd)

	dungeonCmd.AddCommand(dungeonToggleCmd)
	dungeonCmd.AddCommand(dungeonSetWorldCmd)
	rootCmd.AddCommand(dungeonCmd)
}

// addSetWorldFlags adds the mutually exclusive --done/--undone pair.
func addSetWorldFlags(c *cobra.Command) {
	c.Flags().Bool("done", false, "mark everything done")
	c.Flags().Bool("undone", false, "mark everything not done")
	c.MarkFlagsMutuallyExclusive("done", "undone")
	c.MarkFlagsOneRequired("done", "undone")
}

func setWorldValue(cmd *cobra.Command) bool {
	done, _ := cmd.Flags().GetBool("done")
	return done
}

func runDungeonToggle(cmd *cobra.Command, args []string) error {
	id := args[0]
	field := progress.Normal
	if challenged, _ := cmd.Flags().GetBool("challenged"); challenged {
		field = progress.Challenged
	}

	return withSession(cmd, func(ctx context.Context, s *session) error {
		label := fmt.Sprintf("dungeon %s %s", id, field)
		if d, _, ok := s.catalog.Dungeon(id); ok {
			label = fmt.Sprintf("%s (%s) %s", d.Name, id, field)
		} else {
			s.printer.Warn(fmt.Sprintf("dungeon %q is not in the catalog; it will not score", id))
		}
		out := s.tracker.ToggleDungeon(ctx, id, field)
		s.printer.Toggled(label, out.Value)
		return nil
	})
}

func runDungeonSetWorld(cmd *cobra.Command, args []string) error {
	worldID := args[0]
	value := setWorldValue(cmd)

	return withSession(cmd, func(ctx context.Context, s *session) error {
		if err := s.tracker.SetWorldDungeons(ctx, worldID, value); err != nil {
			return err
		}
		w, _ := s.catalog.World(worldID)
		s.printer.Toggled(fmt.Sprintf("%s: all %d dungeon(s)", w.Name, len(w.Dungeons)), value)
		return nil
	})
}
