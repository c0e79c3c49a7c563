package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/kv"
	"github.com/papapumpkin/dungeontracker/internal/watch"
)

var errWatchDriver = errors.New("watch needs the sqlite storage driver")

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show status and re-render whenever another process changes progress",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	addStatusFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	incomplete, _ := cmd.Flags().GetBool("incomplete")

	return withSession(cmd, func(ctx context.Context, s *session) error {
		// bbolt holds an exclusive file lock while open, which would
		// block every writer for as long as we watch.
		if s.cfg.Storage.Driver != kv.DriverSQLite {
			return fmt.Errorf("%w (configured: %s)", errWatchDriver, s.cfg.Storage.Driver)
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w, err := watch.NewWatcher(s.cfg.Storage.Path, 0)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()

		render := func() {
			sum := s.tracker.Summary()
			if incomplete {
				sum = sum.Incomplete()
			}
			s.printer.Status(sum)
			s.printer.Info(fmt.Sprintf("watching %s (updated %s, ctrl-c to stop)", s.cfg.Storage.Path, time.Now().Format(time.TimeOnly)))
		}
		render()

		for {
			select {
			case <-ctx.Done():
				return nil
			case change, ok := <-w.Changes:
				if !ok {
					return nil
				}
				s.logger.Debug("store changed", "file", change.File)
				s.tracker.Reload(ctx)
				render()
			}
		}
	})
}
