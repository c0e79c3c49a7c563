package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/config"
	"github.com/papapumpkin/dungeontracker/internal/journal"
	"github.com/papapumpkin/dungeontracker/internal/kv"
	"github.com/papapumpkin/dungeontracker/internal/logging"
	"github.com/papapumpkin/dungeontracker/internal/metrics"
	"github.com/papapumpkin/dungeontracker/internal/store"
	"github.com/papapumpkin/dungeontracker/internal/tracker"
	"github.com/papapumpkin/dungeontracker/internal/ui"
)

// session bundles everything a progress command needs. It is built once
// per invocation and closed when the command returns.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	printer *ui.Printer
	catalog *catalog.Catalog
	storage kv.Storage
	store   *store.Store
	metrics *metrics.Metrics
	journal *journal.Journal
	tracker *tracker.Tracker
}

// loadConfig reads configuration and builds the logger.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format), nil
}

// loadCatalog returns the catalog at path, or the built-in one when path
// is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func newPrinter(cmd *cobra.Command, cfg config.Config, dark bool) *ui.Printer {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(),
		ui.WithDarkMode(dark),
		ui.WithLocale(cfg.Locale),
		ui.WithInput(cmd.InOrStdin()),
	)
}

// openSession loads config, catalog and storage and builds the tracker.
// When the configured store cannot be opened the session continues on an
// in-memory store so the command still works, without saving.
func openSession(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	storage, err := kv.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		logger.Warn("storage unavailable, progress will not be saved", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path, "error", err)
		storage = kv.NewMemory()
	}
	st := store.New(storage, logger)
	m := metrics.New()

	var j *journal.Journal
	if cfg.JournalFile != "" {
		if j, err = journal.Open(cfg.JournalFile); err != nil {
			logger.Warn("journal unavailable", "path", cfg.JournalFile, "error", err)
			j = nil
		}
	}

	s := &session{
		cfg:     cfg,
		logger:  logger,
		printer: newPrinter(cmd, cfg, st.DarkMode(ctx)),
		catalog: cat,
		storage: storage,
		store:   st,
		metrics: m,
		journal: j,
	}
	s.tracker = tracker.New(ctx, cat, st,
		tracker.WithLogger(logger),
		tracker.WithMetrics(m),
		tracker.WithJournal(j),
	)
	s.tracker.Subscribe(s.printer.Celebrate)
	return s, nil
}

// Close flushes metrics and releases the journal and the store.
func (s *session) Close() error {
	if s.cfg.MetricsFile != "" {
		if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			s.logger.Warn("metrics not written", "path", s.cfg.MetricsFile, "error", err)
		}
	}
	if err := s.journal.Close(); err != nil {
		s.logger.Warn("journal not closed", "path", s.cfg.JournalFile, "error", err)
	}
	if err := s.storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// withSession runs fn with an open session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s)
}
