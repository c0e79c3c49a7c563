package tracker

import (
	"log/slog"
	"math/rand/v2"

	"github.com/papapumpkin/dungeontracker/internal/journal"
	"github.com/papapumpkin/dungeontracker/internal/metrics"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger for save failures and load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics records toggles, celebrations, store errors and gauges on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// WithRand sets the source celebration flavour is drawn from.
func WithRand(r *rand.Rand) Option {
	return func(t *Tracker) { t.rng = r }
}

// WithJournal records every change and celebration in j.
func WithJournal(j *journal.Journal) Option {
	return func(t *Tracker) { t.journal = j }
}
