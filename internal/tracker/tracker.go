// Package tracker is the application root: it owns the in-memory snapshot,
// applies toggles through the pure progress transforms, writes every change
// through to the store and emits celebrations to subscribers.
//
// A Tracker is a single actor and is not safe for concurrent use.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/celebrate"
	"github.com/papapumpkin/dungeontracker/internal/journal"
	"github.com/papapumpkin/dungeontracker/internal/metrics"
	"github.com/papapumpkin/dungeontracker/internal/progress"
	"github.com/papapumpkin/dungeontracker/internal/score"
	"github.com/papapumpkin/dungeontracker/internal/store"
)

// ErrUnknownWorld is returned by bulk operations on a world the catalog
// does not define.
var ErrUnknownWorld = errors.New("unknown world")

// Outcome describes the effect of one toggle.
type Outcome struct {
	Kind    celebrate.Kind
	Subject string
	// Value is the toggled item's state after the toggle.
	Value        bool
	CompletedNow bool
	// Celebration is set when the completion was celebrated.
	Celebration *celebrate.Event
}

// Tracker holds the session's progress.
type Tracker struct {
	catalog *catalog.Catalog
	store   *store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	journal *journal.Journal
	rng     *rand.Rand

	snap      progress.Snapshot
	notifier  *celebrate.Notifier
	latch     *celebrate.Latch
	listeners []func(celebrate.Event)
}

// New loads persisted progress and preferences from s.
func New(ctx context.Context, c *catalog.Catalog, s *store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		catalog: c,
		store:   s,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.notifier = celebrate.NewNotifier(t.rng, true)
	t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) {
	t.snap = t.store.LoadAll(ctx)
	t.notifier.SetEnabled(t.store.CelebrationsEnabled(ctx))
	t.latch = celebrate.NewLatch(t.store.LoadLatched(ctx))
	t.reconcile(ctx)
	t.updateGauges()
}

// Reload re-reads everything from storage, discarding in-memory state.
func (t *Tracker) Reload(ctx context.Context) {
	t.load(ctx)
}

// Catalog returns the catalog the tracker scores against.
func (t *Tracker) Catalog() *catalog.Catalog { return t.catalog }

// Snapshot returns a copy of the current progress.
func (t *Tracker) Snapshot() progress.Snapshot { return t.snap.Clone() }

// Summary aggregates the current progress.
func (t *Tracker) Summary() score.Summary { return score.Summarize(t.catalog, t.snap) }

// CelebrationsEnabled reports whether completions are celebrated.
func (t *Tracker) CelebrationsEnabled() bool { return t.notifier.Enabled() }

// SetCelebrations switches celebrations on or off and persists the choice.
func (t *Tracker) SetCelebrations(ctx context.Context, on bool) {
	t.notifier.SetEnabled(on)
	t.save("confetti", t.store.SetCelebrationsEnabled(ctx, on))
}

// Subscribe registers fn to receive every celebration.
func (t *Tracker) Subscribe(fn func(celebrate.Event)) {
	if fn != nil {
		t.listeners = append(t.listeners, fn)
	}
}

// ToggleDungeon flips one clear of a dungeon.
func (t *Tracker) ToggleDungeon(ctx context.Context, dungeonID string, field progress.Difficulty) Outcome {
	next, done := progress.ToggleDungeon(t.snap.Dungeons, dungeonID, field)
	t.snap.Dungeons = next
	t.save("dungeons", t.store.SaveDungeons(ctx, next))

	rec := next[dungeonID]
	value := rec.Normal
	if field == progress.Challenged {
		value = rec.Challenged
	}
	t.metrics.ObserveToggle("dungeons", value)
	t.record(journal.Entry{Kind: journal.KindToggle, Category: string(store.Dungeons), Subject: dungeonID + "/" + string(field), Value: &value})

	subject := dungeonID
	if d, _, ok := t.catalog.Dungeon(dungeonID); ok {
		subject = d.Name
	}
	out := Outcome{Kind: celebrate.KindDungeon, Subject: dungeonID, Value: value, CompletedNow: done}
	return t.settle(ctx, out, celebrate.DungeonUnit(dungeonID), subject, rec.Cleared())
}

// ToggleTower flips one tower.
func (t *Tracker) ToggleTower(ctx context.Context, towerID string) Outcome {
	next, done := progress.ToggleTower(t.catalog, t.snap.Towers, towerID)
	t.snap.Towers = next
	t.save("towers", t.store.SaveFlags(ctx, store.Towers, next))
	t.metrics.ObserveToggle("towers", next[towerID])
	t.recordToggle(store.Towers, towerID, next[towerID])

	out := Outcome{Kind: celebrate.KindTowers, Subject: towerID, Value: next[towerID], CompletedNow: done}
	return t.settle(ctx, out, celebrate.UnitTowers, "All towers", next.None(t.catalog.TowerIDs()))
}

// ToggleWorldEvent flips event index of a world's event group.
func (t *Tracker) ToggleWorldEvent(ctx context.Context, worldID string, index int) Outcome {
	next, done := progress.ToggleWorldEvent(t.catalog, t.snap.WorldEvents, worldID, index)
	t.snap.WorldEvents = next
	t.save("world_events", t.store.SaveFlags(ctx, store.WorldEvents, next))

	key := progress.EventKey(worldID, index)
	t.metrics.ObserveToggle("world_events", next[key])
	t.recordToggle(store.WorldEvents, key, next[key])

	subject := "World " + worldID + " events"
	if w, ok := t.catalog.World(worldID); ok {
		subject = w.Name + " events"
	}
	g, _ := t.catalog.WorldEventGroup(worldID)
	out := Outcome{Kind: celebrate.KindWorldEvents, Subject: key, Value: next[key], CompletedNow: done}
	return t.settle(ctx, out, celebrate.WorldEventsUnit(worldID), subject, next.None(progress.EventKeys(worldID, g.Count)))
}

// ToggleGuildQuest flips one guild quest.
func (t *Tracker) ToggleGuildQuest(ctx context.Context, questID string) Outcome {
	next, done := progress.ToggleGuildQuest(t.catalog, t.snap.GuildQuests, questID)
	t.snap.GuildQuests = next
	t.save("guild_quests", t.store.SaveFlags(ctx, store.GuildQuests, next))
	t.metrics.ObserveToggle("guild_quests", next[questID])
	t.recordToggle(store.GuildQuests, questID, next[questID])

	out := Outcome{Kind: celebrate.KindGuildQuests, Subject: questID, Value: next[questID], CompletedNow: done}
	return t.settle(ctx, out, celebrate.UnitGuildQuests, "Guild quests", next.None(t.catalog.GuildQuestIDs()))
}

// SetWorldDungeons sets both clears of every dungeon in a world. Bulk
// changes never celebrate.
func (t *Tracker) SetWorldDungeons(ctx context.Context, worldID string, value bool) error {
	if _, ok := t.catalog.World(worldID); !ok {
		return fmt.Errorf("tracker: set dungeons of world %q: %w", worldID, ErrUnknownWorld)
	}
	t.snap.Dungeons = progress.SetAllDungeons(t.snap.Dungeons, t.catalog.DungeonIDs(worldID), value)
	t.save("dungeons", t.store.SaveDungeons(ctx, t.snap.Dungeons))
	t.record(journal.Entry{Kind: journal.KindSetWorld, Category: string(store.Dungeons), Subject: worldID, Value: &value})
	t.reconcile(ctx)
	t.updateGauges()
	return nil
}

// SetWorldEvents sets every event of a world's event group. Bulk changes
// never celebrate.
func (t *Tracker) SetWorldEvents(ctx context.Context, worldID string, value bool) error {
	g, ok := t.catalog.WorldEventGroup(worldID)
	if !ok {
		return fmt.Errorf("tracker: set events of world %q: %w", worldID, ErrUnknownWorld)
	}
	t.snap.WorldEvents = progress.SetAllFlags(t.snap.WorldEvents, progress.EventKeys(worldID, g.Count), value)
	t.save("world_events", t.store.SaveFlags(ctx, store.WorldEvents, t.snap.WorldEvents))
	t.record(journal.Entry{Kind: journal.KindSetWorld, Category: string(store.WorldEvents), Subject: worldID, Value: &value})
	t.reconcile(ctx)
	t.updateGauges()
	return nil
}

// Reset clears all four categories and re-arms every celebration. The
// in-memory state is cleared even when storage fails; the error reports
// which slots could not be removed.
func (t *Tracker) Reset(ctx context.Context) error {
	t.snap = progress.NewSnapshot()
	t.latch.Clear()
	t.updateGauges()
	t.record(journal.Entry{Kind: journal.KindReset})
	if err := t.store.ResetAll(ctx); err != nil {
		t.metrics.ObserveStoreError("reset")
		return fmt.Errorf("tracker: reset: %w", err)
	}
	return nil
}

// settle applies the celebration latch to a toggle and notifies
// subscribers when the completion is celebrated.
func (t *Tracker) settle(ctx context.Context, out Outcome, unit, subject string, cleared bool) Outcome {
	defer t.updateGauges()

	if cleared {
		if t.latch.Rearm(unit) {
			t.saveLatch(ctx)
		}
		return out
	}
	if !t.latch.Gate(unit, out.CompletedNow) {
		return out
	}
	t.saveLatch(ctx)

	ev, ok := t.notifier.NotifyIfCompleted(true, out.Kind, subject)
	if !ok {
		return out
	}
	t.metrics.ObserveCelebration(string(ev.Kind))
	t.record(journal.Entry{Kind: journal.KindCelebration, Category: string(ev.Kind), Subject: ev.Subject, Message: ev.Message})
	for _, fn := range t.listeners {
		fn(ev)
	}
	out.Celebration = &ev
	return out
}

// reconcile latches every complete unit and re-arms every cleared one, so
// state loaded from storage or changed in bulk cannot celebrate twice.
func (t *Tracker) reconcile(ctx context.Context) {
	changed := false
	mark := func(unit string, complete, cleared bool) {
		switch {
		case cleared:
			changed = t.latch.Rearm(unit) || changed
		case complete && !t.latch.Latched(unit):
			t.latch.Gate(unit, true)
			changed = true
		}
	}

	for id, rec := range t.snap.Dungeons {
		mark(celebrate.DungeonUnit(id), rec.Complete(), rec.Cleared())
	}
	for _, w := range t.catalog.Worlds() {
		for _, d := range w.Dungeons {
			if _, ok := t.snap.Dungeons[d.ID]; !ok {
				mark(celebrate.DungeonUnit(d.ID), false, true)
			}
		}
	}

	towers := t.catalog.TowerIDs()
	mark(celebrate.UnitTowers, len(towers) > 0 && t.snap.Towers.All(towers), t.snap.Towers.None(towers))

	for _, g := range t.catalog.WorldEvents() {
		keys := progress.EventKeys(g.WorldID, g.Count)
		mark(celebrate.WorldEventsUnit(g.WorldID), len(keys) > 0 && t.snap.WorldEvents.All(keys), t.snap.WorldEvents.None(keys))
	}

	quests := t.catalog.GuildQuestIDs()
	mark(celebrate.UnitGuildQuests, len(quests) > 0 && t.snap.GuildQuests.All(quests), t.snap.GuildQuests.None(quests))

	if changed {
		t.saveLatch(ctx)
	}
}

func (t *Tracker) saveLatch(ctx context.Context) {
	t.save("celebrated_units", t.store.SaveLatched(ctx, t.latch.Units()))
}

// save logs and counts a failed write. The in-session state stays
// authoritative, so the failure is not returned.
func (t *Tracker) save(op string, err error) {
	if err == nil {
		return
	}
	t.metrics.ObserveStoreError(op)
	t.logger.Warn("progress not saved", "op", op, "error", err)
}

func (t *Tracker) recordToggle(cat store.Category, subject string, value bool) {
	t.record(journal.Entry{Kind: journal.KindToggle, Category: string(cat), Subject: subject, Value: &value})
}

// record appends to the journal. A failed append is logged and otherwise
// ignored.
func (t *Tracker) record(e journal.Entry) {
	if err := t.journal.Append(e); err != nil {
		t.logger.Warn("journal entry not written", "kind", e.Kind, "error", err)
	}
}

func (t *Tracker) updateGauges() {
	if t.metrics == nil {
		return
	}
	sum := t.Summary()
	t.metrics.SetPoints(sum.Total, sum.Max)

	var dungeons score.Progress
	for _, w := range sum.Worlds {
		dungeons.Completed += w.Progress.Completed
		dungeons.Total += w.Progress.Total
	}
	var events score.Progress
	for _, g := range sum.WorldEvents {
		events.Completed += g.Progress.Completed
		events.Total += g.Progress.Total
	}
	t.metrics.SetCompletion("dungeons", dungeons.Fraction())
	t.metrics.SetCompletion("towers", sum.TowersProgress.Fraction())
	t.metrics.SetCompletion("world_events", events.Fraction())
	t.metrics.SetCompletion("guild_quests", sum.QuestsProgress.Fraction())
}
