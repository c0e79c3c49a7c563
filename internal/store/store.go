// Package store persists tracker state into a kv.Storage, one slot per
// category. Reads never fail: a missing or unreadable slot degrades to the
// empty value and the failure is logged. Writes are synchronous and return
// their error so the caller can decide how loudly to complain.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/papapumpkin/dungeontracker/internal/kv"
	"github.com/papapumpkin/dungeontracker/internal/progress"
)

// Category is the storage slot of one progress category.
type Category string

// Progress slots. The names match the keys the browser tracker used.
const (
	Dungeons    Category = "dungeonTracker"
	Towers      Category = "towerTracker"
	WorldEvents Category = "worldEventTracker"
	GuildQuests Category = "guildQuestTracker"
)

// Preference and bookkeeping slots.
const (
	KeyDarkMode        = "darkMode"
	KeyConfetti        = "confettiEnabled"
	KeyCelebratedUnits = "celebratedUnits"
)

// ErrNotFlagCategory is returned when a flag operation targets the dungeon slot.
var ErrNotFlagCategory = errors.New("not a flag category")

// Categories returns the four progress slots.
func Categories() []Category {
	return []Category{Dungeons, Towers, WorldEvents, GuildQuests}
}

// Store reads and writes tracker state.
type Store struct {
	kv     kv.Storage
	logger *slog.Logger
}

// New returns a store over s. A nil logger discards log output.
func New(s kv.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: s, logger: logger}
}

// read returns the raw slot value; ok is false when the slot is absent or
// could not be read.
func (s *Store) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("storage read failed, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// LoadDungeons reads the dungeon slot, migrating legacy boolean entries.
func (s *Store) LoadDungeons(ctx context.Context) progress.DungeonState {
	raw, ok := s.read(ctx, string(Dungeons))
	if !ok {
		return progress.DungeonState{}
	}
	state, legacy, err := progress.DecodeDungeons([]byte(raw))
	if err != nil {
		s.logger.Warn("malformed dungeon progress, starting empty", "key", Dungeons, "error", err)
		return progress.DungeonState{}
	}
	if legacy > 0 {
		s.logger.Info("migrated legacy dungeon entries", "count", legacy)
	}
	return state
}

// LoadFlags reads a tower, world-event or guild-quest slot.
func (s *Store) LoadFlags(ctx context.Context, cat Category) progress.Flags {
	if cat == Dungeons {
		s.logger.Warn("flag load on dungeon slot ignored", "key", cat)
		return progress.Flags{}
	}
	raw, ok := s.read(ctx, string(cat))
	if !ok {
		return progress.Flags{}
	}
	flags, err := progress.DecodeFlags([]byte(raw))
	if err != nil {
		s.logger.Warn("malformed progress, starting empty", "key", cat, "error", err)
		return progress.Flags{}
	}
	return flags
}

// LoadAll reads every progress slot.
func (s *Store) LoadAll(ctx context.Context) progress.Snapshot {
	return progress.Snapshot{
		Dungeons:    s.LoadDungeons(ctx),
		Towers:      s.LoadFlags(ctx, Towers),
		WorldEvents: s.LoadFlags(ctx, WorldEvents),
		GuildQuests: s.LoadFlags(ctx, GuildQuests),
	}
}

// SaveDungeons writes the full dungeon slot.
func (s *Store) SaveDungeons(ctx context.Context, state progress.DungeonState) error {
	data, err := progress.EncodeDungeons(state)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, string(Dungeons), string(data)); err != nil {
		return fmt.Errorf("store: save %s: %w", Dungeons, err)
	}
	return nil
}

// SaveFlags writes a full tower, world-event or guild-quest slot.
func (s *Store) SaveFlags(ctx context.Context, cat Category, flags progress.Flags) error {
	if cat == Dungeons {
		return fmt.Errorf("store: save %s: %w", cat, ErrNotFlagCategory)
	}
	data, err := progress.EncodeFlags(flags)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, string(cat), string(data)); err != nil {
		return fmt.Errorf("store: save %s: %w", cat, err)
	}
	return nil
}

// SaveAll writes every progress slot.
func (s *Store) SaveAll(ctx context.Context, snap progress.Snapshot) error {
	return errors.Join(
		s.SaveDungeons(ctx, snap.Dungeons),
		s.SaveFlags(ctx, Towers, snap.Towers),
		s.SaveFlags(ctx, WorldEvents, snap.WorldEvents),
		s.SaveFlags(ctx, GuildQuests, snap.GuildQuests),
	)
}

// ResetAll removes the four progress slots and the celebration latch.
// Preferences survive a reset.
func (s *Store) ResetAll(ctx context.Context) error {
	var errs []error
	for _, key := range []string{string(Dungeons), string(Towers), string(WorldEvents), string(GuildQuests), KeyCelebratedUnits} {
		if err := s.kv.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("store: reset %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// DarkMode returns the dark-mode preference. Absent means off.
func (s *Store) DarkMode(ctx context.Context) bool {
	v, _ := s.read(ctx, KeyDarkMode)
	return v == "true"
}

// SetDarkMode stores the dark-mode preference.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	if err := s.kv.Set(ctx, KeyDarkMode, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyDarkMode, err)
	}
	return nil
}

// CelebrationsEnabled returns the celebration preference. Anything but the
// literal "false", including an absent slot, means on.
func (s *Store) CelebrationsEnabled(ctx context.Context) bool {
	v, _ := s.read(ctx, KeyConfetti)
	return v != "false"
}

// SetCelebrationsEnabled stores the celebration preference.
func (s *Store) SetCelebrationsEnabled(ctx context.Context, on bool) error {
	if err := s.kv.Set(ctx, KeyConfetti, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyConfetti, err)
	}
	return nil
}

// LoadLatched returns the units that have already celebrated.
func (s *Store) LoadLatched(ctx context.Context) []string {
	raw, ok := s.read(ctx, KeyCelebratedUnits)
	if !ok {
		return nil
	}
	var units []string
	if err := json.Unmarshal([]byte(raw), &units); err != nil {
		s.logger.Warn("malformed celebration latch, re-arming all", "key", KeyCelebratedUnits, "error", err)
		return nil
	}
	return units
}

// SaveLatched stores the latched units. An empty list removes the slot.
func (s *Store) SaveLatched(ctx context.Context, units []string) error {
	if len(units) == 0 {
		if err := s.kv.Remove(ctx, KeyCelebratedUnits); err != nil {
			return fmt.Errorf("store: save %s: %w", KeyCelebratedUnits, err)
		}
		return nil
	}
	data, err := json.Marshal(units)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", KeyCelebratedUnits, err)
	}
	if err := s.kv.Set(ctx, KeyCelebratedUnits, string(data)); err != nil {
		return fmt.Errorf("store: save %s: %w", KeyCelebratedUnits, err)
	}
	return nil
}
