package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog validation.
var (
	// ErrMissingField indicates a required field (id, name) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateID indicates two entries of the same kind share an ID.
	// Dungeon IDs must be unique across all worlds.
	ErrDuplicateID = errors.New("duplicate ID")
	// ErrUnknownWorld indicates a world-event group references a world that
	// is not in the catalog.
	ErrUnknownWorld = errors.New("unknown world")
	// ErrInvalidCount indicates a world-event group with no events.
	ErrInvalidCount = errors.New("event count must be positive")
	// ErrNegativePoints indicates a negative point value.
	ErrNegativePoints = errors.New("points must not be negative")
)

// ValidationError describes one structural problem in a catalog document.
type ValidationError struct {
	Section string // "worlds", "towers", "world_events", "guild_quests"
	ID      string
	Field   string
	Err     error
}

// Error formats the location of the problem followed by its cause.
func (e ValidationError) Error() string {
	where := e.Section
	if e.ID != "" {
		where += "[" + e.ID + "]"
	}
	if e.Field != "" {
		where += "." + e.Field
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

// Unwrap returns the sentinel cause so callers can use errors.Is.
func (e ValidationError) Unwrap() error { return e.Err }

// Validate checks s for missing fields, duplicate IDs, dangling world
// references, empty event groups and negative point values.
func Validate(s Spec) []ValidationError {
	var errs []ValidationError

	worldIDs := make(map[string]bool, len(s.Worlds))
	dungeonIDs := make(map[string]string) // dungeon id → world id
	for _, w := range s.Worlds {
		errs = append(errs, requireFields("worlds", w.ID, w.Name)...)
		if w.ID != "" {
			if worldIDs[w.ID] {
				errs = append(errs, ValidationError{Section: "worlds", ID: w.ID, Err: ErrDuplicateID})
			}
			worldIDs[w.ID] = true
		}
		for _, d := range w.Dungeons {
			errs = append(errs, requireFields("worlds.dungeons", d.ID, d.Name)...)
			if d.ID == "" {
				continue
			}
			if prev, ok := dungeonIDs[d.ID]; ok {
				errs = append(errs, ValidationError{
					Section: "worlds.dungeons",
					ID:      d.ID,
					Err:     fmt.Errorf("%w: already defined in world %q", ErrDuplicateID, prev),
				})
			}
			dungeonIDs[d.ID] = w.ID
			if d.PointsNormal < 0 {
				errs = append(errs, ValidationError{Section: "worlds.dungeons", ID: d.ID, Field: "points_normal", Err: ErrNegativePoints})
			}
			if d.PointsChallenged < 0 {
				errs = append(errs, ValidationError{Section: "worlds.dungeons", ID: d.ID, Field: "points_challenged", Err: ErrNegativePoints})
			}
		}
	}

	towerIDs := make(map[string]bool, len(s.Towers))
	for _, t := range s.Towers {
		errs = append(errs, requireFields("towers", t.ID, t.Name)...)
		if t.ID != "" {
			if towerIDs[t.ID] {
				errs = append(errs, ValidationError{Section: "towers", ID: t.ID, Err: ErrDuplicateID})
			}
			towerIDs[t.ID] = true
		}
		if t.Points < 0 {
			errs = append(errs, ValidationError{Section: "towers", ID: t.ID, Field: "points", Err: ErrNegativePoints})
		}
	}

	groups := make(map[string]bool, len(s.WorldEvents))
	for _, g := range s.WorldEvents {
		if g.WorldID == "" {
			errs = append(errs, ValidationError{Section: "world_events", Field: "world_id", Err: ErrMissingField})
			continue
		}
		if !worldIDs[g.WorldID] {
			errs = append(errs, ValidationError{Section: "world_events", ID: g.WorldID, Field: "world_id", Err: ErrUnknownWorld})
		}
		if groups[g.WorldID] {
			errs = append(errs, ValidationError{Section: "world_events", ID: g.WorldID, Err: ErrDuplicateID})
		}
		groups[g.WorldID] = true
		if g.Count <= 0 {
			errs = append(errs, ValidationError{Section: "world_events", ID: g.WorldID, Field: "count", Err: ErrInvalidCount})
		}
		if g.Points < 0 {
			errs = append(errs, ValidationError{Section: "world_events", ID: g.WorldID, Field: "points", Err: ErrNegativePoints})
		}
	}

	questIDs := make(map[string]bool, len(s.GuildQuests))
	for _, q := range s.GuildQuests {
		errs = append(errs, requireFields("guild_quests", q.ID, q.Name)...)
		if q.ID != "" {
			if questIDs[q.ID] {
				errs = append(errs, ValidationError{Section: "guild_quests", ID: q.ID, Err: ErrDuplicateID})
			}
			questIDs[q.ID] = true
		}
		if q.Points < 0 {
			errs = append(errs, ValidationError{Section: "guild_quests", ID: q.ID, Field: "points", Err: ErrNegativePoints})
		}
	}

	return errs
}

func requireFields(section, id, name string) []ValidationError {
	var errs []ValidationError
	if id == "" {
		errs = append(errs, ValidationError{Section: section, Field: "id", Err: ErrMissingField})
	}
	if name == "" {
		errs = append(errs, ValidationError{Section: section, ID: id, Field: "name", Err: ErrMissingField})
	}
	return errs
}
