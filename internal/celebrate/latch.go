package celebrate

import (
	"slices"
	"strings"
)

// Unit keys for the latch.
const (
	UnitTowers      = "towers"
	UnitGuildQuests = "quests"
)

// DungeonUnit returns the latch key for one dungeon.
func DungeonUnit(dungeonID string) string { return "dungeon:" + dungeonID }

// WorldEventsUnit returns the latch key for one world's event group.
func WorldEventsUnit(worldID string) string { return "events:" + worldID }

// Latch remembers which units have already celebrated. A latched unit does
// not celebrate again until it is re-armed, which happens when the unit is
// cleared back to its empty state.
type Latch struct {
	units map[string]bool
}

// NewLatch returns a latch with the given units already latched.
func NewLatch(units []string) *Latch {
	l := &Latch{units: make(map[string]bool, len(units))}
	for _, u := range units {
		if u = strings.TrimSpace(u); u != "" {
			l.units[u] = true
		}
	}
	return l
}

// Gate reports whether a completion of unit may celebrate, and latches the
// unit when it does. A false completedNow never latches.
func (l *Latch) Gate(unit string, completedNow bool) bool {
	if !completedNow || l.units[unit] {
		return false
	}
	l.units[unit] = true
	return true
}

// Rearm clears the latch for unit. It reports whether anything changed.
func (l *Latch) Rearm(unit string) bool {
	if !l.units[unit] {
		return false
	}
	delete(l.units, unit)
	return true
}

// Latched reports whether unit is latched.
func (l *Latch) Latched(unit string) bool { return l.units[unit] }

// Units returns the latched units in sorted order.
func (l *Latch) Units() []string {
	out := make([]string, 0, len(l.units))
	for u := range l.units {
		out = append(out, u)
	}
	slices.Sort(out)
	return out
}

// Clear re-arms every unit.
func (l *Latch) Clear() {
	clear(l.units)
}
