// Package progress defines the tracker's mutable state and the pure
// transforms applied to it. Every transform returns a new map and leaves
// its input untouched.
package progress

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Difficulty selects one of a dungeon's two independent clears.
type Difficulty string

// Dungeon difficulties.
const (
	Normal     Difficulty = "normal"
	Challenged Difficulty = "challenged"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Normal, Challenged:
		return d, nil
	default:
		return "", fmt.Errorf("progress: unknown difficulty %q (want normal or challenged)", s)
	}
}

// DungeonRecord is the completion state of one dungeon.
type DungeonRecord struct {
	Normal     bool `json:"normal"`
	Challenged bool `json:"challenged"`
}

// Complete reports whether both clears are done.
func (r DungeonRecord) Complete() bool { return r.Normal && r.Challenged }

// Cleared reports whether neither clear is done.
func (r DungeonRecord) Cleared() bool { return !r.Normal && !r.Challenged }

// Count returns how many of the two clears are done.
func (r DungeonRecord) Count() int {
	n := 0
	if r.Normal {
		n++
	}
	if r.Challenged {
		n++
	}
	return n
}

// DungeonState maps dungeon ID to its record. A missing key means neither
// clear is done.
type DungeonState map[string]DungeonRecord

// Clone returns an independent copy; a nil state clones to an empty one.
func (s DungeonState) Clone() DungeonState {
	out := make(DungeonState, len(s)+1)
	maps.Copy(out, s)
	return out
}

// Flags maps an ID to a done flag. Towers, world events and guild quests
// all use it. A missing key means not done.
type Flags map[string]bool

// Clone returns an independent copy; a nil map clones to an empty one.
func (f Flags) Clone() Flags {
	out := make(Flags, len(f)+1)
	maps.Copy(out, f)
	return out
}

// All reports whether every key is set. It is true for an empty key list.
func (f Flags) All(keys []string) bool {
	for _, k := range keys {
		if !f[k] {
			return false
		}
	}
	return true
}

// None reports whether no key is set.
func (f Flags) None(keys []string) bool {
	for _, k := range keys {
		if f[k] {
			return false
		}
	}
	return true
}

// CountSet returns how many keys are set.
func (f Flags) CountSet(keys []string) int {
	n := 0
	for _, k := range keys {
		if f[k] {
			n++
		}
	}
	return n
}

// Snapshot bundles the four independent category states.
type Snapshot struct {
	Dungeons    DungeonState
	Towers      Flags
	WorldEvents Flags
	GuildQuests Flags
}

// NewSnapshot returns a snapshot with four empty maps.
func NewSnapshot() Snapshot {
	return Snapshot{
		Dungeons:    DungeonState{},
		Towers:      Flags{},
		WorldEvents: Flags{},
		GuildQuests: Flags{},
	}
}

// Clone deep-copies every category.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Dungeons:    s.Dungeons.Clone(),
		Towers:      s.Towers.Clone(),
		WorldEvents: s.WorldEvents.Clone(),
		GuildQuests: s.GuildQuests.Clone(),
	}
}

// EventKey builds the world-event key "<worldID>-event-<index>".
func EventKey(worldID string, index int) string {
	return worldID + "-event-" + strconv.Itoa(index)
}

// EventKeys returns the keys for indices 0..count-1 of a world.
func EventKeys(worldID string, count int) []string {
	if count <= 0 {
		return nil
	}
	keys := make([]string, count)
	for i := range keys {
		keys[i] = EventKey(worldID, i)
	}
	return keys
}

// ParseEventKey splits a world-event key into its world ID and index.
func ParseEventKey(key string) (worldID string, index int, ok bool) {
	i := strings.LastIndex(key, "-event-")
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(key[i+len("-event-"):])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return key[:i], n, true
}
