// Package catalog holds the immutable reference data the tracker scores
// against: worlds and their dungeons, towers, world-event groups and guild
// quests. A catalog is built once at startup and never mutated.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalog []byte

// Dungeon is a completable unit with two independent clears.
type Dungeon struct {
	ID               string `toml:"id"`
	Name             string `toml:"name"`
	PointsNormal     int    `toml:"points_normal"`
	PointsChallenged int    `toml:"points_challenged"`
}

// World is a themed, ordered group of dungeons.
type World struct {
	ID       string    `toml:"id"`
	Name     string    `toml:"name"`
	Dungeons []Dungeon `toml:"dungeons"`
}

// Tower is a single boolean-completable unit, independent of worlds.
type Tower struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Points int    `toml:"points"`
}

// Infinite reports whether the tower is an endless tower. Endless towers
// count towards tower completion but never towards the point total.
func (t Tower) Infinite() bool {
	return strings.Contains(strings.ToLower(t.Name), "infinite")
}

// WorldEventGroup is a fixed-count set of events attached to one world.
// Every event in the group is worth the same number of points.
type WorldEventGroup struct {
	WorldID string `toml:"world_id"`
	Count   int    `toml:"count"`
	Points  int    `toml:"points"`
}

// GuildQuest is one of a small fixed set of guild tasks.
type GuildQuest struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Points int    `toml:"points"`
}

// Spec is the on-disk shape of a catalog document.
type Spec struct {
	Worlds      []World           `toml:"worlds"`
	Towers      []Tower           `toml:"towers"`
	WorldEvents []WorldEventGroup `toml:"world_events"`
	GuildQuests []GuildQuest      `toml:"guild_quests"`
}

type dungeonRef struct {
	world int
	pos   int
}

// Catalog is a validated, indexed, read-only view over a Spec.
type Catalog struct {
	spec Spec

	worlds   map[string]int
	dungeons map[string]dungeonRef
	towers   map[string]int
	events   map[string]int
	quests   map[string]int
}

// ParseSpec decodes a TOML catalog document. Unknown keys are rejected so
// typos in a hand-written catalog surface instead of silently scoring zero.
func ParseSpec(data []byte) (Spec, error) {
	var s Spec
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Spec{}, fmt.Errorf("catalog: parse: %w", err)
	}
	return s, nil
}

// LoadSpec reads and decodes the catalog document at path.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return ParseSpec(data)
}

// DefaultSpec returns the built-in catalog document.
func DefaultSpec() (Spec, error) {
	return ParseSpec(defaultCatalog)
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	s, err := DefaultSpec()
	if err != nil {
		return nil, err
	}
	return New(s)
}

// Load builds a catalog from the TOML document at path.
func Load(path string) (*Catalog, error) {
	s, err := LoadSpec(path)
	if err != nil {
		return nil, err
	}
	return New(s)
}

// New validates s and indexes it. Any validation error rejects the catalog.
func New(s Spec) (*Catalog, error) {
	if errs := Validate(s); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i := range errs {
			joined[i] = errs[i]
		}
		return nil, fmt.Errorf("catalog: %d validation error(s): %w", len(errs), errors.Join(joined...))
	}

	c := &Catalog{
		spec:     cloneSpec(s),
		worlds:   make(map[string]int, len(s.Worlds)),
		dungeons: make(map[string]dungeonRef),
		towers:   make(map[string]int, len(s.Towers)),
		events:   make(map[string]int, len(s.WorldEvents)),
		quests:   make(map[string]int, len(s.GuildQuests)),
	}
	for wi, w := range c.spec.Worlds {
		c.worlds[w.ID] = wi
		for di, d := range w.Dungeons {
			c.dungeons[d.ID] = dungeonRef{world: wi, pos: di}
		}
	}
	for i, t := range c.spec.Towers {
		c.towers[t.ID] = i
	}
	for i, g := range c.spec.WorldEvents {
		c.events[g.WorldID] = i
	}
	for i, q := range c.spec.GuildQuests {
		c.quests[q.ID] = i
	}
	return c, nil
}

// Spec returns a copy of the document the catalog was built from.
func (c *Catalog) Spec() Spec {
	return cloneSpec(c.spec)
}

// Worlds returns the worlds in catalog order.
func (c *Catalog) Worlds() []World {
	return cloneSpec(Spec{Worlds: c.spec.Worlds}).Worlds
}

// World looks up a world by ID.
func (c *Catalog) World(id string) (World, bool) {
	i, ok := c.worlds[id]
	if !ok {
		return World{}, false
	}
	w := c.spec.Worlds[i]
	w.Dungeons = slices.Clone(w.Dungeons)
	return w, true
}

// Dungeon looks up a dungeon by ID and reports the world it belongs to.
func (c *Catalog) Dungeon(id string) (Dungeon, string, bool) {
	ref, ok := c.dungeons[id]
	if !ok {
		return Dungeon{}, "", false
	}
	w := c.spec.Worlds[ref.world]
	return w.Dungeons[ref.pos], w.ID, true
}

// DungeonIDs returns the IDs of a world's dungeons in order, or nil when
// the world is unknown.
func (c *Catalog) DungeonIDs(worldID string) []string {
	i, ok := c.worlds[worldID]
	if !ok {
		return nil
	}
	ds := c.spec.Worlds[i].Dungeons
	ids := make([]string, len(ds))
	for j, d := range ds {
		ids[j] = d.ID
	}
	return ids
}

// Towers returns the towers in catalog order.
func (c *Catalog) Towers() []Tower {
	return slices.Clone(c.spec.Towers)
}

// Tower looks up a tower by ID.
func (c *Catalog) Tower(id string) (Tower, bool) {
	i, ok := c.towers[id]
	if !ok {
		return Tower{}, false
	}
	return c.spec.Towers[i], true
}

// TowerIDs returns every tower ID in catalog order.
func (c *Catalog) TowerIDs() []string {
	ids := make([]string, len(c.spec.Towers))
	for i, t := range c.spec.Towers {
		ids[i] = t.ID
	}
	return ids
}

// WorldEvents returns the world-event groups in catalog order.
func (c *Catalog) WorldEvents() []WorldEventGroup {
	return slices.Clone(c.spec.WorldEvents)
}

// WorldEventGroup looks up the event group attached to a world.
func (c *Catalog) WorldEventGroup(worldID string) (WorldEventGroup, bool) {
	i, ok := c.events[worldID]
	if !ok {
		return WorldEventGroup{}, false
	}
	return c.spec.WorldEvents[i], true
}

// GuildQuests returns the guild quests in catalog order.
func (c *Catalog) GuildQuests() []GuildQuest {
	return slices.Clone(c.spec.GuildQuests)
}

// GuildQuest looks up a guild quest by ID.
func (c *Catalog) GuildQuest(id string) (GuildQuest, bool) {
	i, ok := c.quests[id]
	if !ok {
		return GuildQuest{}, false
	}
	return c.spec.GuildQuests[i], true
}

// GuildQuestIDs returns every guild quest ID in catalog order.
func (c *Catalog) GuildQuestIDs() []string {
	ids := make([]string, len(c.spec.GuildQuests))
	for i, q := range c.spec.GuildQuests {
		ids[i] = q.ID
	}
	return ids
}

func cloneSpec(s Spec) Spec {
	out := Spec{
		Worlds:      make([]World, len(s.Worlds)),
		Towers:      slices.Clone(s.Towers),
		WorldEvents: slices.Clone(s.WorldEvents),
		GuildQuests: slices.Clone(s.GuildQuests),
	}
	for i, w := range s.Worlds {
		w.Dungeons = slices.Clone(w.Dungeons)
		out.Worlds[i] = w
	}
	return out
}
