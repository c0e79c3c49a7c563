// Package score derives aggregates from the catalog and a progress
// snapshot. Everything is recomputed from scratch on each call and always
// iterates the catalog, so state entries for unknown IDs never count.
package score

import (
	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/progress"
)

// Progress is a completed-out-of-total count.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Fraction returns Completed/Total in [0, 1]. A zero total yields 0: a
// world with nothing to clear shows an empty bar rather than a full one.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Done reports whether every item is complete. A zero total is never done.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed >= p.Total
}

// WorldProgress counts a world's completed clears. Total is two per
// dungeon. ok is false when the world is unknown.
func WorldProgress(c *catalog.Catalog, dungeons progress.DungeonState, worldID string) (Progress, bool) {
	w, ok := c.World(worldID)
	if !ok {
		return Progress{}, false
	}
	p := Progress{Total: 2 * len(w.Dungeons)}
	for _, d := range w.Dungeons {
		p.Completed += dungeons[d.ID].Count()
	}
	return p, true
}

// Points is the point total split by category.
type Points struct {
	Dungeons    int `json:"dungeons"`
	Towers      int `json:"towers"`
	WorldEvents int `json:"world_events"`
	GuildQuests int `json:"guild_quests"`
}

// Total sums every category.
func (p Points) Total() int {
	return p.Dungeons + p.Towers + p.WorldEvents + p.GuildQuests
}

// Breakdown computes points per category. Infinite towers never score.
func Breakdown(c *catalog.Catalog, snap progress.Snapshot) Points {
	var p Points
	for _, w := range c.Worlds() {
		for _, d := range w.Dungeons {
			rec := snap.Dungeons[d.ID]
			if rec.Normal {
				p.Dungeons += d.PointsNormal
			}
			if rec.Challenged {
				p.Dungeons += d.PointsChallenged
			}
		}
	}
	for _, t := range c.Towers() {
		if snap.Towers[t.ID] && !t.Infinite() {
			p.Towers += t.Points
		}
	}
	for _, g := range c.WorldEvents() {
		p.WorldEvents += g.Points * snap.WorldEvents.CountSet(progress.EventKeys(g.WorldID, g.Count))
	}
	for _, q := range c.GuildQuests() {
		if snap.GuildQuests[q.ID] {
			p.GuildQuests += q.Points
		}
	}
	return p
}

// TotalPoints returns the overall point total.
func TotalPoints(c *catalog.Catalog, snap progress.Snapshot) int {
	return Breakdown(c, snap).Total()
}

// MaxPoints returns the total a fully completed snapshot would score.
func MaxPoints(c *catalog.Catalog) int {
	full := progress.NewSnapshot()
	for _, w := range c.Worlds() {
		full.Dungeons = progress.SetAllDungeons(full.Dungeons, c.DungeonIDs(w.ID), true)
	}
	full.Towers = progress.SetAllFlags(full.Towers, c.TowerIDs(), true)
	for _, g := range c.WorldEvents() {
		full.WorldEvents = progress.SetAllFlags(full.WorldEvents, progress.EventKeys(g.WorldID, g.Count), true)
	}
	full.GuildQuests = progress.SetAllFlags(full.GuildQuests, c.GuildQuestIDs(), true)
	return TotalPoints(c, full)
}
