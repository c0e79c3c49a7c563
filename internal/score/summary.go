package score

import (
	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/progress"
)

// DungeonRow is one dungeon as the status view shows it.
type DungeonRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Normal     bool   `json:"normal"`
	Challenged bool   `json:"challenged"`
}

// WorldRow is one world with its dungeons and clear count.
type WorldRow struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Progress Progress     `json:"progress"`
	Dungeons []DungeonRow `json:"dungeons"`
}

// TowerRow is one tower. Scored is false for infinite towers.
type TowerRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Scored bool   `json:"scored"`
	Done   bool   `json:"done"`
}

// EventRow is one event of a world's event group.
type EventRow struct {
	Index int  `json:"index"`
	Done  bool `json:"done"`
}

// EventGroupRow is one world's event group.
type EventGroupRow struct {
	WorldID   string     `json:"world_id"`
	WorldName string     `json:"world_name"`
	Points    int        `json:"points_each"`
	Progress  Progress   `json:"progress"`
	Events    []EventRow `json:"events"`
}

// QuestRow is one guild quest.
type QuestRow struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Done   bool   `json:"done"`
}

// Summary is everything the status view renders, derived in one pass.
type Summary struct {
	Worlds         []WorldRow      `json:"worlds"`
	Towers         []TowerRow      `json:"towers"`
	TowersProgress Progress        `json:"towers_progress"`
	WorldEvents    []EventGroupRow `json:"world_events"`
	GuildQuests    []QuestRow      `json:"guild_quests"`
	QuestsProgress Progress        `json:"guild_quests_progress"`
	Points         Points          `json:"points"`
	Total          int             `json:"total_points"`
	Max            int             `json:"max_points"`
	Tier           Tier            `json:"tier"`
	NextTier       *Tier           `json:"next_tier,omitempty"`
	PointsToNext   int             `json:"points_to_next_tier,omitempty"`
}

// Summarize derives the full status view from the catalog and a snapshot.
func Summarize(c *catalog.Catalog, snap progress.Snapshot) Summary {
	var s Summary

	for _, w := range c.Worlds() {
		row := WorldRow{ID: w.ID, Name: w.Name}
		row.Progress, _ = WorldProgress(c, snap.Dungeons, w.ID)
		for _, d := range w.Dungeons {
			rec := snap.Dungeons[d.ID]
			row.Dungeons = append(row.Dungeons, DungeonRow{
				ID:         d.ID,
				Name:       d.Name,
				Normal:     rec.Normal,
				Challenged: rec.Challenged,
			})
		}
		s.Worlds = append(s.Worlds, row)
	}

	for _, t := range c.Towers() {
		done := snap.Towers[t.ID]
		s.Towers = append(s.Towers, TowerRow{ID: t.ID, Name: t.Name, Points: t.Points, Scored: !t.Infinite(), Done: done})
	}
	s.TowersProgress = Progress{Completed: snap.Towers.CountSet(c.TowerIDs()), Total: len(s.Towers)}

	for _, g := range c.WorldEvents() {
		row := EventGroupRow{WorldID: g.WorldID, Points: g.Points}
		if w, ok := c.World(g.WorldID); ok {
			row.WorldName = w.Name
		}
		keys := progress.EventKeys(g.WorldID, g.Count)
		for i, k := range keys {
			row.Events = append(row.Events, EventRow{Index: i, Done: snap.WorldEvents[k]})
		}
		row.Progress = Progress{Completed: snap.WorldEvents.CountSet(keys), Total: len(keys)}
		s.WorldEvents = append(s.WorldEvents, row)
	}

	for _, q := range c.GuildQuests() {
		s.GuildQuests = append(s.GuildQuests, QuestRow{ID: q.ID, Name: q.Name, Points: q.Points, Done: snap.GuildQuests[q.ID]})
	}
	s.QuestsProgress = Progress{Completed: snap.GuildQuests.CountSet(c.GuildQuestIDs()), Total: len(s.GuildQuests)}

	s.Points = Breakdown(c, snap)
	s.Total = s.Points.Total()
	s.Max = MaxPoints(c)
	s.Tier = TierFor(s.Total)
	if next, missing, ok := NextTier(s.Total); ok {
		s.NextTier = &next
		s.PointsToNext = missing
	}
	return s
}

// Incomplete returns a copy of s with finished items removed: dungeons with
// both clears, done towers, events and quests. Worlds and event groups with
// nothing left are dropped. Progress counts and points are kept as is.
func (s Summary) Incomplete() Summary {
	out := s
	out.Worlds = nil
	for _, w := range s.Worlds {
		var left []DungeonRow
		for _, d := range w.Dungeons {
			if !(d.Normal && d.Challenged) {
				left = append(left, d)
			}
		}
		if len(left) == 0 {
			continue
		}
		w.Dungeons = left
		out.Worlds = append(out.Worlds, w)
	}

	out.Towers = nil
	for _, t := range s.Towers {
		if !t.Done {
			out.Towers = append(out.Towers, t)
		}
	}

	out.WorldEvents = nil
	for _, g := range s.WorldEvents {
		var left []EventRow
		for _, e := range g.Events {
			if !e.Done {
				left = append(left, e)
			}
		}
		if len(left) == 0 {
			continue
		}
		g.Events = left
		out.WorldEvents = append(out.WorldEvents, g)
	}

	out.GuildQuests = nil
	for _, q := range s.GuildQuests {
		if !q.Done {
			out.GuildQuests = append(out.GuildQuests, q)
		}
	}
	return out
}
