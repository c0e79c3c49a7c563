package progress

import "github.com/papapumpkin/dungeontracker/internal/catalog"

// ToggleDungeon flips one clear of a dungeon, creating an empty record when
// the dungeon has none. completedNow is true only when this flip is what
// made both clears done. An unrecognised difficulty returns an unchanged copy.
func ToggleDungeon(state DungeonState, dungeonID string, field Difficulty) (next DungeonState, completedNow bool) {
	next = state.Clone()
	before := state[dungeonID]
	after := before
	switch field {
	case Normal:
		after.Normal = !after.Normal
	case Challenged:
		after.Challenged = !after.Challenged
	default:
		return next, false
	}
	next[dungeonID] = after
	return next, after.Complete() && !before.Complete()
}

// ToggleTower flips one tower. completedNow is true when every catalog
// tower is done after the flip and was not before.
func ToggleTower(c *catalog.Catalog, state Flags, towerID string) (Flags, bool) {
	return toggleInGroup(state, towerID, c.TowerIDs())
}

// ToggleWorldEvent flips event index of a world. completedNow is true when
// every event of that world's group is done after the flip and was not
// before. A world without an event group never completes.
func ToggleWorldEvent(c *catalog.Catalog, state Flags, worldID string, index int) (Flags, bool) {
	g, _ := c.WorldEventGroup(worldID)
	return toggleInGroup(state, EventKey(worldID, index), EventKeys(worldID, g.Count))
}

// ToggleGuildQuest flips one guild quest. completedNow is true when every
// catalog quest is done after the flip and was not before.
func ToggleGuildQuest(c *catalog.Catalog, state Flags, questID string) (Flags, bool) {
	return toggleInGroup(state, questID, c.GuildQuestIDs())
}

// SetAllDungeons sets both clears of every listed dungeon to value.
func SetAllDungeons(state DungeonState, ids []string, value bool) DungeonState {
	next := state.Clone()
	for _, id := range ids {
		next[id] = DungeonRecord{Normal: value, Challenged: value}
	}
	return next
}

// SetAllFlags sets every listed key to value.
func SetAllFlags(state Flags, keys []string, value bool) Flags {
	next := state.Clone()
	for _, k := range keys {
		next[k] = value
	}
	return next
}

func toggleInGroup(state Flags, key string, group []string) (Flags, bool) {
	// An empty group is vacuously complete both before and after.
	before := state.All(group)
	next := state.Clone()
	next[key] = !state[key]
	return next, !before && next.All(group)
}
