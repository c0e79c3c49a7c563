package progress

import (
	"encoding/json"
	"fmt"
)

// DecodeDungeons parses a stored dungeon slot. It first tries the current
// {normal, challenged} shape; if that fails it falls back to a per-entry
// parse where a bare boolean b is the legacy shape and becomes
// {Normal: b, Challenged: false}. legacy counts the migrated entries.
func DecodeDungeons(data []byte) (state DungeonState, legacy int, err error) {
	var strict DungeonState
	if err := json.Unmarshal(data, &strict); err == nil {
		if strict == nil {
			strict = DungeonState{}
		}
		return strict, 0, nil
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(data, &loose); err != nil {
		return nil, 0, fmt.Errorf("progress: decode dungeons: %w", err)
	}

	state = make(DungeonState, len(loose))
	for id, raw := range loose {
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			state[id] = DungeonRecord{Normal: b}
			legacy++
			continue
		}
		var rec DungeonRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, 0, fmt.Errorf("progress: decode dungeon %q: %w", id, err)
		}
		state[id] = rec
	}
	return state, legacy, nil
}

// EncodeDungeons serialises a dungeon slot in the current shape.
func EncodeDungeons(state DungeonState) ([]byte, error) {
	if state == nil {
		state = DungeonState{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("progress: encode dungeons: %w", err)
	}
	return data, nil
}

// DecodeFlags parses a stored tower, world-event or guild-quest slot.
func DecodeFlags(data []byte) (Flags, error) {
	var f Flags
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("progress: decode flags: %w", err)
	}
	if f == nil {
		f = Flags{}
	}
	return f, nil
}

// EncodeFlags serialises a flag slot.
func EncodeFlags(f Flags) ([]byte, error) {
	if f == nil {
		f = Flags{}
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("progress: encode flags: %w", err)
	}
	return data, nil
}
