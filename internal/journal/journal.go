// Package journal appends a JSONL record of every progress change, so a
// session's toggles, bulk edits, resets and celebrations can be reviewed
// later with the history command.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry kinds.
const (
	KindToggle      = "toggle"
	KindSetWorld    = "set_world"
	KindCelebration = "celebration"
	KindReset       = "reset"
)

// Entry is a single journal record.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	Category  string    `json:"category,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Value     *bool     `json:"value,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// Journal appends entries to a JSONL file. It is safe for concurrent use.
// A nil *Journal is a valid no-op journal.
type Journal struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
	now  func() time.Time
}

// Open opens the journal at path for appending, creating the file and its
// directory when missing.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	return &Journal{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Append writes one entry, stamping it with the current time when its
// timestamp is zero. Calling Append on a nil Journal is a no-op.
func (j *Journal) Append(e Entry) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now().UTC()
	}
	if err := j.enc.Encode(e); err != nil {
		return fmt.Errorf("journal: encode entry: %w", err)
	}
	return nil
}

// Close closes the underlying file. Calling Close on a nil Journal is a
// no-op.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.file.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}

// Read returns the last limit entries of the journal at path, oldest
// first. A limit of zero or less returns every entry. A missing file is an
// empty journal. Lines that do not decode are skipped.
func Read(path string, limit int) ([]Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}
	return entries, nil
}
