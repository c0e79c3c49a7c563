package journal

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func boolPtr(b bool) *bool { return &b }

func TestOpen_CreatesFileAndDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "journal.jsonl")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	defer j.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to exist at %q: %v", path, err)
	}
}

func TestOpen_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(filepath.Join(blocker, "journal.jsonl"))
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "journal: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestAppendAndRead(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	entries := []Entry{
		{Kind: KindToggle, Category: "towers", Subject: "prison", Value: boolPtr(true)},
		{Kind: KindCelebration, Category: "towers", Subject: "All towers", Message: "Built different."},
		{Kind: KindReset},
	}
	for _, e := range entries {
		if err := j.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := Read(path, 0)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i, e := range got {
		if e.Kind != entries[i].Kind {
			t.Errorf("entry %d: kind=%q, want %q", i, e.Kind, entries[i].Kind)
		}
		if !e.Timestamp.Equal(fixed) {
			t.Errorf("entry %d: ts=%v, want %v", i, e.Timestamp, fixed)
		}
	}
	if got[0].Value == nil || !*got[0].Value {
		t.Errorf("toggle value lost: %+v", got[0])
	}
	if got[2].Value != nil {
		t.Errorf("reset carries a value: %+v", got[2])
	}
}

func TestRead_LimitKeepsNewest(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	j, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"a", "b", "c", "d"} {
		if err := j.Append(Entry{Kind: KindToggle, Subject: s}); err != nil {
			t.Fatal(err)
		}
	}
	j.Close()

	got, err := Read(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Subject != "c" || got[1].Subject != "d" {
		t.Errorf("Read(limit 2) = %+v, want c then d", got)
	}
}

func TestRead_SkipsGarbageAndMissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	got, err := Read(filepath.Join(dir, "absent.jsonl"), 0)
	if err != nil || len(got) != 0 {
		t.Errorf("Read(missing) = %v, %v; want empty, nil", got, err)
	}

	path := filepath.Join(dir, "mixed.jsonl")
	data := `{"kind":"toggle","subject":"x"}` + "\nnot json\n" + `{"kind":"reset"}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = Read(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 decodable entries, got %d", len(got))
	}
}

func TestAppend_ConcurrentSafety(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			if err := j.Append(Entry{Kind: KindToggle, Subject: "concurrent"}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}()
	}
	wg.Wait()
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := Read(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != n {
		t.Fatalf("expected %d entries, got %d", n, len(got))
	}
}

func TestNilJournal_NoOp(t *testing.T) {
	t.Parallel()
	var j *Journal

	if err := j.Append(Entry{Kind: KindReset}); err != nil {
		t.Errorf("nil Append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}
