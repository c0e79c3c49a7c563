package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/papapumpkin/dungeontracker/internal/score"
)

// resetFlags restores every flag in the command tree to its default so
// runs do not leak flag values into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupEnv points storage at a fresh temp directory and isolates the run
// from any config file in the user's home.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("DUNGEONTRACKER_STORAGE_DRIVER", "sqlite")
	t.Setenv("DUNGEONTRACKER_STORAGE_PATH", filepath.Join(dir, "progress.db"))
	return dir
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func statusJSON(t *testing.T) score.Summary {
	t.Helper()
	out, _, err := execute(t, "", "status", "--json")
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	var sum score.Summary
	if err := json.Unmarshal([]byte(out), &sum); err != nil {
		t.Fatalf("status output is not JSON: %v\n%s", err, out)
	}
	return sum
}

func TestWriteStatusJSON_WritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sum := score.Summary{Total: 212, Max: 535, Tier: score.Reliable}
	if err := writeStatusJSON(&buf, sum); err != nil {
		t.Fatalf("writeStatusJSON: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if raw["tier"] != "Reliable" {
		t.Errorf("tier = %v, want Reliable", raw["tier"])
	}
	if raw["total_points"] != float64(212) {
		t.Errorf("total_points = %v, want 212", raw["total_points"])
	}
}

func TestParseEventNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"4", 3, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := parseEventNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEventNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseEventNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseOnOff(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]bool{"on": true, "ON": true, "yes": true, "off": false, "0": false} {
		got, err := parseOnOff(in)
		if err != nil || got != want {
			t.Errorf("parseOnOff(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := parseOnOff("maybe"); err == nil {
		t.Error("parseOnOff(maybe) should fail")
	}
}

func TestToggleAndStatus(t *testing.T) {
	setupEnv(t)

	if _, _, err := execute(t, "", "dungeon", "toggle", "1-1"); err != nil {
		t.Fatalf("dungeon toggle: %v", err)
	}
	if _, _, err := execute(t, "", "dungeon", "toggle", "1-1", "--challenged"); err != nil {
		t.Fatalf("dungeon toggle --challenged: %v", err)
	}
	if _, _, err := execute(t, "", "tower", "toggle", "prison"); err != nil {
		t.Fatalf("tower toggle: %v", err)
	}
	if _, _, err := execute(t, "", "event", "toggle", "1", "1"); err != nil {
		t.Fatalf("event toggle: %v", err)
	}

	sum := statusJSON(t)
	w := sum.Worlds[0]
	if !w.Dungeons[0].Normal || !w.Dungeons[0].Challenged {
		t.Errorf("dungeon 1-1 = %+v, want both clears", w.Dungeons[0])
	}
	if !sum.Towers[0].Done {
		t.Error("prison tower not done")
	}
	if !sum.WorldEvents[0].Events[0].Done {
		t.Error("first event of world 1 not done")
	}
	if sum.Points.Towers != 10 || sum.Points.WorldEvents != 2 {
		t.Errorf("points = %+v", sum.Points)
	}
}

func TestCompletionCelebratesOnStderr(t *testing.T) {
	setupEnv(t)

	for _, id := range []string{"easy", "medium"} {
		if _, errOut, err := execute(t, "", "quest", "toggle", id); err != nil || strings.Contains(errOut, "complete!") {
			t.Fatalf("quest toggle %s: err=%v stderr=%q", id, err, errOut)
		}
	}
	_, errOut, err := execute(t, "", "quest", "toggle", "hard")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "Guild quests complete!") {
		t.Errorf("expected celebration on stderr, got %q", errOut)
	}
}

func TestUnknownIDWarnsButApplies(t *testing.T) {
	setupEnv(t)

	out, errOut, err := execute(t, "", "tower", "toggle", "moon")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, `tower "moon" is not in the catalog`) {
		t.Errorf("missing warning, stderr = %q", errOut)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("toggle not reported, stdout = %q", out)
	}
}

func TestSetWorld(t *testing.T) {
	setupEnv(t)

	if _, _, err := execute(t, "", "dungeon", "set-world", "1", "--done"); err != nil {
		t.Fatalf("set-world --done: %v", err)
	}
	sum := statusJSON(t)
	if !sum.Worlds[0].Progress.Done() {
		t.Errorf("world 1 progress = %+v, want done", sum.Worlds[0].Progress)
	}

	if _, _, err := execute(t, "", "dungeon", "set-world", "99", "--done"); err == nil {
		t.Error("set-world on an unknown world should fail")
	}
	if _, _, err := execute(t, "", "dungeon", "set-world", "1"); err == nil {
		t.Error("set-world without --done or --undone should fail")
	}
	if _, _, err := execute(t, "", "event", "set-world", "2", "--done", "--undone"); err == nil {
		t.Error("set-world with both flags should fail")
	}
}

func TestResetConfirmation(t *testing.T) {
	setupEnv(t)

	if _, _, err := execute(t, "", "tower", "toggle", "prison"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "n\n", "reset"); err != nil {
		t.Fatalf("reset (declined): %v", err)
	}
	if !statusJSON(t).Towers[0].Done {
		t.Fatal("declined reset cleared progress")
	}

	if _, _, err := execute(t, "y\n", "reset"); err != nil {
		t.Fatalf("reset (confirmed): %v", err)
	}
	if statusJSON(t).Towers[0].Done {
		t.Error("confirmed reset kept progress")
	}
}

func TestPrefs(t *testing.T) {
	setupEnv(t)

	if _, _, err := execute(t, "", "prefs", "dark-mode", "on"); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "", "prefs")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dark-mode:    on") || !strings.Contains(out, "celebrations: on") {
		t.Errorf("prefs output = %q", out)
	}
	if _, _, err := execute(t, "", "prefs", "volume", "on"); err == nil {
		t.Error("unknown preference should fail")
	}
}

func TestCatalogValidate(t *testing.T) {
	dir := setupEnv(t)

	out, _, err := execute(t, "", "catalog", "validate")
	if err != nil {
		t.Fatalf("validate built-in: %v", err)
	}
	if !strings.Contains(out, "no errors") {
		t.Errorf("output = %q", out)
	}

	bad := filepath.Join(dir, "bad.toml")
	doc := "[[towers]]\nid = \"prison\"\nname = \"Prison\"\npoints = -1\n"
	if err := os.WriteFile(bad, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err = execute(t, "", "catalog", "validate", bad)
	if err == nil {
		t.Fatal("validate of a bad catalog should fail")
	}
	if !strings.Contains(out, "towers[prison].points") {
		t.Errorf("output = %q", out)
	}
}

func TestMetricsFile(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "tracker.prom")

	if _, _, err := execute(t, "", "tower", "toggle", "prison", "--metrics-file", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), `dungeontracker_toggles_total{category="towers",value="true"} 1`) {
		t.Errorf("metrics file = %s", data)
	}
}

func TestJournalAndHistory(t *testing.T) {
	dir := setupEnv(t)
	path := filepath.Join(dir, "journal.jsonl")
	t.Setenv("DUNGEONTRACKER_JOURNAL_FILE", path)

	for _, args := range [][]string{
		{"tower", "toggle", "prison"},
		{"dungeon", "set-world", "1", "--done"},
		{"reset", "--yes"},
	} {
		if _, _, err := execute(t, "", args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	out, _, err := execute(t, "", "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, want := range []string{"towerTracker prison", "of world 1 set", "all progress cleared"} {
		if !strings.Contains(out, want) {
			t.Errorf("history missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, "", "history", "-n", "1")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "prison") || !strings.Contains(out, "all progress cleared") {
		t.Errorf("history -n 1 = %q", out)
	}
}

func TestHistoryWithoutJournal(t *testing.T) {
	setupEnv(t)
	if _, _, err := execute(t, "", "history"); err == nil {
		t.Error("history without a journal should fail")
	}
}
