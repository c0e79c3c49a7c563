package celebrate

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNotifyIfCompleted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		enabled      bool
		completedNow bool
		want         bool
	}{
		{"fresh completion", true, true, true},
		{"no completion", true, false, false},
		{"disabled", false, true, false},
		{"disabled and nothing", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n := NewNotifier(seeded(), tt.enabled)
			ev, ok := n.NotifyIfCompleted(tt.completedNow, KindDungeon, "1-1")
			if ok != tt.want {
				t.Fatalf("NotifyIfCompleted ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				if ev != (Event{}) {
					t.Errorf("no-op returned a non-zero event: %+v", ev)
				}
				return
			}
			if ev.Kind != KindDungeon || ev.Subject != "1-1" {
				t.Errorf("event = %+v", ev)
			}
			if !slices.Contains(Messages(), ev.Message) {
				t.Errorf("message %q not from the pool", ev.Message)
			}
			if ev.Mascot != MascotCheer && ev.Mascot != MascotFlex {
				t.Errorf("mascot = %q", ev.Mascot)
			}
			if ev.DisplayFor != DisplayFor {
				t.Errorf("DisplayFor = %v, want %v", ev.DisplayFor, DisplayFor)
			}
		})
	}
}

func TestNotifierDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a := NewNotifier(seeded(), true)
	b := NewNotifier(seeded(), true)
	for i := 0; i < 10; i++ {
		ea, _ := a.NotifyIfCompleted(true, KindTowers, "")
		eb, _ := b.NotifyIfCompleted(true, KindTowers, "")
		if ea != eb {
			t.Fatalf("draw %d differs: %+v vs %+v", i, ea, eb)
		}
	}
}

func TestNotifierUsesBothMascots(t *testing.T) {
	t.Parallel()

	n := NewNotifier(seeded(), true)
	seen := map[Mascot]bool{}
	for i := 0; i < 200; i++ {
		ev, _ := n.NotifyIfCompleted(true, KindGuildQuests, "")
		seen[ev.Mascot] = true
	}
	if len(seen) != 2 {
		t.Errorf("saw mascots %v, want both variants", seen)
	}
}

func TestSetEnabled(t *testing.T) {
	t.Parallel()

	n := NewNotifier(nil, true)
	n.SetEnabled(false)
	if n.Enabled() {
		t.Fatal("Enabled() = true after SetEnabled(false)")
	}
	if _, ok := n.NotifyIfCompleted(true, KindDungeon, "1-1"); ok {
		t.Error("disabled notifier emitted an event")
	}
}
