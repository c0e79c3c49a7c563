// Package celebrate decides when a fresh completion earns a celebration and
// builds the event the presentation layer shows.
package celebrate

import (
	"math/rand/v2"
	"time"
)

// DisplayFor is how long a presentation layer should keep a celebration up.
const DisplayFor = 4 * time.Second

// Kind names what was completed.
type Kind string

// Completion kinds.
const (
	KindDungeon     Kind = "dungeon"
	KindTowers      Kind = "towers"
	KindWorldEvents Kind = "world_events"
	KindGuildQuests Kind = "guild_quests"
)

// Mascot is one of the two alternate celebration mascots.
type Mascot string

// Mascot variants.
const (
	MascotCheer Mascot = "cheer"
	MascotFlex  Mascot = "flex"
)

// Event is a single celebration signal.
type Event struct {
	Kind       Kind          `json:"kind"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	Mascot     Mascot        `json:"mascot"`
	DisplayFor time.Duration `json:"display_for"`
}

// messages is the flavour pool a celebration draws from.
var messages = [...]string{
	"Absolutely cracked!",
	"Another one off the list!",
	"The grind pays off.",
	"Clean clear. No notes.",
	"Certified grinder moment.",
	"That's how it's done!",
	"Touch grass? Not yet.",
	"Built different.",
}

var mascots = [...]Mascot{MascotCheer, MascotFlex}

// Messages returns the flavour pool.
func Messages() []string {
	return messages[:]
}

// Notifier turns completion transitions into celebration events. It is a
// pure decision apart from the random draw, which comes from an injected
// source so tests are deterministic.
type Notifier struct {
	enabled bool
	rng     *rand.Rand
}

// NewNotifier returns a notifier drawing from rng. A nil rng uses a
// randomly seeded PCG source.
func NewNotifier(rng *rand.Rand, enabled bool) *Notifier {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Notifier{enabled: enabled, rng: rng}
}

// Enabled reports whether celebrations are switched on.
func (n *Notifier) Enabled() bool { return n.enabled }

// SetEnabled switches celebrations on or off.
func (n *Notifier) SetEnabled(v bool) { n.enabled = v }

// NotifyIfCompleted returns an event when completedNow is true and
// celebrations are enabled.
func (n *Notifier) NotifyIfCompleted(completedNow bool, kind Kind, subject string) (Event, bool) {
	if !completedNow || !n.enabled {
		return Event{}, false
	}
	return Event{
		Kind:       kind,
		Subject:    subject,
		Message:    messages[n.rng.IntN(len(messages))],
		Mascot:     mascots[n.rng.IntN(len(mascots))],
		DisplayFor: DisplayFor,
	}, true
}
