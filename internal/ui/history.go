package ui

import (
	"fmt"

	"github.com/papapumpkin/dungeontracker/internal/journal"
)

const historyTimeLayout = "2006-01-02 15:04"

// History lists journal entries, oldest first.
func (p *Printer) History(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, p.theme.muted.Render("no recorded activity"))
		return
	}
	for _, e := range entries {
		when := p.theme.muted.Render(e.Timestamp.Local().Format(historyTimeLayout))
		fmt.Fprintf(p.out, "%s  %s\n", when, p.describe(e))
	}
}

func (p *Printer) describe(e journal.Entry) string {
	switch e.Kind {
	case journal.KindToggle:
		return fmt.Sprintf("%s %s %s", e.Category, e.Subject, p.entryValue(e))
	case journal.KindSetWorld:
		return fmt.Sprintf("%s of world %s set %s", e.Category, e.Subject, p.entryValue(e))
	case journal.KindCelebration:
		return p.theme.accent.Render(iconParty+" "+e.Subject+" complete!") + " " + e.Message
	case journal.KindReset:
		return p.theme.danger.Render("all progress cleared")
	default:
		return e.Kind
	}
}

func (p *Printer) entryValue(e journal.Entry) string {
	if e.Value != nil && *e.Value {
		return p.theme.done.Render(iconDone + " done")
	}
	return p.theme.todo.Render(iconTodo + " not done")
}
