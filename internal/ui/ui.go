// Package ui renders tracker output for a terminal. Data views go to the
// output writer; diagnostics and celebrations go to the message writer,
// which is stderr in the CLI.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/celebrate"
)

// Printer writes styled output.
type Printer struct {
	out   io.Writer
	msg   io.Writer
	in    io.Reader
	theme theme
	num   *message.Printer
}

// Option configures a Printer.
type Option func(*printerOptions)

type printerOptions struct {
	dark   bool
	locale string
	in     io.Reader
}

// WithDarkMode selects the dark palette.
func WithDarkMode(dark bool) Option {
	return func(o *printerOptions) { o.dark = dark }
}

// WithLocale sets the BCP 47 tag numbers are formatted for. An unparsable
// tag falls back to English.
func WithLocale(tag string) Option {
	return func(o *printerOptions) { o.locale = tag }
}

// WithInput sets where confirmation answers are read from.
func WithInput(r io.Reader) Option {
	return func(o *printerOptions) { o.in = r }
}

// New returns a printer writing views to out and messages to msg.
func New(out, msg io.Writer, opts ...Option) *Printer {
	o := printerOptions{locale: "en"}
	for _, opt := range opts {
		opt(&o)
	}
	tag, err := language.Parse(o.locale)
	if err != nil {
		tag = language.English
	}
	return &Printer{
		out:   out,
		msg:   msg,
		in:    o.in,
		theme: newTheme(lipgloss.NewRenderer(out), o.dark),
		num:   message.NewPrinter(tag),
	}
}

// Error prints an error message.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.msg, "%s %s\n", p.theme.danger.Render(iconFailed+" error:"), msg)
}

// Warn prints a warning.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.msg, "%s %s\n", p.theme.accent.Render(iconWarn), msg)
}

// Info prints a de-emphasized note.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.msg, p.theme.muted.Render(msg))
}

// Toggled reports the new state of a toggled item.
func (p *Printer) Toggled(label string, value bool) {
	state := p.theme.todo.Render(iconTodo + " not done")
	if value {
		state = p.theme.done.Render(iconDone + " done")
	}
	fmt.Fprintf(p.out, "%s: %s\n", label, state)
}

// Celebrate draws a celebration banner.
func (p *Printer) Celebrate(ev celebrate.Event) {
	art := artMascots[string(ev.Mascot)]
	body := strings.Join([]string{
		p.theme.accent.Render(iconParty + " " + ev.Subject + " complete! " + iconParty),
		p.theme.text.Render(ev.Message),
		art,
	}, "\n")
	fmt.Fprintln(p.msg, p.theme.banner.Render(body))
}

// Prefs shows the stored preferences.
func (p *Printer) Prefs(dark, celebrations bool) {
	fmt.Fprintf(p.out, "dark-mode:    %s\n", onOff(dark))
	fmt.Fprintf(p.out, "celebrations: %s\n", onOff(celebrations))
}

// ValidateResult prints the validation outcome for a catalog document.
func (p *Printer) ValidateResult(name string, spec catalog.Spec, errs []catalog.ValidationError) {
	if len(errs) == 0 {
		dungeons := 0
		for _, w := range spec.Worlds {
			dungeons += len(w.Dungeons)
		}
		fmt.Fprintf(p.out, "%s %d world(s), %d dungeon(s), %d tower(s), %d event group(s), %d guild quest(s), no errors\n",
			p.theme.done.Render(fmt.Sprintf("%s catalog %q", iconDone, name)),
			len(spec.Worlds), dungeons, len(spec.Towers), len(spec.WorldEvents), len(spec.GuildQuests))
		return
	}
	fmt.Fprintf(p.out, "%s %d error(s):\n", p.theme.danger.Render(fmt.Sprintf("%s catalog %q", iconFailed, name)), len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.out, "  %s %s\n", p.theme.danger.Render("•"), e.Error())
	}
}

// Confirm asks a yes/no question and reports whether the answer was yes.
// With no input configured, or at end of input, the answer is no.
func (p *Printer) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.msg, "%s %s ", p.theme.accent.Render(question), p.theme.muted.Render("[y/N]"))
	if p.in == nil {
		fmt.Fprintln(p.msg)
		return false, nil
	}
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("ui: read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
