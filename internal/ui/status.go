package ui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/dungeontracker/internal/catalog"
	"github.com/papapumpkin/dungeontracker/internal/score"
)

const barWidth = 20

// Status renders the full progress view.
func (p *Printer) Status(sum score.Summary) {
	w := p.out
	t := p.theme

	fmt.Fprintln(w, t.title.Render("Dungeon Tracker"))
	fmt.Fprintf(w, "points: %s / %s  %s\n",
		t.accent.Render(p.num.Sprintf("%d", sum.Total)), p.num.Sprintf("%d", sum.Max), p.bar(score.Progress{Completed: sum.Total, Total: sum.Max}))
	tier := "tier:   " + t.accent.Render(sum.Tier.String())
	if sum.NextTier != nil {
		tier += t.muted.Render(p.num.Sprintf("  (%d to %s)", sum.PointsToNext, sum.NextTier.String()))
	}
	fmt.Fprintln(w, tier)
	fmt.Fprintf(w, "        dungeons %s  towers %s  events %s  quests %s\n",
		p.num.Sprintf("%d", sum.Points.Dungeons), p.num.Sprintf("%d", sum.Points.Towers),
		p.num.Sprintf("%d", sum.Points.WorldEvents), p.num.Sprintf("%d", sum.Points.GuildQuests))

	if len(sum.Worlds) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.header.Render("Dungeons"))
	}
	for _, world := range sum.Worlds {
		fmt.Fprintf(w, "%s  %s %s\n", t.title.Render(world.Name), p.fraction(world.Progress), p.bar(world.Progress))
		for _, d := range world.Dungeons {
			fmt.Fprintf(w, "  %-6s %-28s normal %s  challenged %s\n", d.ID, d.Name, p.check(d.Normal), p.check(d.Challenged))
		}
	}

	if len(sum.Towers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s  %s %s\n", t.header.Render("Towers"), p.fraction(sum.TowersProgress), p.bar(sum.TowersProgress))
	}
	for _, tw := range sum.Towers {
		pts := p.num.Sprintf("%3d pts", tw.Points)
		if !tw.Scored {
			pts = t.muted.Render(iconUnrated + " unscored")
		}
		fmt.Fprintf(w, "  %s %-12s %-22s %s\n", p.check(tw.Done), tw.ID, tw.Name, pts)
	}

	if len(sum.WorldEvents) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.header.Render("World events"))
	}
	for _, g := range sum.WorldEvents {
		marks := make([]string, len(g.Events))
		for i, ev := range g.Events {
			marks[i] = p.check(ev.Done)
		}
		fmt.Fprintf(w, "  %-28s %s %s  %s\n", g.WorldName, p.fraction(g.Progress), strings.Join(marks, " "),
			t.muted.Render(p.num.Sprintf("%d pts each", g.Points)))
	}

	if len(sum.GuildQuests) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s  %s %s\n", t.header.Render("Guild quests"), p.fraction(sum.QuestsProgress), p.bar(sum.QuestsProgress))
	}
	for _, q := range sum.GuildQuests {
		fmt.Fprintf(w, "  %s %-12s %-22s %s\n", p.check(q.Done), q.ID, q.Name, p.num.Sprintf("%3d pts", q.Points))
	}
}

// Catalog lists every completable item and its point value.
func (p *Printer) Catalog(c *catalog.Catalog) {
	w := p.out
	t := p.theme

	fmt.Fprintln(w, t.header.Render("Dungeons"))
	for _, world := range c.Worlds() {
		fmt.Fprintf(w, "%s %s\n", t.title.Render(world.ID), world.Name)
		for _, d := range world.Dungeons {
			fmt.Fprintf(w, "  %-6s %-28s %s\n", d.ID, d.Name,
				t.muted.Render(p.num.Sprintf("normal %d / challenged %d", d.PointsNormal, d.PointsChallenged)))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.header.Render("Towers"))
	for _, tw := range c.Towers() {
		pts := p.num.Sprintf("%d pts", tw.Points)
		if tw.Infinite() {
			pts = iconUnrated + " unscored"
		}
		fmt.Fprintf(w, "  %-12s %-22s %s\n", tw.ID, tw.Name, t.muted.Render(pts))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.header.Render("World events"))
	for _, g := range c.WorldEvents() {
		name := "world " + g.WorldID
		if world, ok := c.World(g.WorldID); ok {
			name = world.Name
		}
		fmt.Fprintf(w, "  %-6s %-28s %s\n", g.WorldID, name, t.muted.Render(p.num.Sprintf("%d x %d pts", g.Count, g.Points)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.header.Render("Guild quests"))
	for _, q := range c.GuildQuests() {
		fmt.Fprintf(w, "  %-12s %-22s %s\n", q.ID, q.Name, t.muted.Render(p.num.Sprintf("%d pts", q.Points)))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "max points: %s\n", t.accent.Render(p.num.Sprintf("%d", score.MaxPoints(c))))
}

func (p *Printer) check(done bool) string {
	if done {
		return p.theme.done.Render(iconDone)
	}
	return p.theme.todo.Render(iconTodo)
}

func (p *Printer) fraction(pr score.Progress) string {
	s := p.num.Sprintf("%d/%d", pr.Completed, pr.Total)
	if pr.Done() {
		return p.theme.done.Render(s)
	}
	return s
}

// bar draws a fixed-width progress bar followed by a percentage.
func (p *Printer) bar(pr score.Progress) string {
	frac := pr.Fraction()
	filled := int(frac*barWidth + 0.5)
	filled = max(0, min(filled, barWidth))
	return p.theme.barFill.Render(strings.Repeat("█", filled)) +
		p.theme.barRest.Render(strings.Repeat("░", barWidth-filled)) +
		" " + p.num.Sprintf("%.0f%%", frac*100)
}
