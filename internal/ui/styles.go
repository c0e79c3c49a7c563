package ui

import "github.com/charmbracelet/lipgloss"

// Dark palette.
var (
	colorDarkPrimary = lipgloss.Color("#00BFFF") // Cyan, headings
	colorDarkAccent  = lipgloss.Color("#FFD700") // Gold, tier and points
	colorDarkSuccess = lipgloss.Color("#00E676") // Green, done
	colorDarkDanger  = lipgloss.Color("#FF5252") // Red, errors
	colorDarkMuted   = lipgloss.Color("#8C8C8C") // Gray, not done
	colorDarkText    = lipgloss.Color("#EEEEEE")
)

// Light palette.
var (
	colorLightPrimary = lipgloss.Color("#0077B6")
	colorLightAccent  = lipgloss.Color("#B8860B")
	colorLightSuccess = lipgloss.Color("#1B873F")
	colorLightDanger  = lipgloss.Color("#C62828")
	colorLightMuted   = lipgloss.Color("#636363")
	colorLightText    = lipgloss.Color("#1E1E2E")
)

// Status icons.
const (
	iconDone    = "✓"
	iconTodo    = "·"
	iconFailed  = "✗"
	iconWarn    = "⚠"
	iconParty   = "★"
	iconUnrated = "∞"
)

// Mascot art, keyed by celebrate.Mascot value.
var artMascots = map[string]string{
	"cheer": `\(^o^)/`,
	"flex":  `ᕦ(ò_ó)ᕤ`,
}

// theme holds the styles for one palette, bound to one renderer.
type theme struct {
	title   lipgloss.Style
	header  lipgloss.Style
	done    lipgloss.Style
	todo    lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	danger  lipgloss.Style
	text    lipgloss.Style
	banner  lipgloss.Style
	barFill lipgloss.Style
	barRest lipgloss.Style
}

func newTheme(r *lipgloss.Renderer, dark bool) theme {
	primary, accent, success, danger, muted, text := colorLightPrimary, colorLightAccent, colorLightSuccess, colorLightDanger, colorLightMuted, colorLightText
	if dark {
		primary, accent, success, danger, muted, text = colorDarkPrimary, colorDarkAccent, colorDarkSuccess, colorDarkDanger, colorDarkMuted, colorDarkText
	}
	return theme{
		title:   r.NewStyle().Foreground(primary).Bold(true),
		header:  r.NewStyle().Foreground(primary).Bold(true).Underline(true),
		done:    r.NewStyle().Foreground(success),
		todo:    r.NewStyle().Foreground(muted),
		muted:   r.NewStyle().Foreground(muted).Faint(true),
		accent:  r.NewStyle().Foreground(accent).Bold(true),
		danger:  r.NewStyle().Foreground(danger).Bold(true),
		text:    r.NewStyle().Foreground(text),
		banner:  r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 2),
		barFill: r.NewStyle().Foreground(success),
		barRest: r.NewStyle().Foreground(muted),
	}
}
