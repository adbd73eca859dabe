// Package theme defines color themes for the ccview session browser.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name        string
	Border      lipgloss.Color // subtle borders
	BorderFocus lipgloss.Color // focused pane border
	TextDim     lipgloss.Color // hints, disabled
	TextMuted   lipgloss.Color // labels, metadata
	TextPrimary lipgloss.Color // primary content text
	Accent      lipgloss.Color // selection, active states
	Green       lipgloss.Color // costs
	Blue        lipgloss.Color // tokens
	Red         lipgloss.Color // errors
	Yellow      lipgloss.Color // search matches
}

// Active is the currently selected theme.
var Active = Dark

// Dark is the default theme.
var Dark = Theme{
	Name:        "dark",
	Border:      lipgloss.Color("#403E3C"),
	BorderFocus: lipgloss.Color("#3AA99F"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Green:       lipgloss.Color("#879A39"),
	Blue:        lipgloss.Color("#4385BE"),
	Red:         lipgloss.Color("#D14D41"),
	Yellow:      lipgloss.Color("#D0A215"),
}

// Terminal uses ANSI 16 colors only, for maximum compatibility.
var Terminal = Theme{
	Name:        "terminal",
	Border:      lipgloss.Color("8"),
	BorderFocus: lipgloss.Color("6"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Green:       lipgloss.Color("2"),
	Blue:        lipgloss.Color("4"),
	Red:         lipgloss.Color("1"),
	Yellow:      lipgloss.Color("3"),
}

// All available themes.
var All = []Theme{Dark, Terminal}

// ByName returns a theme by its name, defaulting to Dark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Dark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
