// Package tui provides the terminal user interface for moments.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/moments/internal/tui/theme"
	"github.com/javiermolinar/moments/internal/tui/view"
)

const (
	cardMaxWidth  = 72
	pickerWidth   = 40
	pickerMaxRows = 10
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg     lipgloss.Color
	colorCard   lipgloss.Color
	colorAccent lipgloss.Color

	// Title bar
	TitleStyle    lipgloss.Style
	LanguageStyle lipgloss.Style
	SpinnerStyle  lipgloss.Style

	Card   view.CardStyles
	Picker view.PickerStyles

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)
	onCard := lipgloss.NewStyle().Background(p.BgCard)

	return &Styles{
		colorBg:     p.Bg,
		colorCard:   p.BgCard,
		colorAccent: p.Accent,

		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		LanguageStyle: base.Foreground(p.Fg).Padding(0, 1),
		SpinnerStyle:  base.Foreground(p.Accent),

		Card: view.CardStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Accent).
				BorderBackground(p.Bg).
				Background(p.BgCard).
				Padding(1, 2),
			Label:     onCard.Foreground(p.FgMuted).Bold(true),
			Word:      onCard.Foreground(p.Word).Bold(true),
			Phonetics: onCard.Foreground(p.Phonetics),
			Text:      onCard.Foreground(p.Fg),
			Bullet:    onCard.Foreground(p.Accent),
			Remark:    onCard.Foreground(p.Fg).Italic(true),
			Muted:     onCard.Foreground(p.FgMuted),
			Warning:   onCard.Foreground(p.Warning),
		},

		Picker: view.PickerStyles{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(p.Accent).
				BorderBackground(p.BgCard).
				Background(p.BgCard).
				Padding(0, 1),
			Title:  onCard.Foreground(p.FgMuted).Bold(true),
			Row:    onCard.Foreground(p.Fg),
			Cursor: lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.TextOnSelection).Bold(true),
			Detail: lipgloss.NewStyle().Foreground(p.FgMuted),
			Mark:   lipgloss.NewStyle().Foreground(p.Success).Bold(true),
			Help:   onCard.Foreground(p.FgMuted),
		},

		StatusStyle:      base.Foreground(p.Fg).Padding(0, 1),
		StatusErrorStyle: lipgloss.NewStyle().Foreground(p.TextOnError).Background(p.Error).Bold(true).Padding(0, 1),
		HelpStyle:        base.Foreground(p.FgMuted).Padding(0, 1),
	}
}
