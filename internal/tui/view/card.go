package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/moments/internal/word"
)

// CardStyles groups the styles used by the word card.
type CardStyles struct {
	Frame     lipgloss.Style
	Label     lipgloss.Style
	Word      lipgloss.Style
	Phonetics lipgloss.Style
	Text      lipgloss.Style
	Bullet    lipgloss.Style
	Remark    lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
}

// CardModel contains content and styles for rendering the word card.
type CardModel struct {
	Width     int
	Record    *word.Record
	Loading   bool
	Spinner   string
	UpdatedAt time.Time
	LastError string // non-empty when the latest fetch failed
	Styles    CardStyles
}

// RenderCard renders the current word, or a loading placeholder when there is none yet.
func RenderCard(m CardModel) string {
	s := m.Styles
	frame := s.Frame.Width(max(m.Width-s.Frame.GetHorizontalBorderSize(), 0))
	innerW := max(m.Width-s.Frame.GetHorizontalFrameSize(), 1)

	if m.Record == nil {
		return frame.Render(s.Muted.Render(m.Spinner + " Fetching a word..."))
	}
	rec := m.Record

	var lines []string
	lines = append(lines, spread(innerW, s.Label.Render(strings.ToUpper(rec.Language)), s.Muted.Render(FormatUpdatedAt(m.UpdatedAt))))
	lines = append(lines, s.Word.Render(rec.Word))
	if sub := subtitle(*rec); sub != "" {
		lines = append(lines, s.Phonetics.Width(innerW).Render(sub))
	}

	lines = append(lines, "", s.Label.Render("Meaning"))
	for _, meaning := range rec.Meanings {
		lines = append(lines, bulleted(innerW, s.Bullet.Render("│ "), s.Text, meaning))
	}

	if len(rec.Remarks) > 0 {
		lines = append(lines, "", s.Label.Render("Remarks"))
		for _, remark := range rec.Remarks {
			lines = append(lines, s.Remark.Width(innerW).Render(remark))
		}
	}

	switch {
	case m.Loading:
		lines = append(lines, "", s.Muted.Render(m.Spinner+" Fetching a new word..."))
	case m.LastError != "":
		lines = append(lines, "", s.Warning.Width(innerW).Render("Last fetch failed: "+m.LastError))
	}

	return frame.Render(strings.Join(lines, "\n"))
}

// subtitle is "/phonetics/ · translation", or just the translation without phonetics.
func subtitle(rec word.Record) string {
	if rec.HasPhonetics() {
		if rec.EnglishTranslation == "" {
			return "/" + rec.Phonetics + "/"
		}
		return "/" + rec.Phonetics + "/ · " + rec.EnglishTranslation
	}
	return rec.EnglishTranslation
}

func bulleted(width int, bullet string, style lipgloss.Style, text string) string {
	textW := max(width-lipgloss.Width(bullet), 1)
	body := style.Width(textW).Render(text)
	rows := strings.Split(body, "\n")
	for i := range rows {
		rows[i] = bullet + rows[i]
	}
	return strings.Join(rows, "\n")
}

// spread places left and right on one line of the given width.
func spread(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}
