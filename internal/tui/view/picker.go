package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PickerRow is one entry of the language picker.
type PickerRow struct {
	Label  string
	Detail string // right-aligned, e.g. "4 languages"
	Marked bool   // the selected language
}

// PickerStyles groups the styles used by the picker box.
type PickerStyles struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Row    lipgloss.Style
	Cursor lipgloss.Style
	Detail lipgloss.Style
	Mark   lipgloss.Style
	Help   lipgloss.Style
}

// PickerModel contains content and styles for rendering the picker.
type PickerModel struct {
	Title   string
	Rows    []PickerRow
	Cursor  int
	Width   int
	MaxRows int
	Help    string
	Styles  PickerStyles
}

const markGlyph = "✓"

// RenderPicker renders the picker box with the cursor row highlighted.
func RenderPicker(m PickerModel) string {
	s := m.Styles
	innerW := max(m.Width-s.Frame.GetHorizontalFrameSize(), 8)

	var b strings.Builder
	b.WriteString(s.Title.Render(m.Title))
	b.WriteString("\n")

	start, end := VisibleRange(m.Cursor, len(m.Rows), m.MaxRows)
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(renderRow(m.Rows[i], i == m.Cursor, innerW, s))
	}

	if m.Help != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Help.Render(m.Help))
	}

	return s.Frame.Width(innerW + s.Frame.GetHorizontalPadding()).Render(b.String())
}

func renderRow(row PickerRow, focused bool, width int, s PickerStyles) string {
	style := s.Row
	if focused {
		style = s.Cursor
	}

	right := row.Detail
	if row.Marked {
		right = markGlyph
	}

	label := " " + row.Label
	gap := width - lipgloss.Width(label) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}

	rendered := style.Render(label + strings.Repeat(" ", gap))
	switch {
	case row.Marked:
		rendered += s.Mark.Inherit(style).Render(right + " ")
	case right != "":
		rendered += s.Detail.Inherit(style).Render(right + " ")
	default:
		rendered += style.Render(" ")
	}
	return rendered
}

// VisibleRange returns the [start, end) window of total rows that keeps cursor in view.
// A non-positive limit shows every row.
func VisibleRange(cursor, total, limit int) (int, int) {
	if limit <= 0 || total <= limit {
		return 0, total
	}
	start := cursor - limit/2
	start = max(start, 0)
	start = min(start, total-limit)
	return start, start + limit
}
