package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	Width       int
	StatusText  string
	StatusStyle lipgloss.Style
	HelpText    string
	HelpStyle   lipgloss.Style
}

// RenderFooter renders the status line above the help line.
func RenderFooter(m FooterModel) string {
	return footerLine(m.Width, m.StatusStyle, m.StatusText) + "\n" + footerLine(m.Width, m.HelpStyle, m.HelpText)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := width - frameW
	if contentWidth < 0 {
		contentWidth = 0
	}
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "…")
	}
	return style.Render(content)
}
