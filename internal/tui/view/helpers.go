// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceBox renders content in a lipgloss.Place box with background fill.
func PlaceBox(w, h int, hAlign, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(
		w,
		h,
		hAlign,
		vAlign,
		content,
		lipgloss.WithWhitespaceBackground(bg),
	)
	return PadLinesWithBackground(placed, w, h, bg)
}

// PadLinesWithBackground pads content to width/height with a background color.
func PadLinesWithBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	paddingStyle := lipgloss.NewStyle().Background(bg)
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for i, line := range lines {
		if lineWidth := lipgloss.Width(line); lineWidth < width {
			lines[i] = line + paddingStyle.Render(strings.Repeat(" ", width-lineWidth))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderOverlay centers box over base, which is padded or cut to width x height.
func RenderOverlay(base, box string, width, height int, boxBg lipgloss.Color) string {
	boxLines := strings.Split(box, "\n")
	boxW := 0
	for _, line := range boxLines {
		if w := lipgloss.Width(line); w > boxW {
			boxW = w
		}
	}
	if boxW == 0 || width <= 0 || height <= 0 {
		return base
	}
	boxW = min(boxW, width)
	if len(boxLines) > height {
		boxLines = boxLines[:height]
	}

	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxW)/2, 0)

	padStyle := lipgloss.NewStyle().Background(boxBg)
	for i, line := range boxLines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > boxW {
			line = ansi.Cut(line, 0, boxW)
		} else if lineWidth < boxW {
			line += padStyle.Render(strings.Repeat(" ", boxW-lineWidth))
		}
		boxLines[i] = ApplyBackgroundResets(line, boxBg) + ansi.ResetStyle
	}

	baseLines := strings.Split(PadLinesWithBackground(base, width, height, lipgloss.Color("")), "\n")
	for i, boxLine := range boxLines {
		row := top + i
		baseLine := baseLines[row]
		baseLines[row] = ansi.Cut(baseLine, 0, left) + boxLine + ansi.Cut(baseLine, left+boxW, width)
	}
	return strings.Join(baseLines, "\n")
}

// ApplyBackgroundResets reapplies bg after every ANSI reset so nested styles
// don't punch holes in a filled box.
func ApplyBackgroundResets(line string, bg lipgloss.Color) string {
	bgSeq := BackgroundSeq(bg)
	if bgSeq == "" {
		return line
	}
	line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bgSeq)
	line = strings.ReplaceAll(line, "\x1b[49m", "\x1b[49m"+bgSeq)
	return line
}

// BackgroundSeq returns the background escape sequence for bg.
func BackgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
