package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headword: bold magenta so it stands out
	colorWord = color.New(color.FgMagenta, color.Bold)

	// Pronunciation and translation
	colorPhonetics = color.New(color.FgCyan)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Selected/default markers
	colorSelected = color.New(color.FgGreen, color.Bold)

	// Advisory errors on stderr
	colorError = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatWord(s string) string {
	return colorWord.Sprint(s)
}

func formatPhonetics(s string) string {
	return colorPhonetics.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSelected(s string) string {
	return colorSelected.Sprint(s)
}

func formatError(s string) string {
	return colorError.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
