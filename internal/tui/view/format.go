package view

import (
	"strconv"
	"time"
)

// UpdatedAtLayout renders a fetch time as a 12-hour clock with seconds.
const UpdatedAtLayout = "3:04:05 PM"

// FormatUpdatedAt renders the "Updated at" line of the word card.
func FormatUpdatedAt(t time.Time) string {
	return "Updated at " + t.Format(UpdatedAtLayout)
}

// LanguageCount renders a country's language count, or "" for single-language countries.
func LanguageCount(n int) string {
	if n <= 1 {
		return ""
	}
	return strconv.Itoa(n) + " languages"
}
