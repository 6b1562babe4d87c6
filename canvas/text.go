package canvas

import "github.com/mattn/go-runewidth"

// MeasureText returns the display width of a string in terminal cells.
func MeasureText(text string) int {
	return runewidth.StringWidth(text)
}

// FitText truncates text to fit within maxWidth, adding ellipsis if needed.
func FitText(text string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if MeasureText(text) <= maxWidth {
		return text
	}
	if maxWidth <= MeasureText(ellipsis) {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}
