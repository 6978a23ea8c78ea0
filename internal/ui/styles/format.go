package styles

import "github.com/charmbracelet/x/ansi"

// TruncateString truncates s to fit within maxWidth cells, ending in "..."
// when cut. ANSI sequences in s are preserved.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate("...", maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}
