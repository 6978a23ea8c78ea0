package presentation

import (
	"fmt"
	"time"
)

// FormatRelativeTimeFrom returns a short relative timestamp such as "now",
// "5m ago", "3h ago", "2d ago", "1w ago", "3mo ago" or "1y ago".
// Future timestamps render as "now".
func FormatRelativeTimeFrom(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 4*7*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}

// FormatClock renders the time of day of an entry notification.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}
