// Package toaster provides a timed notification toast drawn over the dashboard.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/platekeeper/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows a green border. Used for vehicle entries.
	StyleSuccess Style = iota
	// StyleError shows a red border.
	StyleError
	// StyleInfo shows a blue border.
	StyleInfo
	// StyleWarn shows a yellow border.
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	// gen identifies the toast currently shown so that the dismissal
	// scheduled for an earlier toast does not hide a newer one.
	gen int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// DismissMsg asks the toaster to hide the toast with the given generation.
type DismissMsg struct {
	Gen int
}

// Show displays message and returns a command that hides it after ttl.
// A non-positive ttl keeps the toast until Hide is called.
func (m Model) Show(message string, style Style, ttl time.Duration) (Model, tea.Cmd) {
	m.gen++
	m.message = message
	m.style = style
	m.visible = true

	if ttl <= 0 {
		return m, nil
	}
	gen := m.gen
	return m, tea.Tick(ttl, func(time.Time) tea.Msg {
		return DismissMsg{Gen: gen}
	})
}

// Update hides the toast when its scheduled dismissal arrives.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Gen == m.gen {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.ToastBorderErrorColor)
	case StyleInfo:
		style = style.BorderForeground(styles.ToastBorderInfoColor)
	case StyleWarn:
		style = style.BorderForeground(styles.ToastBorderWarnColor)
	default:
		style = style.BorderForeground(styles.ToastBorderSuccessColor)
	}

	return style.Render(m.message)
}

// Overlay draws the toast centered near the bottom of bg, one line above the
// last row. bg keeps its ANSI styling outside the toast.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return place(m.View(), bg, width, height, 1)
}

func place(fg, bg string, width, height, padBottom int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max(height-len(fgLines)-padBottom, 0)

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		under := bgLines[row]

		left := ansi.Truncate(under, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		var right string
		if end := x + ansi.StringWidth(line); end < ansi.StringWidth(under) {
			right = ansi.TruncateLeft(under, end, "")
		}
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
