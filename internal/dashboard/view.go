package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/platekeeper/internal/presentation"
	"github.com/zjrosen/platekeeper/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// maxBlacklistRows caps the blacklist section; the rest is summarized.
	maxBlacklistRows = 8
)

// View renders the dashboard.
func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	sections := []string{
		styles.TitleStyle.Render("platekeeper"),
		m.renderCard(),
	}

	if m.err != nil {
		sections = append(sections, styles.ErrorStyle.Render(
			styles.TruncateString("reload failed: "+m.err.Error(), width)))
	}

	if m.recentLimit > 0 {
		sections = append(sections, m.renderEntries())
	}
	if m.showBlacklist {
		sections = append(sections, m.renderBlacklist(width))
	}
	sections = append(sections, m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return m.toast.Overlay(body, width, height)
}

func (m Model) renderCard() string {
	if !m.loaded {
		return styles.CardStyle.Render("Registered plates\n…")
	}
	card := styles.CardStyle.Render(fmt.Sprintf("Registered plates\n%s",
		styles.CardNumberStyle.Render(fmt.Sprint(m.snapshot.PlateCount))))
	blacklisted := styles.MutedStyle.Render(fmt.Sprintf("%d blacklisted", m.snapshot.BlacklistCount))
	return lipgloss.JoinVertical(lipgloss.Left, card, blacklisted)
}

func (m Model) renderEntries() string {
	title := styles.SectionTitleStyle.Render("Recent entries")
	if len(m.entries.Rows()) == 0 {
		return styles.SectionStyle.Render(title + "\n" + styles.MutedStyle.Render("no entries yet"))
	}
	return styles.SectionStyle.Render(title + "\n" + m.entries.View())
}

func (m Model) renderBlacklist(width int) string {
	title := styles.SectionTitleStyle.Render("Blacklist")
	if len(m.blacklist) == 0 {
		return styles.SectionStyle.Render(title + "\n" + styles.MutedStyle.Render("empty"))
	}

	now := time.Now()
	lines := []string{title}
	for i, rec := range m.blacklist {
		if i == maxBlacklistRows {
			lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("… %d more", len(m.blacklist)-maxBlacklistRows)))
			break
		}
		line := fmt.Sprintf("%s  %s",
			styles.BlacklistPlateStyle.Render(rec.Key().String()),
			styles.MutedStyle.Render(presentation.FormatRelativeTimeFrom(rec.BlacklistedAt(), now)))
		lines = append(lines, styles.TruncateString(line, width-4))
	}
	return styles.SectionStyle.Render(strings.Join(lines, "\n"))
}
