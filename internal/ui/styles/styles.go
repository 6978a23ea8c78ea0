// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#52606D", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Summary card, matching the registered-plates tile
	CardBgColor = lipgloss.AdaptiveColor{Light: "#00BCD4", Dark: "#0288D1"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}
	ToastBorderWarnColor    = StatusWarningColor
	ToastBorderErrorColor   = StatusErrorColor

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)

	CardStyle = lipgloss.NewStyle().
			Padding(1, 4).
			Background(CardBgColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Align(lipgloss.Center)

	CardNumberStyle = lipgloss.NewStyle().Bold(true)

	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	SectionTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	BlacklistPlateStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusErrorColor)
)
