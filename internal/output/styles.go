package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor     = lipgloss.Color("#6c6c6c")
	SuccessColor = lipgloss.Color("#9ece6a")
	WarnColor    = lipgloss.Color("#e0af68")
	ErrorColor   = lipgloss.Color("#f7768e")
	AccentColor  = lipgloss.Color("#7aa2f7")
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(WarnColor)

	ErrStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	AccentStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	SectionStyle = lipgloss.NewStyle().
			Bold(true)
)
