package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#4CAF50")
	colorSecondary = lipgloss.Color("#8BC34A")
	colorAccent    = lipgloss.Color("#FF9800")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#E0E6D8")
	colorSubtle    = lipgloss.Color("#3E4A3D")
	colorHighlight = lipgloss.Color("#7AA2F7")
	colorRain      = lipgloss.Color("#4FC3F7")
)

// Styles
var (
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2)

	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(1, 2)
	activePanelStyle = panelStyle.BorderForeground(colorPrimary)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	accentStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	tagStyle       = lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 1)

	// Wizard progress line
	stepDoneStyle    = successStyle
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	stepTodoStyle    = mutedStyle

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = mutedStyle.Padding(0, 1)

	selectedItemStyle = stepCurrentStyle
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)
