package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/krakenpi/krakenpi/internal/state"
)

// Styles describes reusable Lip Gloss styles shared across the console.
type Styles struct {
	Header            *lipgloss.Style
	Title             *lipgloss.Style
	Footer            *lipgloss.Style
	Item              *lipgloss.Style
	ItemIcon          *lipgloss.Style
	SelectedItem      *lipgloss.Style
	SelectedIndicator *lipgloss.Style
	StatusOK          *lipgloss.Style
	StatusWarn        *lipgloss.Style
	StatusError       *lipgloss.Style
	StatusInfo        *lipgloss.Style
	StatusCritical    *lipgloss.Style
	Running           *lipgloss.Style
	Dim               *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIcon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Background(lipgloss.Color("238")),
	),
	StatusOK: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	),
	StatusWarn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	StatusError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	StatusInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	StatusCritical: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
	),
	Running: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	),
	Dim: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Level maps an alert level to its display style.
func (s *Styles) Level(level state.AlertLevel) *lipgloss.Style {
	switch level {
	case state.LevelOK:
		return s.StatusOK
	case state.LevelWarning:
		return s.StatusWarn
	case state.LevelError:
		return s.StatusError
	case state.LevelCritical:
		return s.StatusCritical
	default:
		return s.StatusInfo
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
