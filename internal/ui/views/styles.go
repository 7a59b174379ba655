package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Omnibox     lipgloss.Style
	OmniboxIdle lipgloss.Style
	Button      lipgloss.Style
	ButtonBusy  lipgloss.Style
	Dim         lipgloss.Style
	Hint        lipgloss.Style
	Footer      lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Popup       lipgloss.Style
	Error       lipgloss.Style
	ResultTitle lipgloss.Style
	Snippet     lipgloss.Style
	ResultURL   lipgloss.Style
	Selected    lipgloss.Style
	Cursor      lipgloss.Style
	PageURL     lipgloss.Style
	Heading     lipgloss.Style
	Link        lipgloss.Style
	Field       lipgloss.Style
	Marker      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Omnibox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1),
		OmniboxIdle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("27")).
			Padding(0, 2),
		ButtonBusy: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2),
		Dim:    lipgloss.NewStyle().Faint(true),
		Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:   lipgloss.NewStyle().Faint(true),
		Main:   lipgloss.NewStyle().Padding(0, 2),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		ResultTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Snippet:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		ResultURL:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		PageURL:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true),
		Field:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}
