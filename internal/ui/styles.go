package ui

import (
	"github.com/charmbracelet/lipgloss"

	"frienddeck/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	Dim           lipgloss.Style
	Confirm       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	SelectionBg   lipgloss.Style
	SearchPrompt  lipgloss.Style
	NoticeSuccess lipgloss.Style
	NoticeInfo    lipgloss.Style
	NoticeError   lipgloss.Style

	StateFriend   lipgloss.Style
	StateOutgoing lipgloss.Style
	StateIncoming lipgloss.Style
	StateNone     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("99")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Dim:          lipgloss.NewStyle().Faint(true),
		Confirm:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		SelectionBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SearchPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		NoticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),

		StateFriend:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		StateOutgoing: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StateIncoming: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		StateNone:     lipgloss.NewStyle().Faint(true),
	}
}

// StateStyle returns the style for a relationship state badge
func (s *Styles) StateStyle(state domain.RelationshipState) lipgloss.Style {
	switch state {
	case domain.RelationFriend:
		return s.StateFriend
	case domain.RelationRequestedOutgoing:
		return s.StateOutgoing
	case domain.RelationRequestedIncoming:
		return s.StateIncoming
	default:
		return s.StateNone
	}
}

// StateLabel returns the short badge text for a relationship state
func StateLabel(state domain.RelationshipState) string {
	switch state {
	case domain.RelationFriend:
		return "friend"
	case domain.RelationRequestedOutgoing:
		return "requested"
	case domain.RelationRequestedIncoming:
		return "wants to connect"
	default:
		return ""
	}
}
