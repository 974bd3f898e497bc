package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"frienddeck/internal/config"
	"frienddeck/internal/domain"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
	"frienddeck/internal/search"
	"frienddeck/internal/session"
)

// Model represents the UI state
type Model struct {
	bus         eventbus.EventBus
	config      *config.Config
	sessions    session.Provider
	coordinator *search.Coordinator
	state       *AppState
	styles      *Styles

	input  textinput.Model
	width  int
	height int
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, sessions session.Provider, coordinator *search.Coordinator) *Model {
	ti := textinput.New()
	ti.Placeholder = "username"
	ti.CharLimit = 64

	return &Model{
		bus:         bus,
		config:      cfg,
		sessions:    sessions,
		coordinator: coordinator,
		state:       NewAppState(),
		styles:      NewStyles(),
		input:       ti,
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Confirm prompt swallows everything until answered
	if m.state.PendingUnfriend != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			m.bus.Publish(eventbus.UnfriendRequestedEvent{UserID: m.state.PendingUnfriend.ID})
			m.state.PendingUnfriend = nil
		case "n", "N", "esc", "q":
			m.state.PendingUnfriend = nil
		}
		return m, nil
	}

	if m.state.ShowHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.state.ShowHelp = false
		}
		return m, nil
	}

	if m.input.Focused() {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.state.ShowHelp = true

	case "1":
		m.state.ActiveTab = TabFriends
	case "2":
		m.state.ActiveTab = TabRequests
	case "3":
		m.state.ActiveTab = TabSuggested
	case "4":
		m.state.ActiveTab = TabSearch

	case "tab":
		m.state.ActiveTab = (m.state.ActiveTab + 1) % 4

	case "/":
		m.state.ActiveTab = TabSearch
		m.input.Focus()
		return m, textinput.Blink

	case "up", "k":
		m.state.MoveCursor(-1)
	case "down", "j":
		m.state.MoveCursor(1)

	case "r":
		m.state.Loading = true
		m.bus.Publish(eventbus.RefreshRequestedEvent{})

	case "c":
		m.state.Notice = nil

	case "enter":
		m.activateSelection()
	}

	return m, nil
}

// handleSearchKey runs while the search input has focus. Every content
// change is fed to the coordinator; an emptied term clears the displayed
// results right here, with no debounce.
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		return m, nil
	case "up":
		m.state.MoveCursor(-1)
		return m, nil
	case "down":
		m.state.MoveCursor(1)
		return m, nil
	case "enter":
		m.activateSelection()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()

	if value != before {
		m.state.SearchTerm = value
		if value == "" {
			m.state.SearchResults = nil
			m.state.Searching = false
			m.state.Cursors[TabSearch] = 0
		}
		m.feedCoordinator(value)
	}

	return m, cmd
}

func (m *Model) feedCoordinator(term string) {
	token, err := m.sessions.Token()
	if err != nil {
		m.state.Notice = &notify.Notification{
			Message: fmt.Sprintf("Not signed in: %v", err),
			Kind:    notify.KindError,
		}
		return
	}
	m.coordinator.Input(token, term)
}

// activateSelection performs the context action for the row under the
// cursor: unfriend on the friends tab, accept on the requests tab, and a
// request toggle for suggestions and search results.
func (m *Model) activateSelection() {
	switch m.state.ActiveTab {
	case TabFriends:
		friend := m.state.SelectedFriend()
		if friend == nil {
			return
		}
		if m.config.UISettings.ConfirmUnfriend {
			target := *friend
			m.state.PendingUnfriend = &target
		} else {
			m.bus.Publish(eventbus.UnfriendRequestedEvent{UserID: friend.ID})
		}

	case TabRequests:
		request := m.state.SelectedRequest()
		if request == nil {
			return
		}
		m.bus.Publish(eventbus.AcceptRequestedEvent{UserID: request.Requester.ID})

	case TabSuggested:
		rec := m.state.SelectedRecommendation()
		if rec == nil {
			return
		}
		m.bus.Publish(eventbus.ToggleRequestedEvent{UserID: rec.User.ID})

	case TabSearch:
		result := m.state.SelectedSearchResult()
		if result == nil {
			return
		}
		switch result.Relationship {
		case domain.RelationNone, domain.RelationRequestedOutgoing:
			m.bus.Publish(eventbus.ToggleRequestedEvent{UserID: result.User.ID})
		case domain.RelationRequestedIncoming:
			m.bus.Publish(eventbus.AcceptRequestedEvent{UserID: result.User.ID})
		case domain.RelationFriend:
			m.state.Notice = &notify.Notification{
				Message: fmt.Sprintf("Already friends with %s", result.User.Username),
				Kind:    notify.KindInfo,
			}
		}
	}
}

// State exposes the UI state for tests
func (m *Model) State() *AppState {
	return m.state
}
