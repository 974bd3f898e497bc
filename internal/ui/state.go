package ui

import (
	"frienddeck/internal/domain"
	"frienddeck/internal/notify"
)

// Tab identifies one of the four views
type Tab int

const (
	TabFriends Tab = iota
	TabRequests
	TabSuggested
	TabSearch
)

func (t Tab) Title() string {
	switch t {
	case TabFriends:
		return "Friends"
	case TabRequests:
		return "Requests"
	case TabSuggested:
		return "Suggested"
	case TabSearch:
		return "Search"
	}
	return ""
}

// AppState contains all the application state the views render from.
// It is only ever mutated on the Bubble Tea update goroutine; the data in
// it arrives as domain events forwarded into the program.
type AppState struct {
	// Collections, as last reported by the relationship store
	Friends         []domain.User
	Requests        []domain.PendingRequest
	Recommendations []domain.Recommendation

	// Displayed search results; patched in place on relationship changes
	SearchResults []domain.SearchResult
	SearchTerm    string
	Searching     bool // a query is in flight

	// UI state
	ActiveTab       Tab
	Cursors         [4]int // per-tab selection cursor
	Loading         bool   // initial load in progress
	Notice          *notify.Notification
	PendingUnfriend *domain.User // confirm prompt target, nil when inactive
	ShowHelp        bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{Loading: true}
}

// ItemCount returns how many rows the given tab currently has
func (s *AppState) ItemCount(tab Tab) int {
	switch tab {
	case TabFriends:
		return len(s.Friends)
	case TabRequests:
		return len(s.Requests)
	case TabSuggested:
		return len(s.Recommendations)
	case TabSearch:
		return len(s.SearchResults)
	}
	return 0
}

// Cursor returns the clamped cursor for a tab
func (s *AppState) Cursor(tab Tab) int {
	s.ClampCursor(tab)
	return s.Cursors[tab]
}

// MoveCursor moves the active tab's cursor by delta, clamped to the list
func (s *AppState) MoveCursor(delta int) {
	s.Cursors[s.ActiveTab] += delta
	s.ClampCursor(s.ActiveTab)
}

// ClampCursor keeps a tab's cursor inside its list after the list changed
func (s *AppState) ClampCursor(tab Tab) {
	count := s.ItemCount(tab)
	if s.Cursors[tab] >= count {
		s.Cursors[tab] = count - 1
	}
	if s.Cursors[tab] < 0 {
		s.Cursors[tab] = 0
	}
}

// SelectedFriend returns the friend under the cursor, if any
func (s *AppState) SelectedFriend() *domain.User {
	if len(s.Friends) == 0 {
		return nil
	}
	return &s.Friends[s.Cursor(TabFriends)]
}

// SelectedRequest returns the pending request under the cursor, if any
func (s *AppState) SelectedRequest() *domain.PendingRequest {
	if len(s.Requests) == 0 {
		return nil
	}
	return &s.Requests[s.Cursor(TabRequests)]
}

// SelectedRecommendation returns the suggestion under the cursor, if any
func (s *AppState) SelectedRecommendation() *domain.Recommendation {
	if len(s.Recommendations) == 0 {
		return nil
	}
	return &s.Recommendations[s.Cursor(TabSuggested)]
}

// SelectedSearchResult returns the search row under the cursor, if any
func (s *AppState) SelectedSearchResult() *domain.SearchResult {
	if len(s.SearchResults) == 0 {
		return nil
	}
	return &s.SearchResults[s.Cursor(TabSearch)]
}
