package ui

import (
	"frienddeck/internal/domain"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
)

// handleEvent applies a forwarded domain event to the UI state. Collections
// are replaced wholesale from the store's events; the one in-place mutation
// is the per-user relationship patch on the displayed search results.
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FriendsLoadedEvent:
		m.state.Friends = e.Friends
		m.state.Loading = false
		m.state.ClampCursor(TabFriends)

	case eventbus.RecommendationsLoadedEvent:
		m.state.Recommendations = e.Recommendations
		m.state.ClampCursor(TabSuggested)

	case eventbus.PendingRequestsLoadedEvent:
		m.state.Requests = e.Requests
		m.state.ClampCursor(TabRequests)

	case eventbus.RelationshipUpdatedEvent:
		domain.PatchRelationshipState(m.state.SearchResults, e.UserID, e.State)

	case eventbus.SearchStartedEvent:
		m.state.Searching = true

	case eventbus.SearchSettledEvent:
		m.state.Searching = false
		// Copy so the in-place relationship patch below never reaches
		// into the coordinator's own slice.
		m.state.SearchResults = append([]domain.SearchResult(nil), e.Results...)
		m.state.ClampCursor(TabSearch)

	case eventbus.SearchFailedEvent:
		// The query errored; prior results stay on screen, but nothing
		// is in flight anymore.
		m.state.Searching = false

	case eventbus.SearchClearedEvent:
		m.state.Searching = false
		m.state.SearchResults = nil
		m.state.Cursors[TabSearch] = 0

	case eventbus.NotificationPostedEvent:
		m.state.Notice = &notify.Notification{Message: e.Message, Kind: notify.Kind(e.Kind)}

	case eventbus.ErrorEvent:
		m.state.Notice = &notify.Notification{Message: e.Message, Kind: notify.KindError}
	}
}
