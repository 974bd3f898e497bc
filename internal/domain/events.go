package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRefreshRequested  EventType = "RefreshRequested"
	EventToggleRequested   EventType = "ToggleRequested"
	EventAcceptRequested   EventType = "AcceptRequested"
	EventUnfriendRequested EventType = "UnfriendRequested"

	EventFriendsLoaded         EventType = "FriendsLoaded"
	EventRecommendationsLoaded EventType = "RecommendationsLoaded"
	EventPendingRequestsLoaded EventType = "PendingRequestsLoaded"
	EventRelationshipUpdated   EventType = "RelationshipUpdated"

	EventSearchStarted EventType = "SearchStarted"
	EventSearchSettled EventType = "SearchSettled"
	EventSearchFailed  EventType = "SearchFailed"
	EventSearchCleared EventType = "SearchCleared"

	EventNotificationPosted EventType = "NotificationPosted"
	EventError              EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RefreshRequestedEvent asks the relationship store to reload all collections
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// ToggleRequestedEvent asks for a friend request to be sent or cancelled
type ToggleRequestedEvent struct {
	UserID string
}

func (e ToggleRequestedEvent) Type() EventType { return EventToggleRequested }

// AcceptRequestedEvent asks for the pending request from UserID to be accepted
type AcceptRequestedEvent struct {
	UserID string
}

func (e AcceptRequestedEvent) Type() EventType { return EventAcceptRequested }

// UnfriendRequestedEvent asks for an existing friend to be removed
type UnfriendRequestedEvent struct {
	UserID string
}

func (e UnfriendRequestedEvent) Type() EventType { return EventUnfriendRequested }

// FriendsLoadedEvent carries a fresh friends collection from the server
type FriendsLoadedEvent struct {
	Friends []User
}

func (e FriendsLoadedEvent) Type() EventType { return EventFriendsLoaded }

// RecommendationsLoadedEvent carries a fresh recommendations collection
type RecommendationsLoadedEvent struct {
	Recommendations []Recommendation
}

func (e RecommendationsLoadedEvent) Type() EventType { return EventRecommendationsLoaded }

// PendingRequestsLoadedEvent carries the current set of incoming requests
type PendingRequestsLoadedEvent struct {
	Requests []PendingRequest
}

func (e PendingRequestsLoadedEvent) Type() EventType { return EventPendingRequestsLoaded }

// RelationshipUpdatedEvent is emitted after a confirmed state transition for
// a single user; consumers patch that user in place wherever they display them
type RelationshipUpdatedEvent struct {
	UserID string
	State  RelationshipState
}

func (e RelationshipUpdatedEvent) Type() EventType { return EventRelationshipUpdated }

// SearchStartedEvent is emitted when a debounced search term goes in flight
type SearchStartedEvent struct {
	Term string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchSettledEvent carries the results for the most recently issued term.
// Responses to superseded terms are discarded and never reach the bus.
type SearchSettledEvent struct {
	Term    string
	Results []SearchResult
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// SearchFailedEvent is emitted when the in-flight query for Term errored.
// The previously settled results stay valid; only the in-flight state ends.
type SearchFailedEvent struct {
	Term string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchClearedEvent is emitted when the term becomes empty
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// NotificationPostedEvent carries the latest user-facing outcome message
type NotificationPostedEvent struct {
	Message string
	Kind    string // success, info or error
}

func (e NotificationPostedEvent) Type() EventType { return EventNotificationPosted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
