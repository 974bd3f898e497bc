package domain

// RelationshipState describes where another user stands relative to the viewer.
// Exactly one state holds per user pair at any time.
type RelationshipState string

const (
	RelationNone              RelationshipState = "none"
	RelationRequestedOutgoing RelationshipState = "requested_outgoing"
	RelationRequestedIncoming RelationshipState = "requested_incoming"
	RelationFriend            RelationshipState = "friend"
)

// User represents another user of the friend service
type User struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Interests []string `json:"interests,omitempty"`
}

// SearchResult pairs a user with their relationship state at query time.
// Entries go stale once a transition is applied and are patched in place
// by ID rather than replaced wholesale.
type SearchResult struct {
	User         User              `json:"user"`
	Relationship RelationshipState `json:"relationship"`
}

// PendingRequest is an incoming friend request awaiting the viewer's answer
type PendingRequest struct {
	ID        string `json:"id"`
	Requester User   `json:"requester"`
}

// Recommendation is a server-ranked friend suggestion. Ranking is the
// server's; the client displays it as-is.
type Recommendation struct {
	User                User `json:"user"`
	MutualFriendCount   int  `json:"mutual_friends"`
	MutualInterestCount int  `json:"mutual_interests"`
}

// Toggle outcome statuses reported by the friend-request toggle endpoint
const (
	ToggleRequested = "requested"
	ToggleCancelled = "cancelled"
)

// ToggleOutcome is the server's answer to a friend-request toggle
type ToggleOutcome struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// PatchRelationshipState updates the relationship state for userID inside a
// result set, in place. Returns true if an entry was patched. Collections
// other than the displayed search results are reconciled by refetching, so
// this is the only local mutation applied to presentation data.
func PatchRelationshipState(results []SearchResult, userID string, state RelationshipState) bool {
	for i := range results {
		if results[i].User.ID == userID {
			results[i].Relationship = state
			return true
		}
	}
	return false
}
