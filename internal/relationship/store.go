package relationship

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"frienddeck/internal/domain"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
	"frienddeck/internal/session"
)

// API is the slice of the remote service the store depends on.
type API interface {
	ListFriends(ctx context.Context, token string) ([]domain.User, error)
	ListRecommendations(ctx context.Context, token string) ([]domain.Recommendation, error)
	ListPendingRequests(ctx context.Context, token string) ([]domain.PendingRequest, error)
	ToggleFriendRequest(ctx context.Context, token, userID string) (domain.ToggleOutcome, error)
	AcceptFriendRequest(ctx context.Context, token, requestID string) error
	Unfriend(ctx context.Context, token, userID string) error
}

// Store owns the canonical relationship state per user: the viewer's
// friends, incoming requests, recommendations, and a snapshot of the
// currently displayed search results. Mutations go to the server first;
// local state changes only after a success response. Collections touched
// by a mutation are reconciled by refetching the authoritative copy, the
// one exception being the displayed search results, which are patched in
// place by user ID.
//
// Remote failures never escape the store: each one becomes a single
// error notification and the state is left as it was.
type Store struct {
	mu              sync.RWMutex
	bus             eventbus.EventBus
	api             API
	sink            *notify.Sink
	friends         []domain.User
	recommendations []domain.Recommendation
	pending         []domain.PendingRequest
	searchResults   []domain.SearchResult
}

// NewStore creates a store and subscribes it to the action events the UI
// publishes. Each action runs on its own goroutine with a call timeout and
// reports back only through bus events and notifications.
func NewStore(bus eventbus.EventBus, remote API, sessions session.Provider, sink *notify.Sink) *Store {
	s := &Store{
		bus:  bus,
		api:  remote,
		sink: sink,
	}

	run := func(op func(ctx context.Context, token string)) {
		token, err := sessions.Token()
		if err != nil {
			sink.Error(fmt.Sprintf("Not signed in: %v", err))
			return
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			op(ctx, token)
		}()
	}

	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		run(s.LoadAll)
	})
	bus.Subscribe(eventbus.EventToggleRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ToggleRequestedEvent); ok {
			run(func(ctx context.Context, token string) { s.RequestOrCancel(ctx, token, event.UserID) })
		}
	})
	bus.Subscribe(eventbus.EventAcceptRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.AcceptRequestedEvent); ok {
			run(func(ctx context.Context, token string) { s.Accept(ctx, token, event.UserID) })
		}
	})
	bus.Subscribe(eventbus.EventUnfriendRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.UnfriendRequestedEvent); ok {
			run(func(ctx context.Context, token string) { s.Unfriend(ctx, token, event.UserID) })
		}
	})

	// Keep the search snapshot current so confirmed transitions can be
	// patched into whatever is on screen.
	bus.Subscribe(eventbus.EventSearchSettled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchSettledEvent); ok {
			s.SetSearchResults(event.Results)
		}
	})
	bus.Subscribe(eventbus.EventSearchCleared, func(e eventbus.DomainEvent) {
		s.SetSearchResults(nil)
	})

	return s
}

// LoadAll fetches friends, recommendations and pending requests. The three
// fetches run concurrently and independently: a failure in one keeps that
// collection's previous value and emits one error notification, while the
// others still land. Completion order is not assumed.
func (s *Store) LoadAll(ctx context.Context, token string) {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		friends, err := s.api.ListFriends(ctx, token)
		if err != nil {
			s.sink.Error(fmt.Sprintf("Could not load friends: %v", err))
			return
		}
		s.mu.Lock()
		s.friends = friends
		s.mu.Unlock()
		s.bus.Publish(eventbus.FriendsLoadedEvent{Friends: friends})
	}()

	go func() {
		defer wg.Done()
		recs, err := s.api.ListRecommendations(ctx, token)
		if err != nil {
			s.sink.Error(fmt.Sprintf("Could not load suggestions: %v", err))
			return
		}
		s.mu.Lock()
		s.recommendations = recs
		s.mu.Unlock()
		s.bus.Publish(eventbus.RecommendationsLoadedEvent{Recommendations: recs})
	}()

	go func() {
		defer wg.Done()
		pending, err := s.api.ListPendingRequests(ctx, token)
		if err != nil {
			s.sink.Error(fmt.Sprintf("Could not load friend requests: %v", err))
			return
		}
		s.mu.Lock()
		s.pending = pending
		s.mu.Unlock()
		s.bus.Publish(eventbus.PendingRequestsLoadedEvent{Requests: pending})
	}()

	wg.Wait()
}

// RequestOrCancel toggles the viewer's outgoing request to userID between
// none and requested_outgoing. The server decides which way the toggle
// went; no state is flipped before its confirmation. On success the user's
// entry in the displayed search results is patched and recommendations are
// refreshed, since a just-requested user should no longer be suggested.
func (s *Store) RequestOrCancel(ctx context.Context, token, userID string) {
	outcome, err := s.api.ToggleFriendRequest(ctx, token, userID)
	if err != nil {
		s.sink.Error(fmt.Sprintf("Friend request failed: %v", err))
		return
	}

	state := domain.RelationNone
	if outcome.Status == domain.ToggleRequested {
		state = domain.RelationRequestedOutgoing
	}
	s.applyState(userID, state)

	message := outcome.Message
	if outcome.Status == domain.ToggleRequested {
		if message == "" {
			message = "Friend request sent"
		}
		s.sink.Success(message)
	} else {
		if message == "" {
			message = "Friend request cancelled"
		}
		s.sink.Info(message)
	}

	s.refreshRecommendations(ctx, token)
}

// Accept accepts the pending request sent by userID. On success the entry
// leaves pendingRequests and friends is refreshed from the server, moving
// the pair from requested_incoming to friend.
func (s *Store) Accept(ctx context.Context, token, userID string) {
	s.mu.RLock()
	var request *domain.PendingRequest
	for i := range s.pending {
		if s.pending[i].Requester.ID == userID {
			request = &s.pending[i]
			break
		}
	}
	s.mu.RUnlock()

	if request == nil {
		s.sink.Error("No pending request from that user")
		return
	}
	username := request.Requester.Username

	if err := s.api.AcceptFriendRequest(ctx, token, request.ID); err != nil {
		s.sink.Error(fmt.Sprintf("Could not accept request from %s: %v", username, err))
		return
	}

	s.mu.Lock()
	remaining := make([]domain.PendingRequest, 0, len(s.pending))
	for _, p := range s.pending {
		if p.Requester.ID != userID {
			remaining = append(remaining, p)
		}
	}
	s.pending = remaining
	s.mu.Unlock()
	s.bus.Publish(eventbus.PendingRequestsLoadedEvent{Requests: remaining})

	s.applyState(userID, domain.RelationFriend)
	s.sink.Success(fmt.Sprintf("You are now friends with %s", username))
	s.refreshFriends(ctx, token)
}

// Unfriend removes userID from the viewer's friends. The removal is
// reflected by refetching the friends collection rather than deleting
// locally, so the store stays consistent with server truth.
func (s *Store) Unfriend(ctx context.Context, token, userID string) {
	s.mu.RLock()
	var username string
	for _, f := range s.friends {
		if f.ID == userID {
			username = f.Username
			break
		}
	}
	s.mu.RUnlock()

	if username == "" {
		s.sink.Error("That user is not in your friends")
		return
	}

	if err := s.api.Unfriend(ctx, token, userID); err != nil {
		s.sink.Error(fmt.Sprintf("Could not unfriend %s: %v", username, err))
		return
	}

	s.applyState(userID, domain.RelationNone)
	s.sink.Info(fmt.Sprintf("No longer friends with %s", username))
	s.refreshFriends(ctx, token)
}

// SetSearchResults replaces the search snapshot with a copy of results.
func (s *Store) SetSearchResults(results []domain.SearchResult) {
	s.mu.Lock()
	s.searchResults = append([]domain.SearchResult(nil), results...)
	s.mu.Unlock()
}

// Friends returns a copy of the friends collection
func (s *Store) Friends() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.friends...)
}

// Recommendations returns a copy of the recommendations collection
func (s *Store) Recommendations() []domain.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Recommendation(nil), s.recommendations...)
}

// PendingRequests returns a copy of the incoming request collection
func (s *Store) PendingRequests() []domain.PendingRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PendingRequest(nil), s.pending...)
}

// SearchResults returns a copy of the current search snapshot
func (s *Store) SearchResults() []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SearchResult(nil), s.searchResults...)
}

// applyState records a confirmed transition for one user: the displayed
// search results are patched in place and the change is announced so other
// views of the same user follow suit.
func (s *Store) applyState(userID string, state domain.RelationshipState) {
	s.mu.Lock()
	domain.PatchRelationshipState(s.searchResults, userID, state)
	s.mu.Unlock()
	s.bus.Publish(eventbus.RelationshipUpdatedEvent{UserID: userID, State: state})
}

func (s *Store) refreshFriends(ctx context.Context, token string) {
	friends, err := s.api.ListFriends(ctx, token)
	if err != nil {
		log.Printf("friends refresh failed: %v", err)
		s.sink.Error(fmt.Sprintf("Could not refresh friends: %v", err))
		return
	}
	s.mu.Lock()
	s.friends = friends
	s.mu.Unlock()
	s.bus.Publish(eventbus.FriendsLoadedEvent{Friends: friends})
}

func (s *Store) refreshRecommendations(ctx context.Context, token string) {
	recs, err := s.api.ListRecommendations(ctx, token)
	if err != nil {
		// Not worth an error popup right after a successful action
		log.Printf("recommendations refresh failed: %v", err)
		return
	}
	s.mu.Lock()
	s.recommendations = recs
	s.mu.Unlock()
	s.bus.Publish(eventbus.RecommendationsLoadedEvent{Recommendations: recs})
}
