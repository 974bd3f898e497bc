package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"frienddeck/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventRefreshRequested  = domain.EventRefreshRequested
	EventToggleRequested   = domain.EventToggleRequested
	EventAcceptRequested   = domain.EventAcceptRequested
	EventUnfriendRequested = domain.EventUnfriendRequested

	EventFriendsLoaded         = domain.EventFriendsLoaded
	EventRecommendationsLoaded = domain.EventRecommendationsLoaded
	EventPendingRequestsLoaded = domain.EventPendingRequestsLoaded
	EventRelationshipUpdated   = domain.EventRelationshipUpdated

	EventSearchStarted = domain.EventSearchStarted
	EventSearchSettled = domain.EventSearchSettled
	EventSearchFailed  = domain.EventSearchFailed
	EventSearchCleared = domain.EventSearchCleared

	EventNotificationPosted = domain.EventNotificationPosted
	EventError              = domain.EventError
)

// Re-export domain event types
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type ToggleRequestedEvent = domain.ToggleRequestedEvent
type AcceptRequestedEvent = domain.AcceptRequestedEvent
type UnfriendRequestedEvent = domain.UnfriendRequestedEvent
type FriendsLoadedEvent = domain.FriendsLoadedEvent
type RecommendationsLoadedEvent = domain.RecommendationsLoadedEvent
type PendingRequestsLoadedEvent = domain.PendingRequestsLoadedEvent
type RelationshipUpdatedEvent = domain.RelationshipUpdatedEvent
type SearchStartedEvent = domain.SearchStartedEvent
type SearchSettledEvent = domain.SearchSettledEvent
type SearchFailedEvent = domain.SearchFailedEvent
type SearchClearedEvent = domain.SearchClearedEvent
type NotificationPostedEvent = domain.NotificationPostedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	nextID    int
	handlers  map[EventType]map[int]EventHandler
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType]map[int]EventHandler),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]EventHandler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			handlersCopy := make([]EventHandler, 0, len(b.handlers[event.Type()]))
			for _, h := range b.handlers[event.Type()] {
				handlersCopy = append(handlersCopy, h)
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				// Call handler in a goroutine to avoid blocking the dispatcher
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
