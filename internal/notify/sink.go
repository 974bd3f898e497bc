package notify

import (
	"log"
	"sync"

	"frienddeck/internal/eventbus"
)

// Kind classifies a notification by severity
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notification is a single user-facing outcome message
type Notification struct {
	Message string
	Kind    Kind
}

// Sink holds at most one current notification, latest wins. Consumers that
// want history have to keep their own; this deliberately does not queue.
type Sink struct {
	mu      sync.Mutex
	current *Notification
	bus     eventbus.EventBus
}

// New creates a sink. The bus may be nil in tests.
func New(bus eventbus.EventBus) *Sink {
	return &Sink{bus: bus}
}

// Success posts a success notification
func (s *Sink) Success(message string) { s.post(Notification{Message: message, Kind: KindSuccess}) }

// Info posts an informational notification
func (s *Sink) Info(message string) { s.post(Notification{Message: message, Kind: KindInfo}) }

// Error posts an error notification and logs it
func (s *Sink) Error(message string) {
	log.Printf("notify: %s", message)
	s.post(Notification{Message: message, Kind: KindError})
}

// Current returns the current notification, if any
func (s *Sink) Current() (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}

// Clear empties the slot
func (s *Sink) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *Sink) post(n Notification) {
	s.mu.Lock()
	s.current = &n
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(eventbus.NotificationPostedEvent{Message: n.Message, Kind: string(n.Kind)})
	}
}
