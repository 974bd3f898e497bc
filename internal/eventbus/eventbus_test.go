package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frienddeck/internal/domain"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := New()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventFriendsLoaded, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(FriendsLoadedEvent{Friends: []domain.User{{ID: "u1", Username: "ada"}}})

	select {
	case e := <-received:
		event, ok := e.(FriendsLoadedEvent)
		require.True(t, ok)
		require.Len(t, event.Friends, 1)
		require.Equal(t, "ada", event.Friends[0].Username)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	bus := New()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventSearchCleared, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(FriendsLoadedEvent{})

	select {
	case <-received:
		t.Fatal("handler received an event of the wrong type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()

	received := make(chan DomainEvent, 4)
	unsubscribe := bus.Subscribe(EventSearchCleared, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(SearchClearedEvent{})
	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered before unsubscribe")
	}

	unsubscribe()
	bus.Publish(SearchClearedEvent{})

	select {
	case <-received:
		t.Fatal("handler received an event after unsubscribing")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMultipleSubscribers(t *testing.T) {
	bus := New()

	first := make(chan DomainEvent, 1)
	second := make(chan DomainEvent, 1)
	bus.Subscribe(EventError, func(e DomainEvent) { first <- e })
	bus.Subscribe(EventError, func(e DomainEvent) { second <- e })

	bus.Publish(ErrorEvent{Message: "boom"})

	for _, ch := range []chan DomainEvent{first, second} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("a subscriber did not receive the event")
		}
	}
}
