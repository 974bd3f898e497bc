package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frienddeck/internal/domain"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
)

// recordingBus captures published events synchronously for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) settledTerms() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.events {
		if s, ok := e.(eventbus.SearchSettledEvent); ok {
			out = append(out, s.Term)
		}
	}
	return out
}

func (b *recordingBus) failedTerms() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.events {
		if f, ok := e.(eventbus.SearchFailedEvent); ok {
			out = append(out, f.Term)
		}
	}
	return out
}

func (b *recordingBus) clearedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if _, ok := e.(eventbus.SearchClearedEvent); ok {
			n++
		}
	}
	return n
}

// fakeSearcher answers search calls from a canned table. A term listed in
// gates blocks until its gate channel is closed, ignoring ctx, which
// simulates a slow response arriving after it has gone stale.
type fakeSearcher struct {
	mu        sync.Mutex
	calls     []string
	responses map[string][]domain.SearchResult
	errors    map[string]error
	gates     map[string]chan struct{}
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		responses: make(map[string][]domain.SearchResult),
		errors:    make(map[string]error),
		gates:     make(map[string]chan struct{}),
	}
}

func (f *fakeSearcher) SearchUsers(_ context.Context, _ string, term string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	gate := f.gates[term]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errors[term]; err != nil {
		return nil, err
	}
	return f.responses[term], nil
}

func (f *fakeSearcher) callsFor(term string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == term {
			n++
		}
	}
	return n
}

func (f *fakeSearcher) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func results(usernames ...string) []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(usernames))
	for _, name := range usernames {
		out = append(out, domain.SearchResult{
			User:         domain.User{ID: "id-" + name, Username: name},
			Relationship: domain.RelationNone,
		})
	}
	return out
}

func newTestCoordinator(remote Searcher, debounce time.Duration) (*Coordinator, *recordingBus) {
	bus := &recordingBus{}
	sink := notify.New(bus)
	return NewCoordinator(bus, remote, sink, debounce), bus
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDebounceFiresOnceForLatestTerm(t *testing.T) {
	remote := newFakeSearcher()
	remote.responses["abc"] = results("abcuser")
	c, _ := newTestCoordinator(remote, 120*time.Millisecond)

	// Keystrokes inside the quiet period: only the final term may fire
	c.Input("tok", "a")
	time.Sleep(40 * time.Millisecond)
	c.Input("tok", "ab")
	time.Sleep(20 * time.Millisecond)
	c.Input("tok", "abc")

	require.Equal(t, 0, remote.totalCalls(), "nothing fires before the quiet period elapses")

	waitFor(t, func() bool { return c.Phase() == PhaseSettled })
	require.Equal(t, 1, remote.totalCalls(), "exactly one request for the whole burst")
	require.Equal(t, 1, remote.callsFor("abc"))
	require.Equal(t, "abcuser", c.Results()[0].User.Username)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	remote := newFakeSearcher()
	gate := make(chan struct{})
	remote.gates["x"] = gate
	remote.responses["x"] = results("xavier")
	remote.responses["y"] = results("yolanda")
	c, bus := newTestCoordinator(remote, 10*time.Millisecond)

	c.Input("tok", "x")
	waitFor(t, func() bool { return remote.callsFor("x") == 1 })

	c.Input("tok", "y")
	waitFor(t, func() bool { return len(bus.settledTerms()) == 1 })
	require.Equal(t, []string{"y"}, bus.settledTerms())

	// "x" finally resolves, after "y" already settled
	close(gate)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, []string{"y"}, bus.settledTerms(), "the stale response never settles")
	require.Equal(t, "yolanda", c.Results()[0].User.Username)
}

func TestEmptyTermClearsSynchronously(t *testing.T) {
	remote := newFakeSearcher()
	remote.responses["ab"] = results("abby")
	c, bus := newTestCoordinator(remote, 10*time.Millisecond)

	c.Input("tok", "ab")
	waitFor(t, func() bool { return c.Phase() == PhaseSettled })
	require.NotEmpty(t, c.Results())

	c.Input("tok", "")

	// No waiting: the clear is synchronous
	require.Equal(t, PhaseIdle, c.Phase())
	require.Empty(t, c.Results())
	require.Equal(t, 1, bus.clearedCount())
}

func TestEmptyTermCancelsPendingTimer(t *testing.T) {
	remote := newFakeSearcher()
	c, _ := newTestCoordinator(remote, 30*time.Millisecond)

	c.Input("tok", "ab")
	c.Input("tok", "")
	time.Sleep(100 * time.Millisecond)

	require.Equal(t, 0, remote.totalCalls(), "the cancelled timer never fires")
}

func TestFailureKeepsPriorResults(t *testing.T) {
	remote := newFakeSearcher()
	remote.responses["ab"] = results("abby")
	remote.errors["abc"] = errors.New("offline")
	c, bus := newTestCoordinator(remote, 10*time.Millisecond)

	c.Input("tok", "ab")
	waitFor(t, func() bool { return len(bus.settledTerms()) == 1 })

	c.Input("tok", "abc")
	waitFor(t, func() bool { return remote.callsFor("abc") == 1 })
	waitFor(t, func() bool { return c.Phase() == PhaseSettled })

	require.Equal(t, "abby", c.Results()[0].User.Username, "prior results stay on screen")
	require.Equal(t, []string{"abc"}, bus.failedTerms(), "consumers learn the query is done")
	require.Equal(t, []string{"ab"}, bus.settledTerms(), "a failed query never settles")

	errorNotices := 0
	bus.mu.Lock()
	for _, e := range bus.events {
		if n, ok := e.(eventbus.NotificationPostedEvent); ok && n.Kind == string(notify.KindError) {
			errorNotices++
		}
	}
	bus.mu.Unlock()
	require.Equal(t, 1, errorNotices)
}

func TestRepeatedTermDoesNotRefire(t *testing.T) {
	remote := newFakeSearcher()
	remote.responses["ab"] = results("abby")
	c, _ := newTestCoordinator(remote, 10*time.Millisecond)

	c.Input("tok", "ab")
	waitFor(t, func() bool { return c.Phase() == PhaseSettled })

	c.Input("tok", "ab")
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, 1, remote.totalCalls(), "re-entering the same term is a no-op")
}
