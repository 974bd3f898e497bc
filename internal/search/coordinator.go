package search

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"frienddeck/internal/domain"
	"frienddeck/internal/eventbus"
	"frienddeck/internal/notify"
)

// DefaultDebounce is the quiet period input must hold before a query fires.
const DefaultDebounce = 300 * time.Millisecond

// Searcher is the remote call the coordinator drives.
type Searcher interface {
	SearchUsers(ctx context.Context, token, term string) ([]domain.SearchResult, error)
}

// Phase is the coordinator's lifecycle phase for the active term.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseInFlight
	PhaseSettled
)

// Coordinator turns raw keystrokes into a debounced, de-duplicated search
// stream and guarantees that only the response to the most recently issued
// request ever settles. The debounce timer is an explicit handle owned here
// and cancelled by superseding input; the previous in-flight request's
// context is cancelled as well, though the sequence check below is what
// actually protects against out-of-order responses.
type Coordinator struct {
	mu       sync.Mutex
	bus      eventbus.EventBus
	api      Searcher
	sink     *notify.Sink
	debounce time.Duration

	phase   Phase
	term    string
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	results []domain.SearchResult
}

// NewCoordinator creates a coordinator with the given quiet period.
// A debounce of 0 falls back to DefaultDebounce.
func NewCoordinator(bus eventbus.EventBus, remote Searcher, sink *notify.Sink, debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		bus:      bus,
		api:      remote,
		sink:     sink,
		debounce: debounce,
	}
}

// Input feeds one term change. An empty term clears synchronously, with no
// debounce; anything else restarts the quiet-period timer. Repeating the
// current term is a no-op.
func (c *Coordinator) Input(token, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if term == c.term && c.phase != PhaseIdle {
		return
	}
	c.term = term

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if term == "" {
		if c.cancel != nil {
			c.cancel()
			c.cancel = nil
		}
		c.seq++ // orphan any in-flight response
		c.phase = PhaseIdle
		c.results = nil
		c.bus.Publish(eventbus.SearchClearedEvent{})
		return
	}

	c.phase = PhasePending
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(token, term)
	})
}

// fire moves a term from Pending to InFlight once its timer has elapsed
// uninterrupted.
func (c *Coordinator) fire(token, term string) {
	c.mu.Lock()
	if term != c.term {
		// Superseded between the timer firing and us getting the lock
		c.mu.Unlock()
		return
	}

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.seq++
	seq := c.seq
	c.phase = PhaseInFlight
	c.bus.Publish(eventbus.SearchStartedEvent{Term: term})
	c.mu.Unlock()

	go func() {
		results, err := c.api.SearchUsers(ctx, token, term)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.seq || term != c.term {
			// A newer request owns the display now; drop this response
			// no matter when it arrived.
			log.Printf("search: discarding stale response for %q", term)
			return
		}

		if err != nil {
			// Keep the previous settled results on screen instead of
			// clearing; a transient failure should not blank the list.
			// The failed event still goes out so consumers know the
			// query is no longer in flight.
			c.phase = PhaseSettled
			c.bus.Publish(eventbus.SearchFailedEvent{Term: term})
			c.sink.Error(fmt.Sprintf("Search failed: %v", err))
			return
		}

		c.phase = PhaseSettled
		c.results = results
		c.bus.Publish(eventbus.SearchSettledEvent{Term: term, Results: results})
	}()
}

// Phase returns the current lifecycle phase.
func (c *Coordinator) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Term returns the most recent input term.
func (c *Coordinator) Term() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.term
}

// Results returns a copy of the currently settled results.
func (c *Coordinator) Results() []domain.SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.SearchResult(nil), c.results...)
}
