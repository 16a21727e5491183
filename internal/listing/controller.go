package listing

import (
	"context"
	"sync"
	"time"

	"github.com/xyz-asif/travlr/internal/features/trips"
)

// LoadErrorMessage is shown when the trip list cannot be fetched.
const LoadErrorMessage = "Failed to load trips."

// Fetcher returns every stored trip.
type Fetcher func(ctx context.Context) ([]trips.Trip, error)

// State is a snapshot of what the list screen renders.
type State struct {
	Loading   bool
	Error     string
	Query     string
	Ascending bool
	Visible   []View
	Metrics   Metrics
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDebounce sets the search debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debouncer = NewDebouncer(d) }
}

// WithOnChange registers a callback fired after every visible state change.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller holds the list screen state. Sort toggles apply immediately;
// search text applies after the debounce delay and only when it changed.
type Controller struct {
	mu        sync.Mutex
	now       func() time.Time
	debouncer *Debouncer
	onChange  func(State)

	base      []View
	query     string
	ascending bool
	loading   bool
	err       string
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		now:       time.Now,
		debouncer: NewDebouncer(DefaultDebounce),
		ascending: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the base list. A failed fetch leaves an empty list and the
// error message set.
func (c *Controller) Load(ctx context.Context, fetch Fetcher) error {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	c.notify()

	list, err := fetch(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.base = nil
		c.err = LoadErrorMessage
	} else {
		c.base = Build(list, c.now())
	}
	c.mu.Unlock()
	c.notify()

	return err
}

// SetSearch schedules a new query.
func (c *Controller) SetSearch(query string) {
	c.debouncer.Trigger(func() {
		c.mu.Lock()
		changed := query != c.query
		c.query = query
		c.mu.Unlock()

		if changed {
			c.notify()
		}
	})
}

// ToggleSort flips the sort direction and returns the new one.
func (c *Controller) ToggleSort() bool {
	c.mu.Lock()
	c.ascending = !c.ascending
	asc := c.ascending
	c.mu.Unlock()

	c.notify()
	return asc
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close cancels any pending search.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

func (c *Controller) stateLocked() State {
	return State{
		Loading:   c.loading,
		Error:     c.err,
		Query:     c.query,
		Ascending: c.ascending,
		Visible:   Apply(c.base, c.query, c.ascending),
		Metrics:   ComputeMetrics(c.base),
	}
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.State())
}
