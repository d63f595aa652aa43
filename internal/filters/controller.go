package filters

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/globaloptima/storefront/internal/domain"
)

// Fetcher runs a catalog query for the given state.
type Fetcher func(ctx context.Context, state State) (*domain.ProductsPage, error)

// Controller owns the browse state: the current filters, the search
// debouncer, and the latest catalog result. Every fetch is stamped with a
// monotonically increasing sequence; a result is applied only if no newer
// fetch was issued since, so rapid filter changes can never be overwritten
// by a stale response.
type Controller struct {
	mu       sync.Mutex
	state    State
	page     *domain.ProductsPage
	fetchErr error
	seq      uint64

	fetch    Fetcher
	debounce *Debouncer
	quiet    time.Duration
}

func NewController(fetch Fetcher) *Controller {
	c := &Controller{
		state: Default(),
		fetch: fetch,
		quiet: DefaultQuietPeriod,
	}
	c.debounce = NewDebouncer(func(value string) {
		c.UpdateFilters(context.Background(), Partial{Search: &value})
	})
	return c
}

// SetQuietPeriod overrides the search debounce interval.
func (c *Controller) SetQuietPeriod(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = d
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Results returns the latest applied catalog page and fetch error.
func (c *Controller) Results() (*domain.ProductsPage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page, c.fetchErr
}

// Query is the address-bar mirror of the current state.
func (c *Controller) Query() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Values()
}

// SearchInput feeds one keystroke of the search box. The value commits into
// the filter state only after the quiet period, resetting on every call.
func (c *Controller) SearchInput(value string) {
	c.mu.Lock()
	quiet := c.quiet
	c.mu.Unlock()
	c.debounce.Schedule(value, quiet)
}

// CancelSearch drops any uncommitted search input.
func (c *Controller) CancelSearch() {
	c.debounce.Cancel()
}

// UpdateFilters merges a partial update (page resets to 1) and refreshes.
func (c *Controller) UpdateFilters(ctx context.Context, p Partial) {
	c.mu.Lock()
	c.state = c.state.Merge(p)
	state := c.state
	seq := c.nextSeqLocked()
	c.mu.Unlock()
	c.runFetch(ctx, seq, state)
}

// UpdateSort sets the sort order (page resets to 1) and refreshes.
func (c *Controller) UpdateSort(ctx context.Context, sort Sort) {
	c.mu.Lock()
	c.state = c.state.WithSort(sort)
	state := c.state
	seq := c.nextSeqLocked()
	c.mu.Unlock()
	c.runFetch(ctx, seq, state)
}

// SetPage moves to a page without resetting the other fields.
func (c *Controller) SetPage(ctx context.Context, page int) {
	c.mu.Lock()
	c.state = c.state.WithPage(page)
	state := c.state
	seq := c.nextSeqLocked()
	c.mu.Unlock()
	c.runFetch(ctx, seq, state)
}

// Reset restores the default filter state and refreshes.
func (c *Controller) Reset(ctx context.Context) {
	c.debounce.Cancel()
	c.mu.Lock()
	c.state = Default()
	state := c.state
	seq := c.nextSeqLocked()
	c.mu.Unlock()
	c.runFetch(ctx, seq, state)
}

// Navigate adopts a state parsed from the address bar, page included.
func (c *Controller) Navigate(ctx context.Context, v url.Values) {
	c.debounce.Cancel()
	c.mu.Lock()
	c.state = FromValues(v)
	state := c.state
	seq := c.nextSeqLocked()
	c.mu.Unlock()
	c.runFetch(ctx, seq, state)
}

func (c *Controller) nextSeqLocked() uint64 {
	c.seq++
	return c.seq
}

func (c *Controller) runFetch(ctx context.Context, seq uint64, state State) {
	page, err := c.fetch(ctx, state)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer fetch was issued while this one was in flight.
		return
	}
	if err != nil {
		c.fetchErr = err
		return
	}
	c.fetchErr = nil
	c.page = page
}
