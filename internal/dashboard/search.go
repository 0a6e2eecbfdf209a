package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/skycast-io/skycast/internal/location"
	"go.uber.org/zap"
)

// Searcher is the slice of the location client the search controller needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]location.Place, error)
}

// SearchState is what the dropdown renders: either the popular-cities list
// (empty query), nothing (single character, user still typing), or results.
type SearchState struct {
	Query       string           `json:"query"`
	Loading     bool             `json:"loading"`
	ShowPopular bool             `json:"show_popular"`
	Results     []location.Place `json:"results"`
}

// SearchController debounces query input before hitting the geocoding API.
// Each debounced call carries a generation token; a superseded in-flight
// call arriving late is discarded rather than overwriting newer results.
type SearchController struct {
	searcher Searcher
	logger   *zap.Logger

	delay   time.Duration
	timeout time.Duration
	limit   int

	mu      sync.Mutex
	query   string
	results []location.Place
	popular bool
	loading bool
	timer   *time.Timer
	gen     uint64
	closed  bool
}

func NewSearchController(searcher Searcher, delayMS int, limit int, logger *zap.Logger) *SearchController {
	return &SearchController{
		searcher: searcher,
		logger:   logger,
		delay:    time.Duration(delayMS) * time.Millisecond,
		timeout:  10 * time.Second,
		limit:    limit,
		popular:  true,
	}
}

// SetQuery restarts the debounce timer. Empty input shows the popular list,
// a single character shows nothing, and two or more characters schedule a
// search after the delay elapses uninterrupted.
func (c *SearchController) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.query = query
	c.gen++

	trimmed := strings.TrimSpace(query)
	switch {
	case len(trimmed) == 0:
		c.results = nil
		c.popular = true
		c.loading = false
	case len(trimmed) < 2:
		c.results = nil
		c.popular = false
		c.loading = false
	default:
		c.popular = false
		c.loading = true
		gen := c.gen
		c.timer = time.AfterFunc(c.delay, func() {
			c.runSearch(gen, trimmed)
		})
	}
}

func (c *SearchController) runSearch(gen uint64, query string) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	results, err := c.searcher.Search(ctx, query, c.limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The query moved on while this call was in flight.
	if c.closed || gen != c.gen {
		return
	}

	c.loading = false
	if err != nil {
		c.logger.Warn("Location search failed", zap.String("query", query), zap.Error(err))
		c.results = []location.Place{}
		return
	}
	c.results = results
}

// State returns the current dropdown state. The popular list is filled in
// here so the stored state stays minimal.
func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()

	results := c.results
	if c.popular {
		results = location.PopularCities()
	}

	return SearchState{
		Query:       c.query,
		Loading:     c.loading,
		ShowPopular: c.popular,
		Results:     results,
	}
}

// Close invalidates pending timers and in-flight calls.
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
