package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last keystroke before a lookup
// is issued.
const DefaultDebounce = 300 * time.Millisecond

// Lookup resolves a query into suggestions. It must honor ctx cancellation.
type Lookup func(ctx context.Context, query string) ([]Suggestion, error)

// Result is a completed lookup. Generation increases with every Submit.
type Result struct {
	Generation  uint64
	Query       string
	Suggestions []Suggestion
	Err         error
}

// Debouncer coalesces bursts of queries into a single lookup and guarantees
// that a result is never delivered once a newer query has been submitted.
// Each Submit bumps the generation, restarts the quiet timer and cancels any
// lookup still in flight.
//
// Results holds at most one undelivered value; an unread result is replaced
// by a newer one.
type Debouncer struct {
	lookup Lookup
	delay  time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	results chan Result
	wg      sync.WaitGroup
}

func NewDebouncer(lookup Lookup, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		lookup:  lookup,
		delay:   delay,
		results: make(chan Result, 1),
	}
}

// Results is closed by Close.
func (d *Debouncer) Results() <-chan Result {
	return d.results
}

// Submit schedules a lookup for query and returns its generation.
func (d *Debouncer) Submit(query string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return d.gen
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, query) })
	return gen
}

func (d *Debouncer) fire(gen uint64, query string) {
	d.mu.Lock()
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()
		res, err := d.lookup(ctx, query)
		d.deliver(ctx, Result{Generation: gen, Query: query, Suggestions: res, Err: err})
	}()
}

func (d *Debouncer) deliver(ctx context.Context, r Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || r.Generation != d.gen || ctx.Err() != nil {
		return
	}
	// only this method sends, and always under mu, so after draining there is
	// room in the buffer
	select {
	case <-d.results:
	default:
	}
	d.results <- r
}

// Close cancels pending work, waits for in-flight lookups to return and closes
// Results. It is safe to call more than once.
func (d *Debouncer) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
	close(d.results)
	d.mu.Unlock()
	d.wg.Wait()
}
