package suggest

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hearthloaf/hearthloaf/internal/models"
)

// Live drives the debounced suggestion pipeline for one input stream. Each
// Update supersedes any pending or in-flight run: results are delivered only
// if no newer update has arrived by the time they are ready, so a slow
// response for an old query can never overwrite a newer one. Superseded
// network calls are allowed to finish; their results are discarded rather
// than aborted.
type Live struct {
	engine   *Engine
	debounce time.Duration
	deliver  func([]models.SearchSuggestion)

	mu        sync.Mutex
	gen       uint64
	delivered uint64
	timer     *time.Timer
	closed    bool

	inFlight atomic.Int32
}

// NewLive creates a debounced pipeline driver. deliver is invoked with the
// results of each run that is still current when it completes; it is never
// invoked for superseded runs or after Close.
func NewLive(engine *Engine, debounce time.Duration, deliver func([]models.SearchSuggestion)) *Live {
	return &Live{
		engine:   engine,
		debounce: debounce,
		deliver:  deliver,
	}
}

// Update feeds the next input value. Bursts of updates within the debounce
// window collapse into a single pipeline run for the latest query.
func (l *Live) Update(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	l.gen++
	gen := l.gen

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() {
		l.run(gen, query)
	})
}

// InFlight reports whether a pipeline run is currently executing. Callers
// use this to distinguish "still loading" from "genuinely no matches"; the
// result list itself never carries a sentinel.
func (l *Live) InFlight() bool {
	return l.inFlight.Load() > 0
}

// Close detaches the driver. Pending timers are stopped and any in-flight
// run's results are discarded.
func (l *Live) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// run executes one pipeline pass for the generation it was scheduled under
func (l *Live) run(gen uint64, query string) {
	if !l.current(gen) {
		return
	}

	l.inFlight.Add(1)
	results := l.engine.Suggest(l.engine.baseCtx, query)
	l.inFlight.Add(-1)

	// Re-check after the suspension point: a newer update may have arrived
	// while the provider calls were outstanding. The delivered watermark
	// keeps a late run from ever landing after a newer one.
	l.mu.Lock()
	if l.closed || gen != l.gen || gen <= l.delivered {
		l.mu.Unlock()
		return
	}
	l.delivered = gen
	l.mu.Unlock()

	l.deliver(results)
}

func (l *Live) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed && gen == l.gen
}
