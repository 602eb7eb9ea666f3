package sim

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Runner drives an engine in real time, one tick per interval. The engine
// and state themselves are single-threaded; the runner owns them and hands
// out snapshots.
type Runner struct {
	engine  *Engine
	state   *State
	limiter *rate.Limiter

	mu sync.Mutex
}

// NewRunner creates a runner ticking once per interval
func NewRunner(engine *Engine, state *State, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{
		engine:  engine,
		state:   state,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Loop ticks until the context is cancelled
func (r *Runner) Loop(ctx context.Context) error {
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}
		r.mu.Lock()
		r.engine.Tick(r.state)
		r.mu.Unlock()
	}
}

// Snapshot returns a deep copy of the current state
func (r *Runner) Snapshot() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Do runs fn against the live state while holding the runner's lock
func (r *Runner) Do(fn func(*Engine, *State) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.engine, r.state)
}
