// Package resilience holds the circuit breaker that fronts remote stores.
package resilience

import (
	"cmp"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State uint8

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// Config tunes a Breaker. Non-positive fields fall back to the defaults.
type Config struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func (c Config) withDefaults() Config {
	c.FailureThreshold = cmp.Or(max(c.FailureThreshold, 0), 3)
	c.OpenTimeout = cmp.Or(max(c.OpenTimeout, 0), 10*time.Second)
	c.HalfOpenProbes = cmp.Or(max(c.HalfOpenProbes, 0), 1)
	return c
}

// Breaker opens after FailureThreshold consecutive failures, rejects calls for
// OpenTimeout and then lets HalfOpenProbes calls through. The breaker closes
// again once every probe succeeds.
type Breaker struct {
	cfg   Config
	clock clockwork.Clock

	mu        sync.Mutex
	state     State
	failures  int
	retryAt   time.Time
	inFlight  int
	succeeded int
}

func NewBreaker(cfg Config, clock clockwork.Clock) *Breaker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Breaker{cfg: cfg.withDefaults(), clock: clock}
}

// Do runs fn under the breaker. Errors matched by ignore are returned to the
// caller but recorded as successes.
func (b *Breaker) Do(fn func() error, ignore func(error) bool) error {
	admitted, err := b.acquire()
	if err != nil {
		return err
	}
	err = fn()
	b.release(admitted, err != nil && (ignore == nil || !ignore(err)))
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && !b.clock.Now().Before(b.retryAt) {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() (State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.clock.Now().Before(b.retryAt) {
			return b.state, ErrCircuitOpen
		}
		b.state, b.inFlight, b.succeeded = StateHalfOpen, 0, 0
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return b.state, ErrCircuitOpen
		}
		b.inFlight++
	}
	return b.state, nil
}

// release records the outcome of a call admitted in state from. Outcomes of
// calls admitted before the last transition only count while closed.
func (b *Breaker) release(from State, failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if from == StateHalfOpen && b.state == StateHalfOpen {
		b.inFlight = max(b.inFlight-1, 0)
		if failed {
			b.trip()
			return
		}
		b.succeeded++
		if b.succeeded >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.state, b.failures = StateClosed, 0
		}
		return
	}
	if b.state != StateClosed {
		return
	}
	if !failed {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.cfg.FailureThreshold {
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.state = StateOpen
	b.retryAt = b.clock.Now().Add(b.cfg.OpenTimeout)
	b.failures, b.inFlight, b.succeeded = 0, 0, 0
}
