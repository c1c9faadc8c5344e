package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

var errDown = errors.New("connection refused")

func fail() error { return errDown }
func pass() error { return nil }

func TestBreaker_OpensThenRecovers(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC))
	b := NewBreaker(Config{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1}, clock)

	_ = b.Do(fail, nil)
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", got)
	}
	_ = b.Do(fail, nil)
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open after threshold failures, got %s", got)
	}

	called := false
	if err := b.Do(func() error { called = true; return nil }, nil); !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short-circuit, err=%v called=%v", err, called)
	}

	clock.Advance(5 * time.Second)
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("expected half-open once the timeout passed, got %s", got)
	}
	if err := b.Do(pass, nil); err != nil {
		t.Fatalf("expected probe to pass, got %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBreaker(Config{FailureThreshold: 1, OpenTimeout: time.Second}, clock)

	_ = b.Do(fail, nil)
	clock.Advance(time.Second)
	if err := b.Do(fail, nil); !errors.Is(err, errDown) {
		t.Fatalf("expected probe error, got %v", err)
	}
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected reopened breaker, got %s", got)
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 2}, clockwork.NewFakeClock())

	_ = b.Do(fail, nil)
	_ = b.Do(pass, nil)
	_ = b.Do(fail, nil)
	if got := b.State(); got != StateClosed {
		t.Fatalf("failures are not consecutive, got %s", got)
	}
}

func TestBreaker_IgnoredErrorsPassThrough(t *testing.T) {
	b := NewBreaker(Config{FailureThreshold: 1}, clockwork.NewFakeClock())
	notFound := errors.New("not found")

	err := b.Do(func() error { return notFound }, func(err error) bool { return errors.Is(err, notFound) })
	if !errors.Is(err, notFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("ignored error must not trip the breaker, got %s", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{FailureThreshold: -1}.withDefaults()
	if cfg.FailureThreshold != 3 || cfg.OpenTimeout != 10*time.Second || cfg.HalfOpenProbes != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
