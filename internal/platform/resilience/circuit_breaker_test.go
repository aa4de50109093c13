package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("Allow before threshold returned error: %v", err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen after threshold, got %v", err)
	}
	if got := b.State(); got != CircuitStateOpen {
		t.Fatalf("unexpected state: got=%s want=%s", got, CircuitStateOpen)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.RecordFailure()
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	now = now.Add(20 * time.Millisecond)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe rejected: %v", err)
	}
	b.RecordSuccess()

	if got := b.State(); got != CircuitStateClosed {
		t.Fatalf("unexpected state after recovery: got=%s want=%s", got, CircuitStateClosed)
	}
}

func TestSingleFlight_Deduplicates(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err, _ := g.Do("key", func() (any, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
			if err != nil {
				t.Errorf("Do error: %v", err)
			}
			if out != 42 {
				t.Errorf("unexpected value: %v", out)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly one execution, got %d", got)
	}
}
