package backend

import (
	"testing"
	"time"

	"github.com/krakenpi/krakenpi/internal/sysinfo"
	"github.com/krakenpi/krakenpi/internal/tools"
)

func TestWatcherEmitsAndStops(t *testing.T) {
	cache := &sysinfo.Cache{}
	mgr := tools.NewManager(nil)
	w := NewWatcher(50*time.Millisecond, cache, mgr)

	sawVitals := false
	deadline := time.After(5 * time.Second)
	for !sawVitals {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatal("events channel closed early")
			}
			if evt.Kind == KindVitals {
				if _, isVitals := evt.Data.(sysinfo.Vitals); !isVitals {
					t.Fatalf("vitals event carried %T", evt.Data)
				}
				sawVitals = true
			}
		case <-deadline:
			t.Fatal("no vitals event emitted")
		}
	}

	// The cache is refreshed as a side effect.
	if cache.Load().SampledAt.IsZero() {
		t.Fatal("vitals cache never stored")
	}

	w.Stop()
	w.Wait()
	// After Wait the channel drains and closes.
	for {
		if _, ok := <-w.Events(); !ok {
			return
		}
	}
}

func TestThrottleEnforcesSpacing(t *testing.T) {
	th := newThrottle(50 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("three waits completed in %v", elapsed)
	}
}

func TestThrottleZeroIntervalIsFree(t *testing.T) {
	th := newThrottle(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		th.wait()
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("zero-interval throttle blocked for %v", elapsed)
	}
}
