package backend

import (
	"context"
	"sync"
	"time"

	"github.com/krakenpi/krakenpi/internal/sysinfo"
	"github.com/krakenpi/krakenpi/internal/tools"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindVitals Kind = iota
	KindTools
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher samples host vitals and tool liveness at a fixed interval and
// publishes events for the console to consume.
type Watcher struct {
	interval time.Duration
	vitals   *sysinfo.Cache
	tools    *tools.Manager

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher polling every interval. The
// vitals cache is refreshed as a side effect so render code can read it
// without waiting on the channel.
func NewWatcher(interval time.Duration, vitals *sysinfo.Cache, mgr *tools.Manager) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		vitals:   vitals,
		tools:    mgr,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startVitalsPoller()
	w.startToolsPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startVitalsPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindVitals, func(ctx context.Context) (interface{}, error) {
		throttle.wait()
		v := sysinfo.Sample()
		w.vitals.Store(v)
		return v, nil
	})
}

func (w *Watcher) startToolsPoller() {
	// Tool probes shell out, so poll them at a fraction of the vitals
	// cadence.
	throttle := newThrottle(2 * time.Second)
	w.wg.Add(1)
	go w.poll(KindTools, func(ctx context.Context) (interface{}, error) {
		throttle.wait()
		w.tools.Refresh()
		status := make(map[string]bool, len(w.tools.Tools()))
		for _, t := range w.tools.Tools() {
			status[t.Name] = w.tools.Running(t.Name)
		}
		return status, nil
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
