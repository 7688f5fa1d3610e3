// Package payload executes operator-selected commands as supervised
// background jobs. Exactly one payload runs at a time; every run ends
// in a terminal status recorded on the shared state and announced as an
// alert.
package payload

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/muesli/reflow/truncate"

	"github.com/krakenpi/krakenpi/internal/logging"
	"github.com/krakenpi/krakenpi/internal/logging/events"
	"github.com/krakenpi/krakenpi/internal/state"
)

// DefaultTimeout applies when a menu item does not carry its own.
const DefaultTimeout = 300 * time.Second

const (
	stderrSnippetLen = 50
	errorSnippetLen  = 40
)

// Handle tracks a single payload run. Done closes once the run reaches
// a terminal status.
type Handle struct {
	name string
	done chan struct{}

	mu        sync.Mutex
	status    state.PayloadStatus
	cancelled bool
}

// Done returns a channel closed when the run finishes.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Status returns the terminal status once Done is closed, or
// PayloadRunning while the payload is still in flight.
func (h *Handle) Status() state.PayloadStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *Handle) markCancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancelled {
		return false
	}
	h.cancelled = true
	return true
}

func (h *Handle) wasCancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

func (h *Handle) finish(status state.PayloadStatus) {
	h.mu.Lock()
	h.status = status
	h.mu.Unlock()
	close(h.done)
}

// Runner owns payload execution. All methods are safe for concurrent
// use.
type Runner struct {
	app *state.App

	mu     sync.Mutex
	active *Handle
	proc   *exec.Cmd
}

// NewRunner builds a runner bound to the shared application state.
func NewRunner(app *state.App) *Runner {
	return &Runner{app: app}
}

// Active returns the handle of the in-flight payload, or nil.
func (r *Runner) Active() *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Run starts command under `sh -c` in its own process group and
// supervises it until exit, timeout, or cancellation. It returns nil
// and raises a WARNING alert when a payload is already running.
// onComplete, if non-nil, is invoked with the terminal status after all
// state has been cleared; a panic inside it is logged and contained.
func (r *Runner) Run(name, command string, timeout time.Duration, onComplete func(state.PayloadStatus)) *Handle {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r.mu.Lock()
	if r.active != nil || r.app.IsPayloadRunning() {
		r.mu.Unlock()
		events.Payload.Rejected(name)
		r.app.AddAlert("Payload already running", state.LevelWarning)
		return nil
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	handle := &Handle{
		name:   name,
		done:   make(chan struct{}),
		status: state.PayloadRunning,
	}

	// The run is recorded before the spawn so a spawn failure settles
	// through the same terminal path as any other failed payload.
	r.app.StartPayload(name, command)

	if err := cmd.Start(); err != nil {
		r.mu.Unlock()
		r.app.AddAlert(fmt.Sprintf("%s: %s", name, snippet(err.Error(), errorSnippetLen)), state.LevelError)
		logging.Error(fmt.Errorf("payload %s: %w", name, err))
		r.app.EndPayload(state.PayloadFailed)
		handle.finish(state.PayloadFailed)
		runHook(onComplete, state.PayloadFailed)
		return handle
	}

	r.active = handle
	r.proc = cmd
	r.mu.Unlock()

	r.app.SetPayloadPID(cmd.Process.Pid)
	r.app.AddAlert(name+" started", state.LevelInfo)
	events.Payload.Start(name, command)

	go r.supervise(handle, cmd, &stderr, timeout, onComplete)
	return handle
}

func (r *Runner) supervise(handle *Handle, cmd *exec.Cmd, stderr *bytes.Buffer, timeout time.Duration, onComplete func(state.PayloadStatus)) {
	start := time.Now()
	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var status state.PayloadStatus
	var err error
	select {
	case err = <-waitErr:
		// Cancellation kills the group, so the wait returning with an
		// error after Cancel means the operator stopped it, not that
		// the tool failed.
		switch {
		case handle.wasCancelled():
			status = state.PayloadCancelled
		case err == nil:
			status = state.PayloadSuccess
		default:
			status = state.PayloadFailed
		}
	case <-timer.C:
		r.killGroup(cmd)
		<-waitErr
		if handle.wasCancelled() {
			status = state.PayloadCancelled
		} else {
			status = state.PayloadTimeout
		}
	}

	name := handle.name
	exitCode := cmd.ProcessState.ExitCode()
	events.Payload.Finish(name, string(status), exitCode, time.Since(start).Seconds())

	switch status {
	case state.PayloadSuccess:
		r.app.AddAlert(fmt.Sprintf("%s done (%ds)", name, int(time.Since(start).Seconds())), state.LevelOK)
	case state.PayloadFailed:
		msg := snippet(stderr.String(), stderrSnippetLen)
		if msg == "" && err != nil {
			msg = snippet(err.Error(), errorSnippetLen)
		}
		r.app.AddAlert(fmt.Sprintf("%s failed: %s", name, msg), state.LevelError)
	case state.PayloadTimeout:
		r.app.AddAlert(fmt.Sprintf("%s timed out (%ds)", name, int(timeout.Seconds())), state.LevelWarning)
	case state.PayloadCancelled:
		r.app.AddAlert(fmt.Sprintf("%s cancelled", name), state.LevelWarning)
	}

	// Record the terminal state before releasing the single-flight
	// slot so observers never see the slot free while the state still
	// says running.
	r.app.EndPayload(status)

	r.mu.Lock()
	r.active = nil
	r.proc = nil
	r.mu.Unlock()

	handle.finish(status)

	runHook(onComplete, status)
}

// runHook invokes the completion callback with the terminal status. A
// panic inside the hook is logged and contained.
func runHook(onComplete func(state.PayloadStatus), status state.PayloadStatus) {
	if onComplete == nil {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			logging.Error(fmt.Errorf("payload completion hook panicked: %v", v))
		}
	}()
	onComplete(status)
}

// Cancel stops the in-flight payload by killing its process group.
// Calling it with nothing running is a no-op.
func (r *Runner) Cancel() {
	r.mu.Lock()
	handle := r.active
	cmd := r.proc
	r.mu.Unlock()
	if handle == nil || cmd == nil {
		return
	}
	if !handle.markCancelled() {
		return
	}
	events.Payload.Cancel(handle.name)
	r.killGroup(cmd)
}

// Wait blocks until the payload finishes or ctx is cancelled. Context
// cancellation cancels the payload and reports the terminal status it
// settles on.
func (r *Runner) Wait(ctx context.Context, handle *Handle) state.PayloadStatus {
	select {
	case <-handle.Done():
	case <-ctx.Done():
		r.Cancel()
		<-handle.Done()
	}
	return handle.Status()
}

func (r *Runner) killGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	pid := cmd.Process.Pid
	events.Payload.KillGroup(pid)
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		// Group may already be gone; fall back to the direct child.
		_ = cmd.Process.Kill()
	}
}

// snippet flattens multi-line tool output into a single display line
// and truncates it for the alert log.
func snippet(s string, width int) string {
	return truncate.StringWithTail(strings.Join(strings.Fields(s), " "), uint(width), "…")
}
