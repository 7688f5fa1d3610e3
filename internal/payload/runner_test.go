package payload

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/krakenpi/krakenpi/internal/state"
)

func waitDone(t *testing.T, h *Handle, within time.Duration) state.PayloadStatus {
	t.Helper()
	select {
	case <-h.Done():
		return h.Status()
	case <-time.After(within):
		t.Fatalf("payload did not finish within %v", within)
		return ""
	}
}

func lastAlert(t *testing.T, app *state.App) state.Alert {
	t.Helper()
	alerts := app.Alerts()
	if len(alerts) == 0 {
		t.Fatal("no alerts recorded")
	}
	return alerts[len(alerts)-1]
}

func TestRunSuccess(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	h := r.Run("Probe", "/bin/true", 10*time.Second, nil)
	if h == nil {
		t.Fatal("Run returned nil handle")
	}
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadSuccess {
		t.Fatalf("status = %v", got)
	}
	if got := app.PayloadStatus(); got != state.PayloadSuccess {
		t.Fatalf("state status = %v", got)
	}
	if app.CurrentPayload() != nil {
		t.Fatal("descriptor not cleared")
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelOK || !strings.Contains(alert.Message, "Probe done") {
		t.Fatalf("unexpected alert: %+v", alert)
	}
}

func TestRunFailureTruncatesStderr(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	long := strings.Repeat("x", 120)
	h := r.Run("Bad", "echo "+long+" >&2; exit 3", 10*time.Second, nil)
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadFailed {
		t.Fatalf("status = %v", got)
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelError {
		t.Fatalf("alert level = %v", alert.Level)
	}
	if !strings.HasPrefix(alert.Message, "Bad failed: ") {
		t.Fatalf("alert message = %q", alert.Message)
	}
	detail := strings.TrimPrefix(alert.Message, "Bad failed: ")
	if n := len([]rune(detail)); n > stderrSnippetLen {
		t.Fatalf("stderr snippet too long: %d runes", n)
	}
}

func TestRunTimeoutKillsGroup(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	start := time.Now()
	h := r.Run("Slow", "sleep 30", time.Second, nil)
	if got := waitDone(t, h, 10*time.Second); got != state.PayloadTimeout {
		t.Fatalf("status = %v", got)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("timeout took %v, group kill likely failed", elapsed)
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelWarning || !strings.Contains(alert.Message, "timed out") {
		t.Fatalf("unexpected alert: %+v", alert)
	}
}

func TestCancelWinsOverExit(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	h := r.Run("Long", "sleep 30", time.Minute, nil)
	time.Sleep(100 * time.Millisecond)
	r.Cancel()
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadCancelled {
		t.Fatalf("status = %v", got)
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelWarning || !strings.Contains(alert.Message, "cancelled") {
		t.Fatalf("unexpected alert: %+v", alert)
	}
	// Second cancel with nothing running is a no-op.
	r.Cancel()
}

func TestSingleFlight(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	first := r.Run("First", "sleep 5", time.Minute, nil)
	if first == nil {
		t.Fatal("first run rejected")
	}
	second := r.Run("Second", "/bin/true", time.Minute, nil)
	if second != nil {
		t.Fatal("second concurrent run accepted")
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelWarning || alert.Message != "Payload already running" {
		t.Fatalf("unexpected alert: %+v", alert)
	}

	r.Cancel()
	waitDone(t, first, 5*time.Second)

	// A new run is accepted once the previous one terminates.
	again := r.Run("Again", "/bin/true", time.Minute, nil)
	if again == nil {
		t.Fatal("run after terminal state rejected")
	}
	if got := waitDone(t, again, 5*time.Second); got != state.PayloadSuccess {
		t.Fatalf("status = %v", got)
	}
}

func TestOnCompletePanicContained(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	h := r.Run("Hooked", "/bin/true", time.Minute, func(state.PayloadStatus) {
		panic("boom")
	})
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadSuccess {
		t.Fatalf("status = %v", got)
	}
	// The runner must be reusable after the hook panicked.
	if r.Active() != nil {
		t.Fatal("active handle not cleared")
	}
}

func TestWaitCancelsOnContext(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	h := r.Run("Waited", "sleep 30", time.Minute, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if got := r.Wait(ctx, h); got != state.PayloadCancelled {
		t.Fatalf("status = %v", got)
	}
}

func TestRunStartFailure(t *testing.T) {
	app := state.New(0)
	r := NewRunner(app)

	// sh itself always spawns, so a missing binary surfaces as a failed
	// run rather than a start error.
	h := r.Run("NoSuch", "exec /nonexistent/binary", 10*time.Second, nil)
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadFailed {
		t.Fatalf("status = %v", got)
	}
}

func TestSpawnFailureSettlesStateAndHook(t *testing.T) {
	// An empty PATH makes sh itself unresolvable, so Start fails before
	// any process exists.
	t.Setenv("PATH", t.TempDir())
	app := state.New(0)
	r := NewRunner(app)

	var hooked state.PayloadStatus
	h := r.Run("Ghost", "true", 10*time.Second, func(s state.PayloadStatus) { hooked = s })
	if got := waitDone(t, h, 5*time.Second); got != state.PayloadFailed {
		t.Fatalf("handle status = %v", got)
	}
	if got := app.PayloadStatus(); got != state.PayloadFailed {
		t.Fatalf("state status = %v", got)
	}
	if app.CurrentPayload() != nil {
		t.Fatal("descriptor not cleared")
	}
	if hooked != state.PayloadFailed {
		t.Fatalf("completion hook got %v", hooked)
	}
	alert := lastAlert(t, app)
	if alert.Level != state.LevelError {
		t.Fatalf("alert level = %v", alert.Level)
	}
	if r.Active() != nil {
		t.Fatal("single-flight slot left occupied")
	}
}
