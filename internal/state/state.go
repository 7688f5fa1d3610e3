// Package state holds the single authoritative application state shared
// by the render loop, the input dispatcher, and payload worker
// goroutines. Every mutable field lives behind one mutex; accessors
// return snapshot copies so callers never iterate shared storage
// without the lock.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// DefaultAlertCapacity bounds the alert history when no explicit
// capacity is configured.
const DefaultAlertCapacity = 50

// Mode is the minimal lifecycle contract the state layer needs from an
// operational screen. The full button/render surface is defined by the
// consumers that dispatch to it.
type Mode interface {
	Name() string
	Enter()
	Exit()
}

// AlertSink receives every alert as it is recorded, for mirroring to a
// console or log. It is invoked on its own goroutine and must never be
// waited on.
type AlertSink func(Alert)

// App is the thread-safe application state container.
type App struct {
	mu sync.Mutex

	running      bool
	backlightOn  bool
	renderNeeded bool
	lastActivity time.Time

	modes     []Mode
	modeIndex int

	payload  *fsm.FSM
	current  *PayloadInfo
	alerts   []Alert
	alertCap int

	pendingConfirm string
	confirmExpires time.Time

	sink AlertSink
	now  func() time.Time
}

// New constructs the application state. alertCap <= 0 selects the
// default alert capacity.
func New(alertCap int) *App {
	if alertCap <= 0 {
		alertCap = DefaultAlertCapacity
	}
	return &App{
		running:      true,
		backlightOn:  true,
		renderNeeded: true,
		lastActivity: time.Now(),
		payload:      newPayloadFSM(),
		alertCap:     alertCap,
		now:          time.Now,
	}
}

// SetAlertSink registers the fire-and-forget mirror for new alerts.
func (a *App) SetAlertSink(sink AlertSink) {
	a.mu.Lock()
	a.sink = sink
	a.mu.Unlock()
}

// Running reports whether the application is still live.
func (a *App) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// SetRunning flips the application lifecycle flag.
func (a *App) SetRunning(v bool) {
	a.mu.Lock()
	a.running = v
	a.mu.Unlock()
}

// BacklightOn reports whether the display backlight is lit.
func (a *App) BacklightOn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.backlightOn
}

// SetBacklight switches the backlight and marks the frame dirty.
func (a *App) SetBacklight(v bool) {
	a.mu.Lock()
	a.backlightOn = v
	a.renderNeeded = true
	a.mu.Unlock()
}

// RenderNeeded reports the dirty bit for the next render cycle.
func (a *App) RenderNeeded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderNeeded
}

// SetRenderNeeded sets or clears the render dirty bit.
func (a *App) SetRenderNeeded(v bool) {
	a.mu.Lock()
	a.renderNeeded = v
	a.mu.Unlock()
}

// ResetActivity records operator activity for the backlight timeout.
func (a *App) ResetActivity() {
	a.mu.Lock()
	a.lastActivity = a.now()
	a.mu.Unlock()
}

// LastActivity returns the time of the most recent operator input.
func (a *App) LastActivity() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastActivity
}

// SetModes installs the mode registry. Called once at startup before
// any concurrent access begins.
func (a *App) SetModes(modes []Mode) {
	a.mu.Lock()
	a.modes = append([]Mode(nil), modes...)
	a.modeIndex = 0
	a.mu.Unlock()
}

// Modes returns a snapshot of the registered modes.
func (a *App) Modes() []Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Mode(nil), a.modes...)
}

// ModeIndex returns the index of the active mode.
func (a *App) ModeIndex() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modeIndex
}

// CurrentMode returns the active mode, or nil when none are registered.
func (a *App) CurrentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.modes) == 0 || a.modeIndex < 0 || a.modeIndex >= len(a.modes) {
		return nil
	}
	return a.modes[a.modeIndex]
}

// ChangeMode advances the active mode by delta, wrapping around the
// registry. The index update commits under the lock; the lifecycle
// hooks run after it is released because Enter/Exit may issue blocking
// shell probes and must never stall other lock holders. Exit of the
// old mode always precedes Enter of the new one.
func (a *App) ChangeMode(delta int) {
	var oldMode, newMode Mode

	a.mu.Lock()
	if len(a.modes) == 0 {
		a.mu.Unlock()
		return
	}
	oldMode = a.modes[a.modeIndex]
	a.modeIndex = ((a.modeIndex+delta)%len(a.modes) + len(a.modes)) % len(a.modes)
	newMode = a.modes[a.modeIndex]
	a.renderNeeded = true
	a.lastActivity = a.now()
	a.mu.Unlock()

	if oldMode != nil {
		oldMode.Exit()
	}
	if newMode != nil {
		newMode.Enter()
	}
}

// SetModeByName activates the mode with the given name
// (case-insensitive) and reports whether it was found. Switching to the
// already-active mode is a no-op beyond the lookup. Lifecycle hooks run
// outside the lock, Exit before Enter.
func (a *App) SetModeByName(name string) bool {
	var oldMode, newMode Mode
	found := false

	a.mu.Lock()
	for i, m := range a.modes {
		if strings.EqualFold(m.Name(), name) {
			found = true
			if a.modeIndex != i {
				oldMode = a.modes[a.modeIndex]
				a.modeIndex = i
				newMode = m
				a.renderNeeded = true
			}
			break
		}
	}
	a.mu.Unlock()

	if oldMode != nil {
		oldMode.Exit()
	}
	if newMode != nil {
		newMode.Enter()
	}
	return found
}

// AddAlert appends an alert, evicting the oldest entry once the history
// is at capacity, and mirrors it to the registered sink without
// blocking on it.
func (a *App) AddAlert(message string, level AlertLevel) {
	a.mu.Lock()
	alert := Alert{Time: a.now(), Message: message, Level: level}
	a.alerts = append(a.alerts, alert)
	if overflow := len(a.alerts) - a.alertCap; overflow > 0 {
		a.alerts = append(a.alerts[:0], a.alerts[overflow:]...)
	}
	a.renderNeeded = true
	sink := a.sink
	a.mu.Unlock()

	if sink != nil {
		go sink(alert)
	}
}

// Alerts returns a snapshot of the alert history, oldest first.
func (a *App) Alerts() []Alert {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Alert(nil), a.alerts...)
}

// ClearAlerts empties the alert history.
func (a *App) ClearAlerts() {
	a.mu.Lock()
	a.alerts = nil
	a.renderNeeded = true
	a.mu.Unlock()
}

// StartPayload records a payload as running. Starting while another
// payload is still running is a caller contract violation; the
// transition machine rejects it and the existing descriptor is kept.
func (a *App) StartPayload(name, command string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !fireEvent(a.payload, eventStart) {
		return
	}
	a.current = &PayloadInfo{Name: name, Command: command, Start: a.now()}
	a.renderNeeded = true
}

// SetPayloadPID attaches the spawned process id to the live descriptor.
func (a *App) SetPayloadPID(pid int) {
	a.mu.Lock()
	if a.current != nil {
		a.current.PID = pid
	}
	a.mu.Unlock()
}

// EndPayload clears the descriptor and records the terminal status.
// Non-terminal statuses and transitions out of a non-running state are
// ignored.
func (a *App) EndPayload(status PayloadStatus) {
	event, ok := terminalEvents[status]
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !fireEvent(a.payload, event) {
		return
	}
	a.current = nil
	a.renderNeeded = true
}

// PayloadStatus returns the current payload lifecycle status. Terminal
// values persist for display until the next run starts.
func (a *App) PayloadStatus() PayloadStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return PayloadStatus(a.payload.Current())
}

// CurrentPayload returns a copy of the live payload descriptor, or nil
// when nothing is running.
func (a *App) CurrentPayload() *PayloadInfo {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil
	}
	info := *a.current
	return &info
}

// IsPayloadRunning reports whether a payload is currently executing.
func (a *App) IsPayloadRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return PayloadStatus(a.payload.Current()) == PayloadRunning
}

// RequestConfirm implements the two-press guard for destructive
// actions. The first request arms a ticket for the action and returns
// false; a matching request before the ticket expires consumes it and
// returns true; a mismatched or expired request re-arms for the new
// action.
func (a *App) RequestConfirm(action string, timeout time.Duration) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	if a.pendingConfirm == action && now.Before(a.confirmExpires) {
		a.pendingConfirm = ""
		return true
	}
	a.pendingConfirm = action
	a.confirmExpires = now.Add(timeout)
	return false
}

// CancelConfirm discards any outstanding confirmation ticket.
func (a *App) CancelConfirm() {
	a.mu.Lock()
	a.pendingConfirm = ""
	a.mu.Unlock()
}

// PendingConfirm returns the armed action name, if any.
func (a *App) PendingConfirm() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pendingConfirm == "" || !a.now().Before(a.confirmExpires) {
		return "", false
	}
	return a.pendingConfirm, true
}
