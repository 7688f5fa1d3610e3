package input

import (
	"testing"
	"time"

	"github.com/krakenpi/krakenpi/internal/state"
)

type recordingMode struct {
	name    string
	pressed []Button
	boom    bool
}

func (m *recordingMode) Name() string { return m.name }
func (m *recordingMode) Enter()       {}
func (m *recordingMode) Exit()        {}

func (m *recordingMode) record(b Button) {
	if m.boom {
		panic("handler exploded badly enough to need truncation here")
	}
	m.pressed = append(m.pressed, b)
}

func (m *recordingMode) Up()    { m.record(Up) }
func (m *recordingMode) Down()  { m.record(Down) }
func (m *recordingMode) Left()  { m.record(Left) }
func (m *recordingMode) Right() { m.record(Right) }
func (m *recordingMode) Press() { m.record(Press) }
func (m *recordingMode) Key1()  { m.record(Key1) }
func (m *recordingMode) Key2()  { m.record(Key2) }
func (m *recordingMode) Key3()  { m.record(Key3) }

type stubCanceller struct{ calls int }

func (c *stubCanceller) Cancel() { c.calls++ }

func setup(modes ...state.Mode) (*state.App, *stubCanceller, *Dispatcher) {
	app := state.New(0)
	app.SetModes(modes)
	cancel := &stubCanceller{}
	return app, cancel, NewDispatcher(app, cancel)
}

func TestWakeSwallowsEvent(t *testing.T) {
	m := &recordingMode{name: "m"}
	app, _, d := setup(m)
	app.SetBacklight(false)

	d.Handle(Press)
	if !app.BacklightOn() {
		t.Fatal("display not woken")
	}
	if len(m.pressed) != 0 {
		t.Fatalf("wake event reached the mode: %v", m.pressed)
	}

	d.Handle(Press)
	if len(m.pressed) != 1 || m.pressed[0] != Press {
		t.Fatalf("second press not dispatched: %v", m.pressed)
	}
}

func TestKey3CancelsRunningPayload(t *testing.T) {
	m := &recordingMode{name: "m"}
	app, cancel, d := setup(m)
	app.StartPayload("x", "sleep 10")

	d.Handle(Key3)
	if cancel.calls != 1 {
		t.Fatalf("cancel calls = %d", cancel.calls)
	}
	if len(m.pressed) != 0 {
		t.Fatalf("KEY3 leaked to the mode while running: %v", m.pressed)
	}

	app.EndPayload(state.PayloadCancelled)
	d.Handle(Key3)
	if len(m.pressed) != 1 || m.pressed[0] != Key3 {
		t.Fatalf("KEY3 not dispatched when idle: %v", m.pressed)
	}
}

func TestLeftRightSwitchModes(t *testing.T) {
	a := &recordingMode{name: "a"}
	b := &recordingMode{name: "b"}
	app, _, d := setup(a, b)

	d.Handle(Right)
	if app.ModeIndex() != 1 {
		t.Fatalf("index after RIGHT = %d", app.ModeIndex())
	}
	d.Handle(Left)
	if app.ModeIndex() != 0 {
		t.Fatalf("index after LEFT = %d", app.ModeIndex())
	}
	if len(a.pressed)+len(b.pressed) != 0 {
		t.Fatal("mode switch buttons leaked to handlers")
	}
}

func TestHandlerPanicBecomesAlert(t *testing.T) {
	m := &recordingMode{name: "m", boom: true}
	app, _, d := setup(m)

	d.Handle(Press)

	alerts := app.Alerts()
	if len(alerts) == 0 {
		t.Fatal("no alert recorded for panic")
	}
	last := alerts[len(alerts)-1]
	if last.Level != state.LevelError {
		t.Fatalf("alert level = %v", last.Level)
	}
	// Detail is truncated for the tiny display.
	if n := len([]rune(last.Message)); n > len("Input error: ")+panicSnippetLen {
		t.Fatalf("panic alert too long: %q", last.Message)
	}

	// Dispatcher stays usable.
	m.boom = false
	d.Handle(Up)
	if len(m.pressed) != 1 {
		t.Fatal("dispatcher dead after panic")
	}
}

func TestHandleResetsActivity(t *testing.T) {
	m := &recordingMode{name: "m"}
	app, _, d := setup(m)
	before := app.LastActivity()
	time.Sleep(10 * time.Millisecond)
	d.Handle(Down)
	if !app.LastActivity().After(before) {
		t.Fatal("activity not reset")
	}
	if !app.RenderNeeded() {
		t.Fatal("render flag not set")
	}
}
