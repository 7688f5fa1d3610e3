// Package input translates physical button events into mode handler
// calls.
package input

import (
	"fmt"

	"github.com/muesli/reflow/truncate"

	"github.com/krakenpi/krakenpi/internal/logging"
	"github.com/krakenpi/krakenpi/internal/logging/events"
	"github.com/krakenpi/krakenpi/internal/state"
)

// Button identifies one of the eight physical controls.
type Button string

const (
	Up    Button = "up"
	Down  Button = "down"
	Left  Button = "left"
	Right Button = "right"
	Press Button = "press"
	Key1  Button = "key1"
	Key2  Button = "key2"
	Key3  Button = "key3"
)

const panicSnippetLen = 30

// Handler is the button surface a mode exposes.
type Handler interface {
	Name() string
	Up()
	Down()
	Left()
	Right()
	Press()
	Key1()
	Key2()
	Key3()
}

// Canceller stops the in-flight payload. Satisfied by the payload
// runner.
type Canceller interface {
	Cancel()
}

// Dispatcher routes button events: waking a dark display swallows the
// event, KEY3 during a payload cancels it, LEFT/RIGHT switch modes, and
// everything else lands on the active mode's handler.
type Dispatcher struct {
	app    *state.App
	cancel Canceller
}

// NewDispatcher wires the dispatcher to the shared state and the
// payload canceller.
func NewDispatcher(app *state.App, cancel Canceller) *Dispatcher {
	return &Dispatcher{app: app, cancel: cancel}
}

// Handle processes one button event.
func (d *Dispatcher) Handle(b Button) {
	if !d.app.BacklightOn() {
		d.app.SetBacklight(true)
		d.app.ResetActivity()
		events.Button.Wake(string(b))
		return
	}

	d.app.ResetActivity()
	d.app.SetRenderNeeded(true)

	// KEY3 is the panic button while a payload runs.
	if b == Key3 && d.app.IsPayloadRunning() {
		d.cancel.Cancel()
		return
	}

	mode := d.app.CurrentMode()
	if mode == nil {
		return
	}
	events.Button.Press(string(b), mode.Name())

	// LEFT and RIGHT always switch modes.
	if b == Left || b == Right {
		delta := 1
		if b == Left {
			delta = -1
		}
		d.app.ChangeMode(delta)
		if next := d.app.CurrentMode(); next != nil {
			events.Mode.Switch(mode.Name(), next.Name())
		}
		return
	}

	handler, ok := mode.(Handler)
	if !ok {
		return
	}
	d.dispatch(handler, b)
}

// dispatch invokes the handler for b, converting a panic into an ERROR
// alert so one bad mode cannot take the console down.
func (d *Dispatcher) dispatch(handler Handler, b Button) {
	defer func() {
		if v := recover(); v != nil {
			detail := truncate.StringWithTail(fmt.Sprint(v), panicSnippetLen, "…")
			events.Button.HandlerPanic(string(b), handler.Name(), detail)
			logging.Error(fmt.Errorf("button %s in %s panicked: %v", b, handler.Name(), v))
			d.app.AddAlert("Input error: "+detail, state.LevelError)
		}
	}()

	// Left and Right never reach here; Handle consumes them as mode
	// switches.
	switch b {
	case Up:
		handler.Up()
	case Down:
		handler.Down()
	case Press:
		handler.Press()
	case Key1:
		handler.Key1()
	case Key2:
		handler.Key2()
	case Key3:
		handler.Key3()
	}
}
