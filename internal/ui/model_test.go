package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krakenpi/krakenpi/internal/config"
	"github.com/krakenpi/krakenpi/internal/input"
	"github.com/krakenpi/krakenpi/internal/state"
)

type fakeMode struct {
	name    string
	presses int
	ups     int
}

func (f *fakeMode) Name() string { return f.name }
func (f *fakeMode) Icon() string { return "*" }
func (f *fakeMode) Enter()       {}
func (f *fakeMode) Exit()        {}
func (f *fakeMode) Up()          { f.ups++ }
func (f *fakeMode) Down()        {}
func (f *fakeMode) Left()        {}
func (f *fakeMode) Right()       {}
func (f *fakeMode) Press()       { f.presses++ }
func (f *fakeMode) Key1()        {}
func (f *fakeMode) Key2()        {}
func (f *fakeMode) Key3()        {}

func (f *fakeMode) Render(width int) string { return "frame:" + f.name }

type noCancel struct{}

func (noCancel) Cancel() {}

func newTestModel(modes ...state.Mode) (*Model, *state.App) {
	app := state.New(0)
	app.SetModes(modes)
	d := input.NewDispatcher(app, noCancel{})
	cfg := config.Default()
	return NewModel(app, d, nil, cfg), app
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysMapToButtons(t *testing.T) {
	m1 := &fakeMode{name: "system"}
	m2 := &fakeMode{name: "wifi"}
	model, app := newTestModel(m1, m2)

	model.Update(key("enter"))
	if m1.presses != 1 {
		t.Fatalf("presses = %d", m1.presses)
	}
	model.Update(key("up"))
	if m1.ups != 1 {
		t.Fatalf("ups = %d", m1.ups)
	}
	model.Update(key("right"))
	if app.ModeIndex() != 1 {
		t.Fatalf("mode index = %d", app.ModeIndex())
	}
}

func TestQuitStopsApp(t *testing.T) {
	model, app := newTestModel(&fakeMode{name: "system"})
	_, cmd := model.Update(key("q"))
	if cmd == nil {
		t.Fatal("no quit command returned")
	}
	if app.Running() {
		t.Fatal("app still marked running")
	}
}

func TestFuzzyModeSwitcher(t *testing.T) {
	model, app := newTestModel(
		&fakeMode{name: "system"},
		&fakeMode{name: "responder"},
		&fakeMode{name: "processes"},
	)

	model.Update(key("/"))
	if !model.filtering {
		t.Fatal("filter not opened")
	}
	for _, r := range "resp" {
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	model.Update(key("enter"))
	if model.filtering {
		t.Fatal("filter still open after enter")
	}
	if got := app.CurrentMode().Name(); got != "responder" {
		t.Fatalf("mode after filter = %q", got)
	}
}

func TestFilterEscapeAborts(t *testing.T) {
	model, app := newTestModel(&fakeMode{name: "system"}, &fakeMode{name: "wifi"})
	model.Update(key("/"))
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	model.Update(key("esc"))
	if model.filtering {
		t.Fatal("filter still open after escape")
	}
	if app.ModeIndex() != 0 {
		t.Fatalf("escape switched modes: %d", app.ModeIndex())
	}
}

func TestBacklightTimeout(t *testing.T) {
	model, app := newTestModel(&fakeMode{name: "system"})
	model.cfg.Timing.BacklightTimeout = time.Millisecond
	time.Sleep(5 * time.Millisecond)

	model.Update(tickMsg(time.Now()))
	if app.BacklightOn() {
		t.Fatal("backlight survived the idle timeout")
	}

	view := model.View()
	if !strings.Contains(view, "display off") {
		t.Fatalf("dark view missing:\n%s", view)
	}

	// First key wakes, second reaches the mode.
	mode := app.CurrentMode().(*fakeMode)
	model.Update(key("enter"))
	if !app.BacklightOn() {
		t.Fatal("key did not wake the display")
	}
	if mode.presses != 0 {
		t.Fatal("wake key leaked to the mode")
	}
}

func TestViewShowsModeFrame(t *testing.T) {
	model, app := newTestModel(&fakeMode{name: "system"})
	view := model.View()
	if !strings.Contains(view, "frame:system") {
		t.Fatalf("mode frame missing:\n%s", view)
	}
	if !strings.Contains(view, "system") {
		t.Fatalf("header missing mode name:\n%s", view)
	}

	app.AddAlert("hello operator", state.LevelOK)
	view = model.View()
	if !strings.Contains(view, "hello operator") {
		t.Fatalf("footer missing alert:\n%s", view)
	}
}
