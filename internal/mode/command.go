package mode

import (
	"strings"
	"time"

	"github.com/krakenpi/krakenpi/internal/state"
)

// commandEntry is one launchable row of a command menu.
type commandEntry struct {
	Icon    string
	Label   string
	Command func() string
	Timeout time.Duration
	Confirm bool
	// Action, when set, runs instead of dispatching a payload.
	Action func()
}

// commandMode is the shared shape of the menu-of-payloads screens. Each
// concrete mode supplies its entries and may layer extra rendering on
// top.
type commandMode struct {
	Base
	env     *Env
	name    string
	icon    string
	menu    *Menu
	entries []commandEntry
}

func newCommandMode(env *Env, name, icon string, entries []commandEntry) *commandMode {
	m := &commandMode{
		env:     env,
		name:    name,
		icon:    icon,
		menu:    NewMenu(env.Cfg.Display.MenuRows),
		entries: entries,
	}
	m.rebuild()
	return m
}

func (m *commandMode) Name() string { return m.name }
func (m *commandMode) Icon() string { return m.icon }

func (m *commandMode) Enter() { m.rebuild() }

func (m *commandMode) rebuild() {
	items := make([]Item, len(m.entries))
	for i, e := range m.entries {
		e := e
		items[i] = Item{
			Icon:   e.Icon,
			Label:  e.Label,
			Invoke: func() { m.launch(e) },
		}
	}
	m.menu.SetItems(items)
}

func (m *commandMode) launch(e commandEntry) {
	if e.Confirm {
		ticket := m.name + ":" + e.Label
		if !m.env.App.RequestConfirm(ticket, m.env.Cfg.Timing.ConfirmWindow) {
			m.env.App.AddAlert("Press again: "+e.Label, state.LevelWarning)
			return
		}
	}
	if e.Action != nil {
		e.Action()
		return
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = m.env.Cfg.Timing.PayloadTimeout
	}
	m.env.Runner.Run(e.Label, e.Command(), timeout, nil)
}

// Actions lists the entry labels for the headless surface.
func (m *commandMode) Actions() []string {
	labels := make([]string, len(m.entries))
	for i, e := range m.entries {
		labels[i] = e.Label
	}
	return labels
}

// Invoke runs entry i directly. The headless operator typed an explicit
// action number, so the two-press confirmation is skipped.
func (m *commandMode) Invoke(i int) bool {
	if i < 0 || i >= len(m.entries) {
		return false
	}
	e := m.entries[i]
	if e.Action != nil {
		e.Action()
		return true
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = m.env.Cfg.Timing.PayloadTimeout
	}
	m.env.Runner.Run(e.Label, e.Command(), timeout, nil)
	return true
}

func (m *commandMode) Up()    { m.menu.MoveUp() }
func (m *commandMode) Down()  { m.menu.MoveDown() }
func (m *commandMode) Press() { m.menu.InvokeSelected() }

func (m *commandMode) Render(width int) string {
	return m.menu.Render(m.env.Styles, width)
}

// background runs fn off the render path and reports the outcome as an
// alert. Used for slow toggle actions that do not go through the
// payload runner.
func (m *commandMode) background(label string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			m.env.App.AddAlert(label+" failed: "+firstLine(err.Error()), state.LevelError)
			return
		}
		m.env.App.AddAlert(label+" ok", state.LevelOK)
	}()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
