package mode

import (
	"sync"

	"github.com/krakenpi/krakenpi/internal/state"
)

// Tools toggles the quick-launch tool catalogue.
type Tools struct {
	Base
	env *Env

	mu   sync.Mutex
	menu *Menu
}

// NewTools builds the tool toggle screen.
func NewTools(env *Env) *Tools {
	m := &Tools{env: env, menu: NewMenu(env.Cfg.Display.MenuRows)}
	m.rebuild()
	return m
}

func (m *Tools) Name() string { return "tools" }
func (m *Tools) Icon() string { return "🛠" }

func (m *Tools) Enter() {
	go func() {
		m.env.Tools.Refresh()
		m.rebuild()
		m.env.App.SetRenderNeeded(true)
	}()
}

func (m *Tools) rebuild() {
	catalogue := m.env.Tools.Tools()
	items := make([]Item, len(catalogue))
	for i, t := range catalogue {
		t := t
		status := "off"
		style := m.env.Styles.Dim
		if m.env.Tools.Running(t.Name) {
			status = "ON"
			style = m.env.Styles.StatusOK
		}
		items[i] = Item{
			Label:       t.Name,
			Status:      status,
			StatusStyle: style,
			Invoke:      func() { m.toggle(t.Name) },
		}
	}
	m.mu.Lock()
	m.menu.SetItems(items)
	m.mu.Unlock()
}

func (m *Tools) toggle(name string) {
	go func() {
		started, err := m.env.Tools.Toggle(name)
		if err != nil {
			m.env.App.AddAlert(name+" toggle failed", state.LevelError)
			return
		}
		if started {
			m.env.App.AddAlert(name+" started", state.LevelOK)
		} else {
			m.env.App.AddAlert(name+" stopped", state.LevelOK)
		}
		m.rebuild()
		m.env.App.SetRenderNeeded(true)
	}()
}

// Actions lists tool names for the headless surface.
func (m *Tools) Actions() []string {
	catalogue := m.env.Tools.Tools()
	names := make([]string, len(catalogue))
	for i, t := range catalogue {
		names[i] = t.Name
	}
	return names
}

// Invoke toggles tool i.
func (m *Tools) Invoke(i int) bool {
	catalogue := m.env.Tools.Tools()
	if i < 0 || i >= len(catalogue) {
		return false
	}
	m.toggle(catalogue[i].Name)
	return true
}

func (m *Tools) Up() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveUp()
}

func (m *Tools) Down() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveDown()
}

func (m *Tools) Press() {
	m.mu.Lock()
	item, ok := m.menu.Selected()
	m.mu.Unlock()
	if ok && item.Invoke != nil {
		item.Invoke()
	}
}

// Key1 re-probes tool liveness.
func (m *Tools) Key1() { m.Enter() }

func (m *Tools) Render(width int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.menu.Render(m.env.Styles, width)
}
