package mode

import (
	"strings"

	"github.com/krakenpi/krakenpi/internal/state"
)

// Alerts shows the alert history, newest first.
type Alerts struct {
	Base
	env    *Env
	offset int
}

// NewAlerts builds the alert log screen.
func NewAlerts(env *Env) *Alerts {
	return &Alerts{env: env}
}

func (m *Alerts) Name() string { return "alerts" }
func (m *Alerts) Icon() string { return "⚠" }

func (m *Alerts) Enter() { m.offset = 0 }

func (m *Alerts) Up() {
	if m.offset < len(m.env.App.Alerts())-1 {
		m.offset++
	}
}

func (m *Alerts) Down() {
	if m.offset > 0 {
		m.offset--
	}
}

// Key1 clears the history, confirm-guarded.
func (m *Alerts) Key1() {
	if !m.env.App.RequestConfirm("alerts:clear", m.env.Cfg.Timing.ConfirmWindow) {
		m.env.App.AddAlert("Press again to clear", state.LevelWarning)
		return
	}
	m.env.App.ClearAlerts()
	m.offset = 0
}

func (m *Alerts) Render(width int) string {
	s := m.env.Styles
	alerts := m.env.App.Alerts()
	if len(alerts) == 0 {
		return s.Dim.Render("  no alerts")
	}

	rows := m.env.Cfg.Display.MenuRows
	// Walk backwards so the newest alert sits on top, offset scrolls
	// into history.
	var b strings.Builder
	shown := 0
	for i := len(alerts) - 1 - m.offset; i >= 0 && shown < rows; i-- {
		a := alerts[i]
		line := s.Dim.Render(a.Clock()) + " " + s.Level(a.Level).Render(a.Message)
		b.WriteString(line)
		shown++
		if shown < rows && i > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
