package mode

import (
	"github.com/krakenpi/krakenpi/internal/mission"
)

// Profiles applies mission presets.
type Profiles struct {
	Base
	env      *Env
	menu     *Menu
	profiles []mission.Profile
}

// NewProfiles builds the mission profile screen.
func NewProfiles(env *Env) *Profiles {
	m := &Profiles{env: env, menu: NewMenu(env.Cfg.Display.MenuRows), profiles: mission.Profiles()}
	items := make([]Item, len(m.profiles))
	for i, p := range m.profiles {
		p := p
		items[i] = Item{
			Icon:   "▸",
			Label:  p.Name,
			Status: p.Desc,
			Invoke: func() { env.Missions.Apply(p) },
		}
	}
	m.menu.SetItems(items)
	return m
}

func (m *Profiles) Name() string { return "profiles" }
func (m *Profiles) Icon() string { return "⛭" }

// Actions lists profile names for the headless surface.
func (m *Profiles) Actions() []string {
	names := make([]string, len(m.profiles))
	for i, p := range m.profiles {
		names[i] = p.Name
	}
	return names
}

// Invoke applies profile i.
func (m *Profiles) Invoke(i int) bool {
	if i < 0 || i >= len(m.profiles) {
		return false
	}
	return m.env.Missions.Apply(m.profiles[i])
}

func (m *Profiles) Up()    { m.menu.MoveUp() }
func (m *Profiles) Down()  { m.menu.MoveDown() }
func (m *Profiles) Press() { m.menu.InvokeSelected() }

func (m *Profiles) Render(width int) string {
	s := m.env.Styles
	var header string
	if m.env.Missions.Busy() {
		header = s.Running.Render("applying...") + "\n"
	}
	return header + m.menu.Render(s, width)
}
