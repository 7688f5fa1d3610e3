// Package mode defines the operational screens of the console and the
// shared menu machinery they render with.
package mode

import (
	"github.com/krakenpi/krakenpi/internal/config"
	"github.com/krakenpi/krakenpi/internal/loot"
	"github.com/krakenpi/krakenpi/internal/mission"
	"github.com/krakenpi/krakenpi/internal/payload"
	"github.com/krakenpi/krakenpi/internal/state"
	"github.com/krakenpi/krakenpi/internal/sysinfo"
	"github.com/krakenpi/krakenpi/internal/theme"
	"github.com/krakenpi/krakenpi/internal/tools"
	"github.com/krakenpi/krakenpi/internal/wifi"
)

// Mode is a full operational screen. Every mode handles the eight
// physical buttons and renders a text frame.
type Mode interface {
	Name() string
	Icon() string
	Enter()
	Exit()
	Up()
	Down()
	Left()
	Right()
	Press()
	Key1()
	Key2()
	Key3()
	Render(width int) string
}

// Env bundles the collaborators a mode needs. Each mode keeps the
// pointer rather than copying it.
type Env struct {
	App      *state.App
	Runner   *payload.Runner
	Cfg      config.Config
	Styles   *theme.Styles
	Loot     *loot.Store
	Vitals   *sysinfo.Cache
	Tools    *tools.Manager
	Missions *mission.Executor
	Creds    *wifi.CredStore
}

// Lister is implemented by modes whose actions can be listed and run
// from the headless command line.
type Lister interface {
	Actions() []string
	Invoke(i int) bool
}

// Base provides no-op button handlers so modes only implement the
// buttons they care about.
type Base struct{}

func (Base) Enter() {}
func (Base) Exit()  {}
func (Base) Up()    {}
func (Base) Down()  {}
func (Base) Left()  {}
func (Base) Right() {}
func (Base) Press() {}
func (Base) Key1()  {}
func (Base) Key2()  {}
func (Base) Key3()  {}

// All returns the full mode set in display order.
func All(env *Env) []Mode {
	return []Mode{
		NewSystem(env),
		NewNetwork(env),
		NewNmap(env),
		NewWifi(env),
		NewResponder(env),
		NewMitm(env),
		NewShells(env),
		NewUSB(env),
		NewProcesses(env),
		NewLoot(env),
		NewProfiles(env),
		NewTools(env),
		NewAlerts(env),
	}
}
