// Package mission applies named hardware/service profiles, each a
// sequence of typed actions run on a worker goroutine.
package mission

import (
	"fmt"
	"sync"
	"time"

	"github.com/krakenpi/krakenpi/internal/logging/events"
	"github.com/krakenpi/krakenpi/internal/shell"
	"github.com/krakenpi/krakenpi/internal/state"
)

// ActionKind discriminates the action types a profile may contain.
type ActionKind string

const (
	ActionService ActionKind = "service"
	ActionRfkill  ActionKind = "rfkill"
	ActionExec    ActionKind = "exec"
	ActionLED     ActionKind = "led"
	ActionCPU     ActionKind = "cpu"
)

// Action is one step of a profile.
type Action struct {
	Kind ActionKind
	// Arg carries the service name, rfkill target, shell command, LED
	// trigger, or cpufreq governor, depending on Kind.
	Arg string
	// Enable selects start/unblock for service and rfkill actions.
	Enable bool
}

// Command renders the action as the shell command that applies it.
func (a Action) Command() string {
	switch a.Kind {
	case ActionService:
		verb := "stop"
		if a.Enable {
			verb = "start"
		}
		return fmt.Sprintf("systemctl %s %s", verb, a.Arg)
	case ActionRfkill:
		verb := "block"
		if a.Enable {
			verb = "unblock"
		}
		return fmt.Sprintf("rfkill %s %s", verb, a.Arg)
	case ActionExec:
		return a.Arg
	case ActionLED:
		return fmt.Sprintf("sh -c 'echo %s > /sys/class/leds/led0/trigger'", a.Arg)
	case ActionCPU:
		return fmt.Sprintf("sh -c 'echo %s | tee /sys/devices/system/cpu/cpu*/cpufreq/scaling_governor'", a.Arg)
	}
	return ""
}

// Profile is a named mission preset.
type Profile struct {
	Name    string
	Desc    string
	Actions []Action
}

// Profiles returns the built-in mission presets in display order.
func Profiles() []Profile {
	return []Profile{
		{
			Name: "Stealth",
			Desc: "Radios off, LEDs dark",
			Actions: []Action{
				{Kind: ActionRfkill, Arg: "bluetooth"},
				{Kind: ActionService, Arg: "avahi-daemon"},
				{Kind: ActionLED, Arg: "none"},
				{Kind: ActionCPU, Arg: "powersave"},
			},
		},
		{
			Name: "Recon",
			Desc: "Wifi up, passive scan ready",
			Actions: []Action{
				{Kind: ActionRfkill, Arg: "wifi", Enable: true},
				{Kind: ActionService, Arg: "NetworkManager", Enable: true},
				{Kind: ActionCPU, Arg: "ondemand"},
			},
		},
		{
			Name: "Attack",
			Desc: "Full power, all radios",
			Actions: []Action{
				{Kind: ActionRfkill, Arg: "all", Enable: true},
				{Kind: ActionCPU, Arg: "performance"},
				{Kind: ActionLED, Arg: "heartbeat"},
			},
		},
		{
			Name: "Rogue AP",
			Desc: "Hostapd and dnsmasq up",
			Actions: []Action{
				{Kind: ActionRfkill, Arg: "wifi", Enable: true},
				{Kind: ActionService, Arg: "hostapd", Enable: true},
				{Kind: ActionService, Arg: "dnsmasq", Enable: true},
			},
		},
		{
			Name: "Exfil",
			Desc: "SSH up, usb gadget net",
			Actions: []Action{
				{Kind: ActionService, Arg: "ssh", Enable: true},
				{Kind: ActionExec, Arg: "ifconfig usb0 up"},
			},
		},
		{
			Name: "Quiet Net",
			Desc: "Drop chatty services",
			Actions: []Action{
				{Kind: ActionService, Arg: "avahi-daemon"},
				{Kind: ActionService, Arg: "cups"},
				{Kind: ActionService, Arg: "bluetooth"},
			},
		},
		{
			Name: "Battery Saver",
			Desc: "Minimum draw",
			Actions: []Action{
				{Kind: ActionCPU, Arg: "powersave"},
				{Kind: ActionLED, Arg: "none"},
				{Kind: ActionRfkill, Arg: "bluetooth"},
			},
		},
		{
			Name: "Reset",
			Desc: "Back to defaults",
			Actions: []Action{
				{Kind: ActionRfkill, Arg: "all", Enable: true},
				{Kind: ActionService, Arg: "NetworkManager", Enable: true},
				{Kind: ActionCPU, Arg: "ondemand"},
				{Kind: ActionLED, Arg: "mmc0"},
			},
		},
	}
}

// Executor applies profiles one at a time on a worker goroutine.
type Executor struct {
	app *state.App

	mu   sync.Mutex
	busy bool
}

// NewExecutor binds the executor to the shared state for alerts.
func NewExecutor(app *state.App) *Executor {
	return &Executor{app: app}
}

// Busy reports whether a profile is currently being applied.
func (e *Executor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Apply runs the profile's actions in order on a background goroutine
// and reports the success count as an alert. A second Apply while one
// is in flight is rejected with a WARNING alert.
func (e *Executor) Apply(profile Profile) bool {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		e.app.AddAlert("Mission already applying", state.LevelWarning)
		return false
	}
	e.busy = true
	e.mu.Unlock()

	events.Mission.Run(profile.Name)
	e.app.AddAlert(fmt.Sprintf("Applying %s...", profile.Name), state.LevelInfo)

	go func() {
		succeeded := 0
		for _, action := range profile.Actions {
			if err := shell.Run(action.Command(), 20*time.Second); err == nil {
				succeeded++
			}
		}
		events.Mission.Done(profile.Name, succeeded, len(profile.Actions))

		level := state.LevelOK
		if succeeded < len(profile.Actions) {
			level = state.LevelWarning
		}
		e.app.AddAlert(fmt.Sprintf("%s: %d/%d actions ok", profile.Name, succeeded, len(profile.Actions)), level)

		e.mu.Lock()
		e.busy = false
		e.mu.Unlock()
	}()
	return true
}
