package mission

import (
	"strings"
	"testing"
	"time"

	"github.com/krakenpi/krakenpi/internal/state"
)

func TestActionCommands(t *testing.T) {
	cases := []struct {
		action Action
		want   string
	}{
		{Action{Kind: ActionService, Arg: "hostapd", Enable: true}, "systemctl start hostapd"},
		{Action{Kind: ActionService, Arg: "hostapd"}, "systemctl stop hostapd"},
		{Action{Kind: ActionRfkill, Arg: "wifi", Enable: true}, "rfkill unblock wifi"},
		{Action{Kind: ActionRfkill, Arg: "bluetooth"}, "rfkill block bluetooth"},
		{Action{Kind: ActionExec, Arg: "ifconfig usb0 up"}, "ifconfig usb0 up"},
	}
	for _, tc := range cases {
		if got := tc.action.Command(); got != tc.want {
			t.Fatalf("command for %+v = %q, want %q", tc.action, got, tc.want)
		}
	}
	if got := (Action{Kind: ActionLED, Arg: "none"}).Command(); !strings.Contains(got, "led0/trigger") {
		t.Fatalf("led command = %q", got)
	}
	if got := (Action{Kind: ActionCPU, Arg: "performance"}).Command(); !strings.Contains(got, "scaling_governor") {
		t.Fatalf("cpu command = %q", got)
	}
}

func TestProfilesWellFormed(t *testing.T) {
	profiles := Profiles()
	if len(profiles) != 8 {
		t.Fatalf("expected 8 profiles, got %d", len(profiles))
	}
	seen := map[string]bool{}
	for _, p := range profiles {
		if p.Name == "" || len(p.Actions) == 0 {
			t.Fatalf("malformed profile %+v", p)
		}
		if seen[p.Name] {
			t.Fatalf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
		for _, a := range p.Actions {
			if a.Command() == "" {
				t.Fatalf("profile %s has action with empty command: %+v", p.Name, a)
			}
		}
	}
}

func TestExecutorSingleFlight(t *testing.T) {
	app := state.New(0)
	exec := NewExecutor(app)

	// An exec action with a short sleep keeps the worker busy long
	// enough to observe the rejection.
	slow := Profile{Name: "slow", Actions: []Action{{Kind: ActionExec, Arg: "sleep 1"}}}
	if !exec.Apply(slow) {
		t.Fatal("first apply rejected")
	}
	if exec.Apply(slow) {
		t.Fatal("concurrent apply accepted")
	}

	deadline := time.Now().Add(5 * time.Second)
	for exec.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("executor never finished")
		}
		time.Sleep(20 * time.Millisecond)
	}

	alerts := app.Alerts()
	last := alerts[len(alerts)-1]
	if last.Level != state.LevelOK || !strings.Contains(last.Message, "1/1 actions ok") {
		t.Fatalf("unexpected final alert: %+v", last)
	}
}

func TestExecutorReportsPartialFailure(t *testing.T) {
	app := state.New(0)
	exec := NewExecutor(app)

	mixed := Profile{Name: "mixed", Actions: []Action{
		{Kind: ActionExec, Arg: "true"},
		{Kind: ActionExec, Arg: "false"},
	}}
	exec.Apply(mixed)

	deadline := time.Now().Add(5 * time.Second)
	for exec.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("executor never finished")
		}
		time.Sleep(20 * time.Millisecond)
	}

	alerts := app.Alerts()
	last := alerts[len(alerts)-1]
	if last.Level != state.LevelWarning || !strings.Contains(last.Message, "1/2 actions ok") {
		t.Fatalf("unexpected final alert: %+v", last)
	}
}
