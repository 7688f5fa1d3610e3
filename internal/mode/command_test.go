package mode

import (
	"strings"
	"testing"
	"time"

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

func testEnv(t *testing.T) *Env {
	t.Helper()
	app := state.New(0)
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Paths.LootDir = cfg.Paths.BaseDir + "/loot"
	cfg.Paths.Credentials = cfg.Paths.BaseDir + "/creds.json"
	runner := payload.NewRunner(app)
	return &Env{
		App:      app,
		Runner:   runner,
		Cfg:      cfg,
		Styles:   theme.Default(),
		Loot:     loot.NewStore(cfg.Paths.LootDir),
		Vitals:   &sysinfo.Cache{},
		Tools:    tools.NewManager(tools.Catalogue(cfg.Paths.LootDir, cfg.Interfaces.Primary)),
		Missions: mission.NewExecutor(app),
		Creds:    wifi.NewCredStore(cfg.Paths.Credentials),
	}
}

func waitForPayload(t *testing.T, env *Env) {
	t.Helper()
	h := env.Runner.Active()
	if h == nil {
		return
	}
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("payload never finished")
	}
}

func TestCommandModeLaunchesPayload(t *testing.T) {
	env := testEnv(t)
	m := newCommandMode(env, "probe", "?", []commandEntry{
		{Label: "truth", Command: func() string { return "/bin/true" }, Timeout: 10 * time.Second},
	})
	m.Press()
	waitForPayload(t, env)
	if got := env.App.PayloadStatus(); got != state.PayloadSuccess {
		t.Fatalf("status = %v", got)
	}
}

func TestCommandModeConfirmGuard(t *testing.T) {
	env := testEnv(t)
	ran := false
	m := newCommandMode(env, "danger", "!", []commandEntry{
		{Label: "wipe", Confirm: true, Action: func() { ran = true }},
	})

	m.Press()
	if ran {
		t.Fatal("confirmed action ran on first press")
	}
	alerts := env.App.Alerts()
	last := alerts[len(alerts)-1]
	if last.Level != state.LevelWarning || !strings.Contains(last.Message, "Press again") {
		t.Fatalf("unexpected alert: %+v", last)
	}

	m.Press()
	if !ran {
		t.Fatal("second press within the window did not run the action")
	}
}

func TestCommandModeDefaultTimeout(t *testing.T) {
	env := testEnv(t)
	m := newCommandMode(env, "plain", ".", []commandEntry{
		{Label: "noop", Command: func() string { return "/bin/true" }},
	})
	m.Press()
	waitForPayload(t, env)
	if got := env.App.PayloadStatus(); got != state.PayloadSuccess {
		t.Fatalf("status = %v", got)
	}
}

func TestAllModesWellFormed(t *testing.T) {
	env := testEnv(t)
	modes := All(env)
	if len(modes) != 13 {
		t.Fatalf("expected 13 modes, got %d", len(modes))
	}
	seen := map[string]bool{}
	for _, m := range modes {
		if m.Name() == "" || m.Icon() == "" {
			t.Fatalf("mode with empty identity: %T", m)
		}
		if seen[m.Name()] {
			t.Fatalf("duplicate mode name %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if modes[0].Name() != "system" {
		t.Fatalf("first mode = %q", modes[0].Name())
	}
	if modes[len(modes)-1].Name() != "alerts" {
		t.Fatalf("last mode = %q", modes[len(modes)-1].Name())
	}
}

func TestModesRenderWithoutEntering(t *testing.T) {
	env := testEnv(t)
	for _, m := range All(env) {
		if out := m.Render(40); out == "" {
			t.Fatalf("mode %s rendered nothing", m.Name())
		}
	}
}
