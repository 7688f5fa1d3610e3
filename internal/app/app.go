// Package app wires the appliance together: state, payload runner,
// modes, background pollers, and the console front end.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/krakenpi/krakenpi/internal/backend"
	"github.com/krakenpi/krakenpi/internal/config"
	"github.com/krakenpi/krakenpi/internal/input"
	"github.com/krakenpi/krakenpi/internal/logging"
	"github.com/krakenpi/krakenpi/internal/logging/events"
	"github.com/krakenpi/krakenpi/internal/loot"
	"github.com/krakenpi/krakenpi/internal/mission"
	"github.com/krakenpi/krakenpi/internal/mode"
	"github.com/krakenpi/krakenpi/internal/payload"
	"github.com/krakenpi/krakenpi/internal/state"
	"github.com/krakenpi/krakenpi/internal/sysinfo"
	"github.com/krakenpi/krakenpi/internal/theme"
	"github.com/krakenpi/krakenpi/internal/tools"
	"github.com/krakenpi/krakenpi/internal/ui"
	"github.com/krakenpi/krakenpi/internal/wifi"
)

// App is the assembled appliance.
type App struct {
	Cfg        config.Config
	State      *state.App
	Runner     *payload.Runner
	Dispatcher *input.Dispatcher
	Modes      []mode.Mode
	Loot       *loot.Store
	Vitals     *sysinfo.Cache
	Tools      *tools.Manager
}

// New builds the full object graph from configuration.
func New(cfg config.Config) (*App, error) {
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	st := state.New(cfg.Display.AlertCapacity)
	st.SetAlertSink(func(a state.Alert) {
		events.Alert.Raised(string(a.Level), a.Message)
	})

	runner := payload.NewRunner(st)
	lootStore := loot.NewStore(cfg.Paths.LootDir)
	if err := lootStore.EnsureTree(); err != nil {
		return nil, fmt.Errorf("prepare loot tree: %w", err)
	}

	vitals := &sysinfo.Cache{}
	mgr := tools.NewManager(tools.Catalogue(cfg.Paths.LootDir, cfg.Interfaces.Primary))

	env := &mode.Env{
		App:      st,
		Runner:   runner,
		Cfg:      cfg,
		Styles:   theme.Default(),
		Loot:     lootStore,
		Vitals:   vitals,
		Tools:    mgr,
		Missions: mission.NewExecutor(st),
		Creds:    wifi.NewCredStore(cfg.Paths.Credentials),
	}
	modes := mode.All(env)

	adapters := make([]state.Mode, len(modes))
	for i, m := range modes {
		adapters[i] = m
	}
	st.SetModes(adapters)

	return &App{
		Cfg:        cfg,
		State:      st,
		Runner:     runner,
		Dispatcher: input.NewDispatcher(st, runner),
		Modes:      modes,
		Loot:       lootStore,
		Vitals:     vitals,
		Tools:      mgr,
	}, nil
}

// FindMode resolves a mode by name together with its headless action
// surface, when it has one.
func (a *App) FindMode(name string) (mode.Mode, mode.Lister) {
	for _, m := range a.Modes {
		if strings.EqualFold(m.Name(), name) {
			lister, _ := m.(mode.Lister)
			return m, lister
		}
	}
	return nil, nil
}

// RunConsole starts the background pollers and the interactive front
// end, blocking until the operator quits.
func (a *App) RunConsole() error {
	watcher := backend.NewWatcher(a.Cfg.Timing.DataRefresh, a.Vitals, a.Tools)
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.startLootWatcher(ctx)

	model := ui.NewModel(a.State, a.Dispatcher, watcher, a.Cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig, ok := <-sigs
		if !ok {
			return
		}
		events.App.Shutdown(sig.String())
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	a.Shutdown()
	return nil
}

// startLootWatcher surfaces new capture files as alerts. Watch failures
// degrade to an alert rather than blocking startup.
func (a *App) startLootWatcher(ctx context.Context) {
	w, err := loot.NewWatcher(a.Loot, func(rel string) {
		a.State.AddAlert("New loot: "+rel, state.LevelInfo)
	})
	if err != nil {
		logging.Error(err)
		a.State.AddAlert("Loot watcher unavailable", state.LevelWarning)
		return
	}
	go w.Run(ctx)
}

// Shutdown cancels any running payload and gives the kill a moment to
// land.
func (a *App) Shutdown() {
	a.State.SetRunning(false)
	if h := a.Runner.Active(); h != nil {
		a.Runner.Cancel()
		select {
		case <-h.Done():
		case <-time.After(2 * time.Second):
		}
	}
}
