// Package ui is the terminal front end: a Bubble Tea model that stands
// in for the appliance's LCD and buttons.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/krakenpi/krakenpi/internal/backend"
	"github.com/krakenpi/krakenpi/internal/config"
	"github.com/krakenpi/krakenpi/internal/input"
	"github.com/krakenpi/krakenpi/internal/state"
	"github.com/krakenpi/krakenpi/internal/theme"
)

var styles = theme.Default()

type tickMsg time.Time

type backendMsg backend.Event

// Model drives the console. Keyboard events map onto the appliance's
// eight buttons; a tick loop reproduces the display's render cadence
// and backlight timeout.
type Model struct {
	app        *state.App
	dispatcher *input.Dispatcher
	watcher    *backend.Watcher
	cfg        config.Config

	width  int
	height int

	filtering bool
	filter    textinput.Model

	quitting bool
}

// NewModel wires the console to the shared state and backend watcher.
func NewModel(app *state.App, dispatcher *input.Dispatcher, watcher *backend.Watcher, cfg config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "mode name"
	ti.Prompt = "/ "
	ti.PromptStyle = *styles.FilterPrompt
	ti.PlaceholderStyle = *styles.FilterPlaceholder
	ti.CharLimit = 32
	return &Model{
		app:        app,
		dispatcher: dispatcher,
		watcher:    watcher,
		cfg:        cfg,
		filter:     ti,
	}
}

// Init starts the tick loop and the backend event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleTick(), m.awaitBackend())
}

func (m *Model) scheduleTick() tea.Cmd {
	interval := m.cfg.Timing.RenderIdle
	if m.app.IsPayloadRunning() {
		interval = m.cfg.Timing.RenderActive
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) awaitBackend() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-m.watcher.Events()
		if !ok {
			return nil
		}
		return backendMsg(evt)
	}
}

// Update handles keys, ticks, and backend events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.app.SetRenderNeeded(true)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		m.checkBacklight()
		return m, m.scheduleTick()

	case backendMsg:
		// The watcher already refreshed the caches; the event is just a
		// redraw hint.
		m.app.SetRenderNeeded(true)
		return m, m.awaitBackend()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		m.app.SetRunning(false)
		return m, tea.Quit
	case "/":
		m.filtering = true
		m.filter.SetValue("")
		m.filter.Focus()
		return m, textinput.Blink
	case "up", "k":
		m.dispatcher.Handle(input.Up)
	case "down", "j":
		m.dispatcher.Handle(input.Down)
	case "left", "h":
		m.dispatcher.Handle(input.Left)
	case "right", "l":
		m.dispatcher.Handle(input.Right)
	case "enter", " ":
		m.dispatcher.Handle(input.Press)
	case "1":
		m.dispatcher.Handle(input.Key1)
	case "2":
		m.dispatcher.Handle(input.Key2)
	case "3", "esc":
		m.dispatcher.Handle(input.Key3)
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		if target := m.bestMatch(m.filter.Value()); target != "" {
			m.app.SetModeByName(target)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// bestMatch fuzzy-ranks the query against mode names.
func (m *Model) bestMatch(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	names := make([]string, 0, len(m.app.Modes()))
	for _, mode := range m.app.Modes() {
		names = append(names, mode.Name())
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// checkBacklight turns the display off after the idle timeout.
func (m *Model) checkBacklight() {
	if !m.app.BacklightOn() {
		return
	}
	if time.Since(m.app.LastActivity()) >= m.cfg.Timing.BacklightTimeout {
		m.app.SetBacklight(false)
	}
}
