package mode

import (
	"fmt"
	"sync"
	"syscall"

	"github.com/krakenpi/krakenpi/internal/state"
	"github.com/krakenpi/krakenpi/internal/sysinfo"
)

// Processes is the process browser. Press sends SIGTERM to the selected
// process, Key2 sends SIGKILL; both are confirm-guarded.
type Processes struct {
	Base
	env *Env

	mu   sync.Mutex
	menu *Menu
	rows []sysinfo.Process
}

// NewProcesses builds the process browser.
func NewProcesses(env *Env) *Processes {
	return &Processes{env: env, menu: NewMenu(env.Cfg.Display.MenuRows)}
}

func (m *Processes) Name() string { return "processes" }
func (m *Processes) Icon() string { return "☰" }

func (m *Processes) Enter() { m.refresh() }

func (m *Processes) refresh() {
	go func() {
		rows, err := sysinfo.TopProcesses(m.env.Cfg.Display.ProcessRows)
		if err != nil {
			m.env.App.AddAlert("Process list failed", state.LevelError)
			return
		}
		items := make([]Item, len(rows))
		for i, p := range rows {
			items[i] = Item{
				Label:  fmt.Sprintf("%5d %-12.12s", p.PID, p.Name),
				Status: fmt.Sprintf("%4.1f%% %4.0fM", p.CPU, p.MemMB),
			}
		}
		m.mu.Lock()
		m.rows = rows
		m.menu.SetItems(items)
		m.mu.Unlock()
		m.env.App.SetRenderNeeded(true)
	}()
}

func (m *Processes) Up() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveUp()
}

func (m *Processes) Down() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveDown()
}

// Key1 refreshes the listing.
func (m *Processes) Key1() { m.refresh() }

func (m *Processes) Press() { m.signalSelected(syscall.SIGTERM, "TERM") }

// Key2 escalates to SIGKILL.
func (m *Processes) Key2() { m.signalSelected(syscall.SIGKILL, "KILL") }

func (m *Processes) signalSelected(sig syscall.Signal, label string) {
	m.mu.Lock()
	if m.menu.Cursor < 0 || m.menu.Cursor >= len(m.rows) {
		m.mu.Unlock()
		return
	}
	p := m.rows[m.menu.Cursor]
	m.mu.Unlock()
	ticket := fmt.Sprintf("proc:%s:%d", label, p.PID)
	if !m.env.App.RequestConfirm(ticket, m.env.Cfg.Timing.ConfirmWindow) {
		m.env.App.AddAlert(fmt.Sprintf("Press again: %s %s", label, p.Name), state.LevelWarning)
		return
	}
	if err := sysinfo.SendSignal(p.PID, sig); err != nil {
		m.env.App.AddAlert(fmt.Sprintf("%s %s failed", label, p.Name), state.LevelError)
		return
	}
	m.env.App.AddAlert(fmt.Sprintf("%s sent to %s", label, p.Name), state.LevelOK)
	m.refresh()
}

func (m *Processes) Render(width int) string {
	s := m.env.Styles
	header := s.Dim.Render("  PID   NAME          CPU  MEM") + "\n"
	m.mu.Lock()
	defer m.mu.Unlock()
	return header + m.menu.Render(s, width)
}
