package mode

import (
	"fmt"
	"sync"

	"github.com/krakenpi/krakenpi/internal/loot"
	"github.com/krakenpi/krakenpi/internal/state"
)

// Loot browses the capture tree.
type Loot struct {
	Base
	env *Env

	mu      sync.Mutex
	menu    *Menu
	entries []loot.Entry
	total   int64
}

// NewLoot builds the loot browser.
func NewLoot(env *Env) *Loot {
	return &Loot{env: env, menu: NewMenu(env.Cfg.Display.MenuRows)}
}

func (m *Loot) Name() string { return "loot" }
func (m *Loot) Icon() string { return "🗁" }

func (m *Loot) Enter() { m.refresh() }

// Key1 refreshes the listing.
func (m *Loot) Key1() { m.refresh() }

func (m *Loot) refresh() {
	go func() {
		entries, err := m.env.Loot.List()
		if err != nil {
			m.env.App.AddAlert("Loot unreadable", state.LevelError)
			return
		}
		var total int64
		items := make([]Item, len(entries))
		for i, e := range entries {
			total += e.Size
			items[i] = Item{
				Label:  e.Rel,
				Status: humanSize(e.Size),
			}
		}
		m.mu.Lock()
		m.entries = entries
		m.total = total
		m.menu.SetItems(items)
		m.mu.Unlock()
		m.env.App.SetRenderNeeded(true)
	}()
}

func (m *Loot) Up() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveUp()
}

func (m *Loot) Down() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu.MoveDown()
}

// Press surfaces the file's details in the alert log so the operator
// can note the path for later retrieval.
func (m *Loot) Press() {
	m.mu.Lock()
	if m.menu.Cursor < 0 || m.menu.Cursor >= len(m.entries) {
		m.mu.Unlock()
		return
	}
	e := m.entries[m.menu.Cursor]
	m.mu.Unlock()
	m.env.App.AddAlert(fmt.Sprintf("%s %s %s", e.Rel, humanSize(e.Size), e.ModTime.Format("15:04")), state.LevelInfo)
}

func (m *Loot) Render(width int) string {
	s := m.env.Styles
	m.mu.Lock()
	defer m.mu.Unlock()
	header := s.Dim.Render(fmt.Sprintf("  %d files, %s", len(m.entries), humanSize(m.total))) + "\n"
	return header + m.menu.Render(s, width)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
