package mode

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/krakenpi/krakenpi/internal/theme"
)

// Item is one selectable menu row.
type Item struct {
	Icon        string
	Label       string
	Status      string
	StatusStyle *lipgloss.Style
	Invoke      func()
}

// Menu is a scrollable list of items with a cursor. Modes rebuild the
// item slice on Enter or refresh and keep the cursor stable where
// possible.
type Menu struct {
	Items          []Item
	Cursor         int
	ViewportOffset int
	MaxVisible     int
}

// NewMenu builds a menu showing up to maxVisible rows.
func NewMenu(maxVisible int) *Menu {
	if maxVisible <= 0 {
		maxVisible = 7
	}
	return &Menu{MaxVisible: maxVisible}
}

// SetItems replaces the rows, clamping the cursor into range.
func (m *Menu) SetItems(items []Item) {
	m.Items = items
	if m.Cursor >= len(items) {
		m.Cursor = len(items) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.ensureVisible()
}

// MoveUp moves the cursor one row up, reporting movement.
func (m *Menu) MoveUp() bool { return m.moveBy(-1) }

// MoveDown moves the cursor one row down, reporting movement.
func (m *Menu) MoveDown() bool { return m.moveBy(1) }

func (m *Menu) moveBy(delta int) bool {
	if len(m.Items) == 0 {
		m.Cursor = 0
		return false
	}
	old := m.Cursor
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(m.Items) {
		m.Cursor = len(m.Items) - 1
	}
	m.ensureVisible()
	return m.Cursor != old
}

// Selected returns the item under the cursor.
func (m *Menu) Selected() (Item, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		return Item{}, false
	}
	return m.Items[m.Cursor], true
}

// InvokeSelected runs the selected item's action.
func (m *Menu) InvokeSelected() {
	if item, ok := m.Selected(); ok && item.Invoke != nil {
		item.Invoke()
	}
}

func (m *Menu) ensureVisible() {
	if len(m.Items) == 0 {
		m.ViewportOffset = 0
		return
	}
	maxOffset := len(m.Items) - m.MaxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.ViewportOffset > maxOffset {
		m.ViewportOffset = maxOffset
	}
	if m.ViewportOffset < 0 {
		m.ViewportOffset = 0
	}
	if m.Cursor < m.ViewportOffset {
		m.ViewportOffset = m.Cursor
	}
	upper := m.ViewportOffset + m.MaxVisible - 1
	if m.Cursor > upper {
		m.ViewportOffset = m.Cursor - m.MaxVisible + 1
	}
}

// Render draws the visible window of the menu.
func (m *Menu) Render(styles *theme.Styles, width int) string {
	if len(m.Items) == 0 {
		return styles.Dim.Render("  (empty)")
	}
	if width < 10 {
		width = 40
	}
	end := m.ViewportOffset + m.MaxVisible
	if end > len(m.Items) {
		end = len(m.Items)
	}
	var b strings.Builder
	for i := m.ViewportOffset; i < end; i++ {
		item := m.Items[i]
		row := item.Label
		if item.Icon != "" {
			row = item.Icon + " " + row
		}
		if item.Status != "" {
			statusStyle := item.StatusStyle
			if statusStyle == nil {
				statusStyle = styles.Dim
			}
			row += " " + statusStyle.Render(item.Status)
		}
		row = truncate.StringWithTail(row, uint(width-2), "…")
		if i == m.Cursor {
			b.WriteString(styles.SelectedIndicator.Render(">") + styles.SelectedItem.Render(" "+row))
		} else {
			b.WriteString(styles.Item.Render("  " + row))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(m.Items) {
		b.WriteString("\n" + styles.Dim.Render("  ↓ more"))
	}
	return b.String()
}
