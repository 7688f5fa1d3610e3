package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/krakenpi/krakenpi/internal/logging"
	"github.com/krakenpi/krakenpi/internal/state"
)

const defaultWidth = 60

// View renders the whole console frame. A panic in a mode's renderer
// is logged and replaced with an error frame; the next tick redraws.
func (m *Model) View() (frame string) {
	defer func() {
		if v := recover(); v != nil {
			logging.Error(fmt.Errorf("render panicked: %v", v))
			frame = styles.StatusError.Render("render error, retrying")
		}
	}()
	if m.quitting {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	if !m.app.BacklightOn() {
		return styles.Dim.Render("display off") + "\n" + styles.Dim.Render("press any button to wake")
	}

	var b strings.Builder
	b.WriteString(m.headerView(width))
	b.WriteString("\n\n")
	if mode := m.currentMode(); mode != nil {
		b.WriteString(mode.Render(width))
	}
	b.WriteString("\n\n")
	b.WriteString(m.footerView(width))
	m.app.SetRenderNeeded(false)
	return b.String()
}

func (m *Model) headerView(width int) string {
	title := "krakenpi"
	if mode := m.currentMode(); mode != nil {
		title = fmt.Sprintf("%s %s", mode.Icon(), mode.Name())
	}
	left := styles.Title.Render(title)

	right := m.payloadView()
	pad := width - visibleLen(left) - visibleLen(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (m *Model) payloadView() string {
	status := m.app.PayloadStatus()
	switch status {
	case state.PayloadRunning:
		label := "running"
		if info := m.app.CurrentPayload(); info != nil {
			label = fmt.Sprintf("%s %ds", info.Name, int(info.Elapsed().Seconds()))
		}
		return styles.Running.Render("▶ " + label)
	case state.PayloadSuccess:
		return styles.StatusOK.Render("✓ " + string(status))
	case state.PayloadFailed, state.PayloadTimeout:
		return styles.StatusError.Render("✗ " + string(status))
	case state.PayloadCancelled:
		return styles.StatusWarn.Render("■ " + string(status))
	default:
		return styles.Dim.Render("idle")
	}
}

func (m *Model) footerView(width int) string {
	if m.filtering {
		return m.filter.View()
	}

	var lastAlert string
	if alerts := m.app.Alerts(); len(alerts) > 0 {
		a := alerts[len(alerts)-1]
		lastAlert = styles.Dim.Render(a.Clock()+" ") + styles.Level(a.Level).Render(a.Message)
		lastAlert = truncate.StringWithTail(lastAlert, uint(width), "…")
	}

	hints := styles.Footer.Render("←→ mode  ↑↓ nav  ⏎ run  3 cancel  / find  q quit")
	if lastAlert == "" {
		return hints
	}
	return lastAlert + "\n" + hints
}

func (m *Model) currentMode() renderer {
	mode := m.app.CurrentMode()
	if mode == nil {
		return nil
	}
	r, ok := mode.(renderer)
	if !ok {
		return nil
	}
	return r
}

// renderer is the display surface of a mode.
type renderer interface {
	Name() string
	Icon() string
	Render(width int) string
}

// visibleLen approximates printable width by stripping ANSI sequences.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
