package mode

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/krakenpi/krakenpi/internal/state"
	"github.com/krakenpi/krakenpi/internal/wifi"
)

// Wifi owns monitor mode and the 802.11 attack menu.
type Wifi struct {
	*commandMode
	primary string
	monitor string

	mu    sync.Mutex
	info  wifi.InterfaceInfo
	monUp bool
}

// NewWifi builds the wireless screen.
func NewWifi(env *Env) *Wifi {
	m := &Wifi{
		primary: env.Cfg.Interfaces.Secondary,
		monitor: env.Cfg.Interfaces.Monitor,
	}
	out := func(sub, prefix, ext string) string { return env.Loot.CapturePath(sub, prefix, ext) }
	entries := []commandEntry{
		{Icon: "◌", Label: "Monitor on", Action: func() {
			m.background("Monitor mode", func() error { return wifi.PrepareMonitor(m.primary) })
		}},
		{Icon: "●", Label: "Monitor off", Action: func() {
			m.background("Managed mode", func() error { return wifi.RestoreManaged(m.monitor) })
		}},
		{Icon: "⌖", Label: "Scan APs", Timeout: 60 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 45 airodump-ng %s -w %s --output-format csv", m.monitor, out("wifi", "scan", "csv"))
		}},
		{Icon: "✍", Label: "Capture handshakes", Timeout: 300 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 280 airodump-ng %s -w %s --output-format pcap", m.monitor, out("wifi", "handshake", "cap"))
		}},
		{Icon: "☄", Label: "Deauth broadcast", Confirm: true, Timeout: 60 * time.Second, Command: func() string {
			return fmt.Sprintf("aireplay-ng --deauth 10 -a FF:FF:FF:FF:FF:FF %s", m.monitor)
		}},
		{Icon: "🗝", Label: "Saved networks", Action: func() { m.showCreds() }},
	}
	m.commandMode = newCommandMode(env, "wifi", "📶", entries)
	return m
}

// Enter re-probes interface state so the header reflects reality.
func (m *Wifi) Enter() {
	m.commandMode.Enter()
	go func() {
		info := wifi.Probe(m.primary)
		up := wifi.MonitorActive(m.monitor)
		m.mu.Lock()
		m.info = info
		m.monUp = up
		m.mu.Unlock()
		m.env.App.SetRenderNeeded(true)
	}()
}

func (m *Wifi) showCreds() {
	ssids, err := m.env.Creds.SSIDs()
	if err != nil {
		m.env.App.AddAlert("Creds unreadable", state.LevelError)
		return
	}
	m.env.App.AddAlert(fmt.Sprintf("%d saved networks", len(ssids)), state.LevelInfo)
}

func (m *Wifi) Render(width int) string {
	s := m.env.Styles
	m.mu.Lock()
	info, monUp := m.info, m.monUp
	m.mu.Unlock()
	var b strings.Builder
	if monUp {
		b.WriteString(s.StatusWarn.Render("MONITOR "+m.monitor) + "\n")
	} else if info.Present {
		line := m.primary + " " + info.Mode
		if info.Channel != "" {
			line += " ch" + info.Channel
		}
		b.WriteString(s.StatusOK.Render(line) + "\n")
	} else {
		b.WriteString(s.Dim.Render(m.primary+" absent") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.menu.Render(s, width))
	return b.String()
}
