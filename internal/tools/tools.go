// Package tools defines the quick-launch tool catalogue and its toggle
// logic.
package tools

import (
	"fmt"
	"sync"
	"time"

	"github.com/krakenpi/krakenpi/internal/shell"
)

// Tool is one toggleable service or capture process.
type Tool struct {
	Name  string
	Desc  string
	Start string
	Stop  string
	Check string
}

// Catalogue returns the built-in tool list. lootDir parameterises the
// capture output paths.
func Catalogue(lootDir, iface string) []Tool {
	return []Tool{
		{
			Name:  "tcpdump",
			Desc:  "Packet capture",
			Start: fmt.Sprintf("tcpdump -i %s -w %s/captures/dump_$(date +%%Y%%m%%d_%%H%%M%%S).pcap &", iface, lootDir),
			Stop:  "pkill -f tcpdump",
			Check: "pgrep -x tcpdump",
		},
		{
			Name:  "bettercap",
			Desc:  "MITM framework",
			Start: fmt.Sprintf("bettercap -iface %s -no-colors -eval 'net.probe on' &", iface),
			Stop:  "pkill -f bettercap",
			Check: "pgrep -f bettercap",
		},
		{
			Name:  "hostapd",
			Desc:  "Rogue AP daemon",
			Start: "systemctl start hostapd",
			Stop:  "systemctl stop hostapd",
			Check: "systemctl is-active hostapd",
		},
		{
			Name:  "dnsmasq",
			Desc:  "DHCP/DNS server",
			Start: "systemctl start dnsmasq",
			Stop:  "systemctl stop dnsmasq",
			Check: "systemctl is-active dnsmasq",
		},
		{
			Name:  "tshark",
			Desc:  "Terminal wireshark",
			Start: fmt.Sprintf("tshark -i %s -w %s/captures/tshark_$(date +%%Y%%m%%d_%%H%%M%%S).pcapng &", iface, lootDir),
			Stop:  "pkill -f tshark",
			Check: "pgrep -x tshark",
		},
		{
			Name:  "ncat listener",
			Desc:  "Shell catcher :4444",
			Start: fmt.Sprintf("ncat -lvnp 4444 > %s/shells/ncat_$(date +%%Y%%m%%d_%%H%%M%%S).log 2>&1 &", lootDir),
			Stop:  "pkill -f 'ncat -lvnp 4444'",
			Check: "pgrep -f 'ncat -lvnp 4444'",
		},
		{
			Name:  "ssh",
			Desc:  "Remote access",
			Start: "systemctl start ssh",
			Stop:  "systemctl stop ssh",
			Check: "systemctl is-active ssh",
		},
	}
}

// Manager tracks running state for the catalogue.
type Manager struct {
	tools []Tool

	mu      sync.Mutex
	running map[string]bool
}

// NewManager builds a manager over the given catalogue.
func NewManager(tools []Tool) *Manager {
	return &Manager{tools: tools, running: make(map[string]bool)}
}

// Tools returns the catalogue in display order.
func (m *Manager) Tools() []Tool {
	return m.tools
}

// Refresh re-probes every tool's liveness. Probes run shell commands,
// so this belongs on the background poller, not the render path.
func (m *Manager) Refresh() {
	status := make(map[string]bool, len(m.tools))
	for _, t := range m.tools {
		status[t.Name] = shell.Check(t.Check, 5*time.Second)
	}
	m.mu.Lock()
	m.running = status
	m.mu.Unlock()
}

// Running reports the cached liveness of a tool.
func (m *Manager) Running(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running[name]
}

// Toggle starts the tool when stopped and stops it when running,
// returning the action taken.
func (m *Manager) Toggle(name string) (started bool, err error) {
	var tool *Tool
	for i := range m.tools {
		if m.tools[i].Name == name {
			tool = &m.tools[i]
			break
		}
	}
	if tool == nil {
		return false, fmt.Errorf("unknown tool %q", name)
	}

	if m.Running(name) {
		if err := shell.Run(tool.Stop, 15*time.Second); err != nil {
			return false, fmt.Errorf("stop %s: %w", name, err)
		}
		m.mu.Lock()
		m.running[name] = false
		m.mu.Unlock()
		return false, nil
	}

	if err := shell.Run(tool.Start, 15*time.Second); err != nil {
		return false, fmt.Errorf("start %s: %w", name, err)
	}
	m.mu.Lock()
	m.running[name] = true
	m.mu.Unlock()
	return true, nil
}
