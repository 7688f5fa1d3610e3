// Package wifi probes wireless interfaces and manages monitor mode.
package wifi

import (
	"fmt"
	"strings"
	"time"

	"github.com/krakenpi/krakenpi/internal/shell"
)

const probeTimeout = 5 * time.Second

// InterfaceInfo describes one wireless interface as reported by iw.
type InterfaceInfo struct {
	Name    string
	Present bool
	Mode    string
	Channel string
	MAC     string
}

// Probe inspects a single interface. A missing interface yields
// Present=false rather than an error.
func Probe(iface string) InterfaceInfo {
	info := InterfaceInfo{Name: iface}
	out, err := shell.Output("iw dev "+iface+" info", probeTimeout)
	if err != nil {
		return info
	}
	info.Present = true
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "type "):
			info.Mode = strings.TrimPrefix(line, "type ")
		case strings.HasPrefix(line, "channel "):
			fields := strings.Fields(strings.TrimPrefix(line, "channel "))
			if len(fields) > 0 {
				info.Channel = fields[0]
			}
		case strings.HasPrefix(line, "addr "):
			info.MAC = strings.TrimPrefix(line, "addr ")
		}
	}
	return info
}

// PrepareMonitor kills interfering services and flips iface into
// monitor mode via airmon-ng.
func PrepareMonitor(iface string) error {
	if err := shell.Run("airmon-ng check kill", 15*time.Second); err != nil {
		return fmt.Errorf("airmon-ng check kill: %w", err)
	}
	if err := shell.Run("airmon-ng start "+iface, 15*time.Second); err != nil {
		return fmt.Errorf("start monitor on %s: %w", iface, err)
	}
	return nil
}

// RestoreManaged tears down the monitor interface and restarts the
// network stack.
func RestoreManaged(monitorIface string) error {
	if err := shell.Run("airmon-ng stop "+monitorIface, 15*time.Second); err != nil {
		return fmt.Errorf("stop monitor %s: %w", monitorIface, err)
	}
	// NetworkManager may be absent on a stripped image; ignore.
	_ = shell.Run("systemctl start NetworkManager", 15*time.Second)
	return nil
}

// MonitorActive reports whether the named monitor interface exists.
func MonitorActive(monitorIface string) bool {
	return shell.Check("iw dev "+monitorIface+" info", probeTimeout)
}
