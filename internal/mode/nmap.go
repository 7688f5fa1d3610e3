package mode

import (
	"fmt"
	"time"
)

// NewNmap builds the port scanning screen. Every scan writes its report
// into the nmap loot directory.
func NewNmap(env *Env) Mode {
	out := func(prefix string) string { return env.Loot.CapturePath("nmap", prefix, "txt") }
	return newCommandMode(env, "nmap", "◎", []commandEntry{
		{Icon: "⚡", Label: "Quick scan", Timeout: 120 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -T4 -F $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("quick"))
		}},
		{Icon: "◉", Label: "Full TCP scan", Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -T4 -p- $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("full"))
		}},
		{Icon: "∴", Label: "Ping sweep", Timeout: 60 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -sn $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("sweep"))
		}},
		{Icon: "☣", Label: "Vuln scripts", Confirm: true, Timeout: 900 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -sV --script vuln $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("vuln"))
		}},
		{Icon: "◌", Label: "UDP top 100", Timeout: 600 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -sU --top-ports 100 $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("udp"))
		}},
		{Icon: "¿", Label: "OS detect", Timeout: 300 * time.Second, Command: func() string {
			return fmt.Sprintf("nmap -O $(ip route | awk '/default/ {print $3}')/24 -oN %s", out("os"))
		}},
	})
}
