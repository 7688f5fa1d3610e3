package mode

import "time"

// NewNetwork builds the network status and control screen.
func NewNetwork(env *Env) Mode {
	eth := env.Cfg.Interfaces.Ethernet
	usb := env.Cfg.Interfaces.USB
	return newCommandMode(env, "network", "⇄", []commandEntry{
		{Icon: "≡", Label: "Interface status", Command: func() string { return "ip -br addr" }, Timeout: 10 * time.Second},
		{Icon: "⇉", Label: "Route table", Command: func() string { return "ip route" }, Timeout: 10 * time.Second},
		{Icon: "⌁", Label: "Connections", Command: func() string { return "ss -tunap" }, Timeout: 10 * time.Second},
		{Icon: "↑", Label: "Ethernet up", Command: func() string { return "ip link set " + eth + " up && dhclient " + eth }, Timeout: 60 * time.Second},
		{Icon: "↑", Label: "USB gadget up", Command: func() string { return "ip link set " + usb + " up && ip addr add 10.0.0.1/24 dev " + usb }, Timeout: 30 * time.Second},
		{Icon: "✗", Label: "Release leases", Confirm: true, Command: func() string { return "dhclient -r" }, Timeout: 30 * time.Second},
	})
}
