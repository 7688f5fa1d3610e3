package mode

import "time"

// NewUSB builds the USB gadget screen.
func NewUSB(env *Env) Mode {
	usb := env.Cfg.Interfaces.USB
	return newCommandMode(env, "usb", "🔌", []commandEntry{
		{Icon: "⇄", Label: "Gadget ethernet", Timeout: 30 * time.Second, Command: func() string {
			return "modprobe g_ether && ip link set " + usb + " up && ip addr add 10.0.0.1/24 dev " + usb
		}},
		{Icon: "💾", Label: "Mass storage", Confirm: true, Timeout: 30 * time.Second, Command: func() string {
			return "modprobe g_mass_storage file=/root/usb.img stall=0 removable=1"
		}},
		{Icon: "⌨", Label: "HID keyboard", Confirm: true, Timeout: 30 * time.Second, Command: func() string {
			return "modprobe g_hid"
		}},
		{Icon: "🌐", Label: "DHCP on gadget", Timeout: 30 * time.Second, Command: func() string {
			return "systemctl restart dnsmasq"
		}},
		{Icon: "✗", Label: "Unload gadgets", Confirm: true, Timeout: 30 * time.Second, Command: func() string {
			return "modprobe -r g_ether g_mass_storage g_hid 2>/dev/null; true"
		}},
	})
}
