package payload

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/krakenpi/krakenpi/internal/shell"
	"github.com/krakenpi/krakenpi/internal/state"
)

// knownTools is the blanket-stop list. Each entry is matched against
// full process names with pkill -f.
var knownTools = []string{
	"nmap",
	"responder",
	"arpspoof",
	"dnsspoof",
	"sslstrip",
	"tcpdump",
	"airodump-ng",
	"aireplay-ng",
	"airmon-ng",
	"bettercap",
	"tshark",
	"msfconsole",
}

// KillAllTools terminates every known offensive tool, best effort. A
// pkill miss just means the tool was not running, so individual errors
// are ignored; the sweep always ends with an OK alert.
func (r *Runner) KillAllTools() {
	var g errgroup.Group
	for _, tool := range knownTools {
		tool := tool
		g.Go(func() error {
			_ = shell.Run("pkill -9 -f "+tool, 5*time.Second)
			return nil
		})
	}
	_ = g.Wait()
	r.app.AddAlert("All tools stopped", state.LevelOK)
}
