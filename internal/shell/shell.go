// Package shell provides one-off command helpers for status probes.
// These are for short synchronous checks (iw, pgrep, systemctl); long
// running attack commands go through the payload runner instead.
package shell

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a probe that forgot to pass its own.
const DefaultTimeout = 5 * time.Second

// Output runs command through `sh -c` and returns its trimmed combined
// output. The process is killed when the timeout elapses.
func Output(command string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "sh", "-c", command).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// Run executes command and reports only the error, discarding output.
func Run(command string, timeout time.Duration) error {
	_, err := Output(command, timeout)
	return err
}

// Check reports whether command exited zero. Used for liveness probes
// like `pgrep -x tcpdump` where the exit code is the answer.
func Check(command string, timeout time.Duration) bool {
	return Run(command, timeout) == nil
}
