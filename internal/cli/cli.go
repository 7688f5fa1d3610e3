// Package cli defines the command tree: the interactive console at the
// root and a headless operator surface under `cli`.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/krakenpi/krakenpi/internal/app"
	"github.com/krakenpi/krakenpi/internal/config"
	"github.com/krakenpi/krakenpi/internal/mode"
	"github.com/krakenpi/krakenpi/internal/state"
)

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "krakenpi",
		Short:         "Portable security-testing console",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(config.MustLoad())
			if err != nil {
				return err
			}
			return a.RunConsole()
		},
	}
	root.AddCommand(newCLICommand())
	return root
}

// Execute runs the tree and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "krakenpi: %v\n", err)
		return 1
	}
	return 0
}

func newCLICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cli [mode] [action]",
		Short: "Headless operator surface",
		Long: "Without arguments, runs an interactive numbered-menu loop.\n" +
			"With a mode name, lists that mode's actions.\n" +
			"With a mode name and action number, runs the action and waits.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(config.MustLoad())
			if err != nil {
				return err
			}
			h := &headless{app: a, out: cmd.OutOrStdout(), in: cmd.InOrStdin()}
			switch len(args) {
			case 0:
				return h.loop()
			case 1:
				if args[0] == "list" {
					h.listModes()
					return nil
				}
				return h.listActions(args[0])
			default:
				return h.oneShot(args[0], args[1])
			}
		},
	}
	return cmd
}

type headless struct {
	app *app.App
	out io.Writer
	in  io.Reader
}

func (h *headless) listModes() {
	fmt.Fprintln(h.out, "modes:")
	for _, m := range h.app.Modes {
		marker := " "
		if _, ok := m.(mode.Lister); ok {
			marker = "*"
		}
		fmt.Fprintf(h.out, "  %s %s\n", marker, m.Name())
	}
	fmt.Fprintln(h.out, "(* has runnable actions)")
}

func (h *headless) listActions(modeName string) error {
	m, lister := h.app.FindMode(modeName)
	if m == nil {
		return fmt.Errorf("unknown mode %q (try `krakenpi cli list`)", modeName)
	}
	if lister == nil {
		return fmt.Errorf("mode %q has no runnable actions", modeName)
	}
	fmt.Fprintf(h.out, "%s actions:\n", m.Name())
	for i, label := range lister.Actions() {
		fmt.Fprintf(h.out, "  %2d  %s\n", i+1, label)
	}
	return nil
}

// oneShot runs action number n (1-based) of the named mode and waits
// for the payload to finish. Ctrl-C cancels the payload.
func (h *headless) oneShot(modeName, action string) error {
	m, lister := h.app.FindMode(modeName)
	if m == nil {
		return fmt.Errorf("unknown mode %q (try `krakenpi cli list`)", modeName)
	}
	if lister == nil {
		return fmt.Errorf("mode %q has no runnable actions", modeName)
	}
	n, err := strconv.Atoi(action)
	if err != nil {
		return fmt.Errorf("action must be a number, got %q", action)
	}
	if !lister.Invoke(n - 1) {
		return fmt.Errorf("mode %q has no action %d", modeName, n)
	}
	return h.waitForPayload()
}

func (h *headless) waitForPayload() error {
	handle := h.app.Runner.Active()
	if handle == nil {
		// The action either ran synchronously or already finished.
		h.printAlerts()
		if status := h.app.State.PayloadStatus(); status.Terminal() {
			fmt.Fprintf(h.out, "status: %s\n", status)
			if status != state.PayloadSuccess {
				return fmt.Errorf("payload finished with status %s", status)
			}
		}
		return nil
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-handle.Done():
	case <-sigs:
		fmt.Fprintln(h.out, "cancelling...")
		h.app.Runner.Cancel()
		<-handle.Done()
	}

	h.printAlerts()
	status := handle.Status()
	fmt.Fprintf(h.out, "status: %s\n", status)
	if status != state.PayloadSuccess {
		return fmt.Errorf("payload finished with status %s", status)
	}
	return nil
}

func (h *headless) printAlerts() {
	for _, a := range h.app.State.Alerts() {
		fmt.Fprintf(h.out, "[%s] %-8s %s\n", a.Clock(), a.Level, a.Message)
	}
}

// loop is the interactive numbered-menu session.
func (h *headless) loop() error {
	scanner := bufio.NewScanner(h.in)
	for {
		h.listModes()
		fmt.Fprint(h.out, "mode (or q)> ")
		if !scanner.Scan() {
			return nil
		}
		modeName := strings.TrimSpace(scanner.Text())
		if modeName == "" {
			continue
		}
		if modeName == "q" || modeName == "quit" {
			return nil
		}

		if err := h.listActions(modeName); err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		fmt.Fprint(h.out, "action> ")
		if !scanner.Scan() {
			return nil
		}
		choice := strings.TrimSpace(scanner.Text())
		if choice == "" {
			continue
		}
		if err := h.oneShot(modeName, choice); err != nil {
			fmt.Fprintln(h.out, err)
		}
	}
}
