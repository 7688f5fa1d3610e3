package mode

import (
	"fmt"
	"strings"
	"time"
)

// System shows host vitals and the power actions.
type System struct {
	*commandMode
}

// NewSystem builds the system status screen.
func NewSystem(env *Env) *System {
	m := &System{}
	m.commandMode = newCommandMode(env, "system", "⚙", []commandEntry{
		{Icon: "↻", Label: "Sync clock", Command: func() string { return "systemctl restart systemd-timesyncd" }, Timeout: 30 * time.Second},
		{Icon: "☠", Label: "Kill all tools", Confirm: true, Action: func() { env.Runner.KillAllTools() }},
		{Icon: "⟳", Label: "Reboot", Confirm: true, Command: func() string { return "reboot" }, Timeout: 10 * time.Second},
		{Icon: "⏻", Label: "Shutdown", Confirm: true, Command: func() string { return "shutdown -h now" }, Timeout: 10 * time.Second},
	})
	return m
}

func (m *System) Render(width int) string {
	s := m.env.Styles
	v := m.env.Vitals.Load()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("CPU %5.1f%%  MEM %5.1f%%\n", v.CPUPercent, v.MemPercent))
	temp := s.StatusOK
	if v.TempCelsius >= 70 {
		temp = s.StatusError
	} else if v.TempCelsius >= 60 {
		temp = s.StatusWarn
	}
	b.WriteString("TEMP " + temp.Render(fmt.Sprintf("%.1f°C", v.TempCelsius)))
	if v.Uptime > 0 {
		b.WriteString(s.Dim.Render(fmt.Sprintf("  up %s", v.Uptime.Round(time.Minute))))
	}
	b.WriteString("\n")
	if v.LocalIP != "" {
		b.WriteString("IP " + s.StatusInfo.Render(v.LocalIP) + "\n")
	} else {
		b.WriteString(s.Dim.Render("IP none") + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.menu.Render(s, width))
	return b.String()
}
