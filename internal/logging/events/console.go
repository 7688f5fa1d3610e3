package events

import "github.com/krakenpi/krakenpi/internal/logging"

type ButtonTracer struct{}

type ModeTracer struct{}

type AlertTracer struct{}

type MissionTracer struct{}

var (
	Button  = ButtonTracer{}
	Mode    = ModeTracer{}
	Alert   = AlertTracer{}
	Mission = MissionTracer{}
)

func (ButtonTracer) Press(button, mode string) {
	logging.Trace("button.press", map[string]interface{}{"button": button, "mode": mode})
}

func (ButtonTracer) Wake(button string) {
	logging.Trace("button.wake", map[string]interface{}{"button": button})
}

func (ButtonTracer) HandlerPanic(button, mode, detail string) {
	logging.Trace("button.panic", map[string]interface{}{"button": button, "mode": mode, "detail": detail})
}

func (ModeTracer) Switch(from, to string) {
	logging.Trace("mode.switch", map[string]interface{}{"from": from, "to": to})
}

func (AlertTracer) Raised(level, message string) {
	logging.Trace("alert.raised", map[string]interface{}{"level": level, "message": message})
}

func (MissionTracer) Run(profile string) {
	logging.Trace("mission.run", map[string]interface{}{"profile": profile})
}

func (MissionTracer) Done(profile string, succeeded, total int) {
	logging.Trace("mission.done", map[string]interface{}{
		"profile":   profile,
		"succeeded": succeeded,
		"total":     total,
	})
}
