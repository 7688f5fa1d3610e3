package events

import "github.com/krakenpi/krakenpi/internal/logging"

type PayloadTracer struct{}

var Payload = PayloadTracer{}

func (PayloadTracer) Start(name, command string) {
	logging.Trace("payload.start", map[string]interface{}{"name": name, "command": command})
}

func (PayloadTracer) Finish(name, status string, exitCode int, elapsed float64) {
	logging.Trace("payload.finish", map[string]interface{}{
		"name":    name,
		"status":  status,
		"exit":    exitCode,
		"elapsed": elapsed,
	})
}

func (PayloadTracer) Cancel(name string) {
	logging.Trace("payload.cancel", map[string]interface{}{"name": name})
}

func (PayloadTracer) Rejected(name string) {
	logging.Trace("payload.rejected", map[string]interface{}{"name": name})
}

func (PayloadTracer) KillGroup(pid int) {
	logging.Trace("payload.killgroup", map[string]interface{}{"pid": pid})
}
