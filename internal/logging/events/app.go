package events

import "github.com/krakenpi/krakenpi/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Shutdown(reason string) {
	logging.Trace("app.shutdown", map[string]interface{}{"reason": reason})
}
