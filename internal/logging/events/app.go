package events

import "github.com/atomicstack/popstack/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

// Exit records the process outcome. err may be nil.
func (AppTracer) Exit(code int, err error) {
	payload := map[string]interface{}{"code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
