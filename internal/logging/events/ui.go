package events

import "github.com/atomicstack/popstack/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Key(key string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key})
}

func (UITracer) Press(x, y int, target string) {
	logging.Trace("ui.press", map[string]interface{}{"x": x, "y": y, "target": target})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Work(id, phase string) {
	logging.Trace("ui.work", map[string]interface{}{"id": id, "phase": phase})
}
