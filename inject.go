package caliper

// syntheticEvent represents a single injected input event. Screen
// coordinates are used and resolved through the same Picker as real
// mouse input.
type syntheticEvent struct {
	kind synthKind
	x, y float64
	key  KeyEvent
}

type synthKind uint8

const (
	synthClick synthKind = iota
	synthDoubleClick
	synthMove
	synthKey
)

// InjectClick queues a click at the given screen coordinates. The
// event is consumed on the next frame's Update, before real input.
func (v *Viewer) InjectClick(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: synthClick, x: x, y: y})
}

// InjectDoubleClick queues a double click at the given screen
// coordinates. Unlike real input it dispatches only the double click,
// not the leading click pair, so tests can exercise the trigger in
// isolation.
func (v *Viewer) InjectDoubleClick(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: synthDoubleClick, x: x, y: y})
}

// InjectMove queues a hover move at the given screen coordinates.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectKey queues a key press.
func (v *Viewer) InjectKey(ev KeyEvent) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: synthKey, key: ev})
}

// consumeInjected pops one event from the inject queue and routes it
// through the same dispatch paths as real input. Returns true if an
// event was consumed (real input is skipped that frame).
func (v *Viewer) consumeInjected() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	switch evt.kind {
	case synthClick:
		if hit, ok := v.pick(evt.x, evt.y); ok {
			v.controller.Click(hit.Point, hit)
		}
	case synthDoubleClick:
		v.controller.DoubleClick()
	case synthMove:
		v.hoverAt(evt.x, evt.y)
	case synthKey:
		v.controller.KeyDown(evt.key)
	}
	return true
}
