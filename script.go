package caliper

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	Tool   string  `json:"tool,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for an interaction script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input events across frames so
// interaction flows can be driven deterministically without a real
// display or mouse. Attach to a Viewer via SetScript.
//
// Supported actions: "click" (x, y), "dblclick" (x, y), "move" (x, y),
// "key" (key: "escape", "enter", "backspace", or a single character),
// "tool" (tool identifier), "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse interaction script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse interaction script: no steps")
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches a script runner to the viewer. The runner's step
// method is called from Viewer.Update each frame.
func (v *Viewer) SetScript(runner *ScriptRunner) {
	v.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// parseKey maps a script key name to a KeyEvent.
func parseKey(name string) (KeyEvent, bool) {
	switch name {
	case "escape":
		return KeyEvent{Key: KeyEscape}, true
	case "enter":
		return KeyEvent{Key: KeyEnter}, true
	case "backspace":
		return KeyEvent{Key: KeyBackspace}, true
	}
	if runes := []rune(name); len(runes) == 1 {
		return KeyEvent{Key: KeyRune, Rune: runes[0]}, true
	}
	return KeyEvent{}, false
}

// step advances the runner by one frame. Called from Viewer.Update.
func (r *ScriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(v.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		v.InjectClick(st.X, st.Y)
	case "dblclick":
		v.InjectDoubleClick(st.X, st.Y)
	case "move":
		v.InjectMove(st.X, st.Y)
	case "key":
		if ev, ok := parseKey(st.Key); ok {
			v.InjectKey(ev)
		}
	case "tool":
		if err := v.controller.SetTool(ToolID(st.Tool)); err != nil {
			debugLogf("script: %v", err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}
