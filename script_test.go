package caliper

import (
	"testing"
)

// planePicker resolves every screen position onto the z = 0 plane, one
// world unit per pixel.
type planePicker struct{}

func (planePicker) Pick(x, y float64) (Intersection, bool) {
	return Intersection{Point: Vec3(x, y, 0)}, true
}

// missPicker never hits anything.
type missPicker struct{}

func (missPicker) Pick(x, y float64) (Intersection, bool) {
	return Intersection{}, false
}

func newTestViewer(picker Picker) (*Viewer, *Channel) {
	ch := NewChannel()
	return NewViewer(ch, NewRegistry(), picker, nil, 640, 480), ch
}

// stepFrame advances the scripted and injected input paths the way
// Update does, without touching the real input devices.
func stepFrame(v *Viewer) {
	if v.script != nil {
		v.script.step(v)
	}
	v.consumeInjected()
}

func TestLoadScript(t *testing.T) {
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "tool", "tool": "distance"},
		{"action": "click", "x": 10, "y": 20}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(r.steps) != 2 {
		t.Errorf("len(steps) = %v, want 2", len(r.steps))
	}
	if r.Done() {
		t.Error("Done = true before any step ran")
	}
}

func TestLoadScriptBadJSON(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": [`)); err == nil {
		t.Error("err = nil for truncated JSON")
	}
}

func TestLoadScriptEmpty(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("err = nil for empty script")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want KeyEvent
		ok   bool
	}{
		{"escape", KeyEvent{Key: KeyEscape}, true},
		{"enter", KeyEvent{Key: KeyEnter}, true},
		{"backspace", KeyEvent{Key: KeyBackspace}, true},
		{"a", KeyEvent{Key: KeyRune, Rune: 'a'}, true},
		{"ctrl+a", KeyEvent{}, false},
		{"", KeyEvent{}, false},
	}
	for _, tt := range tests {
		got, ok := parseKey(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseKey(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScriptDrivesPolygonFlow(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)
	finishes := recorder(ch, TopicAreaFinish)

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "tool", "tool": "area-polygon"},
		{"action": "click", "x": 0, "y": 0},
		{"action": "click", "x": 10, "y": 0},
		{"action": "click", "x": 10, "y": 10},
		{"action": "key", "key": "escape"}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	v.SetScript(r)

	for i := 0; i < 20 && !r.Done(); i++ {
		stepFrame(v)
	}

	if !r.Done() {
		t.Fatal("Done = false after 20 frames")
	}
	if got := len(*selections); got != 3 {
		t.Fatalf("selections = %v, want 3", got)
	}
	ev := (*selections)[1].(PointSelectedEvent)
	if ev.Point != Vec3(10, 0, 0) {
		t.Errorf("second selection point = %v, want (10 0 0)", ev.Point)
	}
	if ev.Tool != ToolAreaPolygon {
		t.Errorf("selection tool = %q, want %q", ev.Tool, ToolAreaPolygon)
	}
	if got := len(*finishes); got != 1 {
		t.Errorf("finishes = %v, want 1", got)
	}
}

func TestScriptMeasuresDistance(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	chain := NewDistanceChain(ch, ToolDistance)
	defer chain.Close()

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "tool", "tool": "distance"},
		{"action": "click", "x": 0, "y": 0},
		{"action": "click", "x": 3, "y": 4}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	v.SetScript(r)

	for i := 0; i < 10 && !r.Done(); i++ {
		stepFrame(v)
	}

	if got := chain.Total(); got != 5 {
		t.Errorf("Total = %v, want 5", got)
	}
}

func TestScriptWaitDelaysNextAction(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "tool", "tool": "distance"},
		{"action": "wait", "frames": 3},
		{"action": "click", "x": 1, "y": 1}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	v.SetScript(r)

	// Frame 1: tool. Frames 2-4: waiting. The click must not have
	// landed by frame 4.
	for i := 0; i < 4; i++ {
		stepFrame(v)
	}
	if got := len(*selections); got != 0 {
		t.Fatalf("selections = %v during wait, want 0", got)
	}

	stepFrame(v) // click injected
	stepFrame(v) // click consumed
	if got := len(*selections); got != 1 {
		t.Errorf("selections = %v after wait, want 1", got)
	}
}

func TestScriptUnknownToolLogsAndContinues(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "tool", "tool": "ruler"},
		{"action": "tool", "tool": "distance"},
		{"action": "click", "x": 1, "y": 2}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	v.SetScript(r)

	for i := 0; i < 10 && !r.Done(); i++ {
		stepFrame(v)
	}

	if !r.Done() {
		t.Fatal("Done = false, script stalled on unknown tool")
	}
	if got := len(*selections); got != 1 {
		t.Errorf("selections = %v, want 1", got)
	}
}

func TestInjectClickResolvesThroughPicker(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)
	if err := v.Controller().SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectClick(7, 9)
	if got := len(*selections); got != 0 {
		t.Fatalf("selections = %v before consume, want 0", got)
	}
	stepFrame(v)

	if got := len(*selections); got != 1 {
		t.Fatalf("selections = %v, want 1", got)
	}
	ev := (*selections)[0].(PointSelectedEvent)
	if ev.Point != Vec3(7, 9, 0) {
		t.Errorf("Point = %v, want (7 9 0)", ev.Point)
	}
}

func TestInjectClickMissEmitsNothing(t *testing.T) {
	v, ch := newTestViewer(missPicker{})
	selections := recorder(ch, TopicPointSelected)
	if err := v.Controller().SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectClick(7, 9)
	stepFrame(v)

	if got := len(*selections); got != 0 {
		t.Errorf("selections = %v for a miss, want 0", got)
	}
}

func TestInjectOneEventPerFrame(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)
	if err := v.Controller().SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectClick(1, 1)
	v.InjectClick(2, 2)

	stepFrame(v)
	if got := len(*selections); got != 1 {
		t.Fatalf("selections = %v after one frame, want 1", got)
	}
	stepFrame(v)
	if got := len(*selections); got != 2 {
		t.Errorf("selections = %v after two frames, want 2", got)
	}
}

func TestInjectKeyFinishesPolygon(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	finishes := recorder(ch, TopicAreaFinish)
	if err := v.Controller().SetTool(ToolAreaPolygon); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectKey(KeyEvent{Key: KeyEscape})
	stepFrame(v)

	if got := len(*finishes); got != 1 {
		t.Errorf("finishes = %v, want 1", got)
	}
}

func TestInjectDoubleClickFinishesPolygon(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	finishes := recorder(ch, TopicAreaFinish)
	if err := v.Controller().SetTool(ToolAreaPolygon); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectDoubleClick(5, 5)
	stepFrame(v)

	if got := len(*finishes); got != 1 {
		t.Errorf("finishes = %v, want 1", got)
	}
}

func TestInjectMoveEmitsHover(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	hovers := recorder(ch, TopicPointHover)
	if err := v.Controller().SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	v.InjectMove(4, 6)
	stepFrame(v)

	if got := len(*hovers); got != 1 {
		t.Fatalf("hovers = %v, want 1", got)
	}
	ev := (*hovers)[0].(HoverEvent)
	if ev.Point != Vec3(4, 6, 0) {
		t.Errorf("hover point = %v, want (4 6 0)", ev.Point)
	}
}

func TestInjectIgnoredWithoutActiveTool(t *testing.T) {
	v, ch := newTestViewer(planePicker{})
	selections := recorder(ch, TopicPointSelected)

	v.InjectClick(1, 1)
	stepFrame(v)

	if got := len(*selections); got != 0 {
		t.Errorf("selections = %v with no active tool, want 0", got)
	}
}
