package caliper

import "testing"

// cursorRecorder records SetCursor calls.
type cursorRecorder struct {
	calls []Cursor
}

func (r *cursorRecorder) SetCursor(c Cursor) { r.calls = append(r.calls, c) }

// orbitRecorder records SetEnabled calls.
type orbitRecorder struct {
	calls []bool
}

func (r *orbitRecorder) SetEnabled(enabled bool) { r.calls = append(r.calls, enabled) }

// recorder collects every payload emitted on a topic.
func recorder(ch *Channel, topic Topic) *[]any {
	var got []any
	ch.Subscribe(topic, func(payload any) { got = append(got, payload) })
	return &got
}

func newTestController(ch *Channel) (*Controller, *cursorRecorder, *orbitRecorder) {
	cursor := &cursorRecorder{}
	orbit := &orbitRecorder{}
	return NewController(ch, NewRegistry(), cursor, orbit), cursor, orbit
}

func TestPointStateClickEmitsSelection(t *testing.T) {
	ch := NewChannel()
	selected := recorder(ch, TopicPointSelected)

	s := NewPointState(ToolDistance, ch)
	obj := "bracket-mesh"
	face := 42
	s.OnClick(Vec3(1, 2, 3), Intersection{Object: obj, Face: face, Point: Vec3(1, 2, 3)}, nil)

	if len(*selected) != 1 {
		t.Fatalf("selections = %d, want 1", len(*selected))
	}
	ev := (*selected)[0].(PointSelectedEvent)
	if ev.Point != Vec3(1, 2, 3) {
		t.Errorf("Point = %v, want (1 2 3)", ev.Point)
	}
	if ev.Tool != ToolDistance {
		t.Errorf("Tool = %q, want %q", ev.Tool, ToolDistance)
	}
	if ev.Object != obj {
		t.Errorf("Object = %v, want %v", ev.Object, obj)
	}
	if ev.Face != face {
		t.Errorf("Face = %v, want %v", ev.Face, face)
	}
}

func TestPointStateClickNilFacePassedThrough(t *testing.T) {
	ch := NewChannel()
	selected := recorder(ch, TopicPointSelected)

	s := NewPointState(ToolDistance, ch)
	s.OnClick(Vec3(0, 0, 0), Intersection{Object: "cloud", Face: nil}, nil)

	ev := (*selected)[0].(PointSelectedEvent)
	if ev.Face != nil {
		t.Errorf("Face = %v, want nil (nil face is valid, not defaulted)", ev.Face)
	}
}

func TestPointStateClickCopiesPoint(t *testing.T) {
	// Mutating the source vector after the click must not alter the
	// emitted payload.
	ch := NewChannel()
	selected := recorder(ch, TopicPointSelected)

	s := NewPointState(ToolDistance, ch)
	src := Vec3(1, 1, 1)
	s.OnClick(src, Intersection{Point: src}, nil)

	src.X = 999

	ev := (*selected)[0].(PointSelectedEvent)
	if ev.Point != Vec3(1, 1, 1) {
		t.Errorf("Point = %v after source mutation, want (1 1 1)", ev.Point)
	}
}

func TestPointStateMoveEmitsHover(t *testing.T) {
	ch := NewChannel()
	hovers := recorder(ch, TopicPointHover)

	s := NewPointState(ToolAngle, ch)
	s.OnMouseMove(Vec3(5, 0, 0), nil)

	if len(*hovers) != 1 {
		t.Fatalf("hovers = %d, want 1", len(*hovers))
	}
	ev := (*hovers)[0].(HoverEvent)
	if ev.Tool != ToolAngle || ev.Point != Vec3(5, 0, 0) {
		t.Errorf("hover = %+v, want tool %q at (5 0 0)", ev, ToolAngle)
	}
}

func TestPointStateIgnoresKeysAndDoubleClick(t *testing.T) {
	ch := NewChannel()
	finishes := recorder(ch, TopicAreaFinish)

	s := NewPointState(ToolDistance, ch)
	s.OnKeyDown(KeyEvent{Key: KeyEscape}, nil)
	s.OnDoubleClick(nil)

	if len(*finishes) != 0 {
		t.Errorf("finishes = %d, want 0 (point state has nothing to finish)", len(*finishes))
	}
}

func TestPolygonStateEscapeFinishes(t *testing.T) {
	ch := NewChannel()
	finishes := recorder(ch, TopicAreaFinish)

	s := NewPolygonState(ToolAreaPolygon, ch)
	s.OnKeyDown(KeyEvent{Key: KeyEscape}, nil)

	if len(*finishes) != 1 {
		t.Fatalf("finishes = %d, want exactly 1", len(*finishes))
	}
	if (*finishes)[0] != nil {
		t.Errorf("finish payload = %v, want nil (signal-only)", (*finishes)[0])
	}
}

func TestPolygonStateDoubleClickFinishes(t *testing.T) {
	ch := NewChannel()
	finishes := recorder(ch, TopicAreaFinish)

	s := NewPolygonState(ToolAreaPolygon, ch)
	s.OnDoubleClick(nil)

	if len(*finishes) != 1 {
		t.Fatalf("finishes = %d, want exactly 1", len(*finishes))
	}
}

func TestPolygonStateOtherKeysIgnored(t *testing.T) {
	ch := NewChannel()
	finishes := recorder(ch, TopicAreaFinish)

	s := NewPolygonState(ToolAreaPolygon, ch)
	s.OnKeyDown(KeyEvent{Key: KeyEnter}, nil)
	s.OnKeyDown(KeyEvent{Key: KeyRune, Rune: 'x'}, nil)

	if len(*finishes) != 0 {
		t.Errorf("finishes = %d, want 0", len(*finishes))
	}
}

func TestPolygonStateClickSelectsNotFinishes(t *testing.T) {
	ch := NewChannel()
	selected := recorder(ch, TopicPointSelected)
	finishes := recorder(ch, TopicAreaFinish)

	s := NewPolygonState(ToolAreaPolygon, ch)
	s.OnClick(Vec3(1, 0, 0), Intersection{Object: "plate"}, nil)

	if len(*selected) != 1 {
		t.Errorf("selections = %d, want 1", len(*selected))
	}
	if len(*finishes) != 0 {
		t.Errorf("finishes = %d, want 0 (plain click must not finish)", len(*finishes))
	}
	if ev := (*selected)[0].(PointSelectedEvent); ev.Tool != ToolAreaPolygon {
		t.Errorf("Tool = %q, want %q", ev.Tool, ToolAreaPolygon)
	}
}

func TestStateEnterSetsCursorAndSuspendsOrbit(t *testing.T) {
	ch := NewChannel()
	ctl, cursor, orbit := newTestController(ch)

	if err := ctl.SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}

	if len(cursor.calls) == 0 || cursor.calls[len(cursor.calls)-1] != CursorCrosshair {
		t.Errorf("cursor calls = %v, want trailing crosshair", cursor.calls)
	}
	if len(orbit.calls) == 0 || orbit.calls[len(orbit.calls)-1] != false {
		t.Errorf("orbit calls = %v, want trailing false", orbit.calls)
	}
}

func TestStateExitRestoresDefaults(t *testing.T) {
	ch := NewChannel()
	ctl, cursor, orbit := newTestController(ch)

	if err := ctl.SetTool(ToolDistance); err != nil {
		t.Fatalf("SetTool: %v", err)
	}
	ctl.Disable()

	if cursor.calls[len(cursor.calls)-1] != CursorDefault {
		t.Errorf("cursor after exit = %v, want default", cursor.calls[len(cursor.calls)-1])
	}
	if orbit.calls[len(orbit.calls)-1] != true {
		t.Errorf("orbit after exit = %v, want enabled", orbit.calls[len(orbit.calls)-1])
	}
}

func TestStateDoubleEnterIdempotent(t *testing.T) {
	ch := NewChannel()
	ctl, cursor, orbit := newTestController(ch)

	s := NewPointState(ToolDistance, ch)
	s.OnEnter(ctl)
	before := len(cursor.calls)
	s.OnEnter(ctl) // tolerated outside debug mode; side effects repeat harmlessly

	if got := cursor.calls[len(cursor.calls)-1]; got != CursorCrosshair {
		t.Errorf("cursor = %v after double enter, want crosshair", got)
	}
	if len(cursor.calls) < before {
		t.Error("double enter lost cursor state")
	}
	if orbit.calls[len(orbit.calls)-1] != false {
		t.Error("orbit re-enabled by double enter")
	}
}

func TestStateDoubleEnterPanicsInDebug(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	ch := NewChannel()
	ctl, _, _ := newTestController(ch)
	s := NewPointState(ToolDistance, ch)
	s.OnEnter(ctl)

	defer func() {
		if recover() == nil {
			t.Error("double OnEnter did not panic in debug mode")
		}
	}()
	s.OnEnter(ctl)
}

func TestStateCursorDescriptor(t *testing.T) {
	ch := NewChannel()
	if got := NewPointState(ToolDistance, ch).Cursor(); got != CursorCrosshair {
		t.Errorf("point cursor = %v, want crosshair", got)
	}
	if got := NewPolygonState(ToolAreaPolygon, ch).Cursor(); got != CursorCrosshair {
		t.Errorf("polygon cursor = %v, want crosshair", got)
	}
}
