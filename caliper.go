package caliper

import "github.com/hajimehoshi/ebiten/v2"

// ToolID names a measurement tool. Exactly one tool is active on a
// Controller at any time.
type ToolID string

// Built-in tool identifiers registered by NewRegistry.
const (
	ToolDistance    ToolID = "distance"     // chained point-to-point segments
	ToolAngle       ToolID = "angle"        // angle at the middle of three points
	ToolAreaPolygon ToolID = "area-polygon" // closed polygon area
)

// Topic names an event stream on a Channel. Topics use a
// "domain:subject[:verb]" convention; see events.go for the catalogue.
type Topic string

// ObjectRef is an opaque reference to a scene object supplied by the
// external raycasting engine. Caliper never inspects it, only passes
// it through to event payloads.
type ObjectRef any

// FaceRef is an opaque reference to an intersected face. A nil face is
// valid (e.g. a point-cloud hit) and is passed through unchanged.
type FaceRef any

// Intersection is the result of a raycast supplied by the host's
// Picker. Read-only to caliper; Point is copied before it is stored in
// any event payload.
type Intersection struct {
	Object ObjectRef
	Face   FaceRef // nil when the hit has no face
	Point  Vector3
}

// Cursor is a cursor glyph descriptor. The host maps it to whatever
// its windowing layer supports.
type Cursor uint8

const (
	CursorDefault   Cursor = iota // host default arrow
	CursorCrosshair               // precision pick indicator (measurement states)
	CursorPointer                 // clickable-element hand
	CursorGrab                    // camera drag
)

// EbitenShape returns the ebiten.CursorShapeType corresponding to this Cursor.
func (c Cursor) EbitenShape() ebiten.CursorShapeType {
	switch c {
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case CursorPointer:
		return ebiten.CursorShapePointer
	case CursorGrab:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}

// String returns a human-readable cursor name.
func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorCrosshair:
		return "crosshair"
	case CursorPointer:
		return "pointer"
	case CursorGrab:
		return "grab"
	default:
		return "unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies the keyboard keys interaction states care about.
// Printable keys carry their lowercase rune in Rune on the KeyEvent.
type Key uint8

const (
	KeyNone      Key = iota
	KeyEscape        // cancel / finish the pending interaction
	KeyEnter         // confirm
	KeyBackspace     // undo the last collected point
	KeyRune          // printable character; see KeyEvent.Rune
)

// KeyEvent is a single key press forwarded to the active interaction
// state.
type KeyEvent struct {
	Key       Key
	Rune      rune // valid when Key == KeyRune, lowercased
	Modifiers KeyModifiers
}

// CursorSetter is the host-side cursor sink consumed by the
// Controller. The ebiten Viewer implements it; tests use recorders.
type CursorSetter interface {
	SetCursor(Cursor)
}

// OrbitControls is the camera-control gate consumed by the Controller.
// Measurement states disable orbiting on enter so drags pick points
// instead of rotating the view, and re-enable it on exit.
type OrbitControls interface {
	SetEnabled(bool)
}

// Picker is the boundary to the external scene/raycasting engine. It
// resolves a screen position to a scene intersection, if any.
type Picker interface {
	Pick(screenX, screenY float64) (Intersection, bool)
}
