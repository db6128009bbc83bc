package caliper

// State encapsulates how pointer and keyboard input is interpreted
// while a particular measurement tool is active. The Controller owns
// exactly one State at a time and forwards raw input to it; states
// respond by emitting semantic events on the Channel and by calling
// back into the Controller's cursor and orbit-control primitives.
//
// Every method is required. States that do not care about an input
// implement it as an explicit no-op rather than relying on an
// inherited default, so a variant's full behavior is visible in its
// own file. Shared behaviors are composed in (see pointSelector), not
// inherited.
type State interface {
	// Tool returns the identifier of the tool this state serves.
	Tool() ToolID

	// OnEnter is called when the state becomes active. It sets the
	// state's cursor and disables orbit controls. Must be idempotent
	// when called twice without an intervening OnExit.
	OnEnter(ctl *Controller)

	// OnExit restores the default cursor and re-enables orbit
	// controls. The Controller guarantees it runs exactly once before
	// any transition completes.
	OnExit(ctl *Controller)

	// OnClick handles a qualifying click with its scene intersection.
	OnClick(point Vector3, hit Intersection, ctl *Controller)

	// OnMouseMove handles pointer movement over the scene.
	OnMouseMove(point Vector3, ctl *Controller)

	// OnKeyDown handles a key press.
	OnKeyDown(ev KeyEvent, ctl *Controller)

	// OnDoubleClick handles a double click.
	OnDoubleClick(ctl *Controller)

	// Cursor returns the cursor glyph shown while this state is active.
	Cursor() Cursor
}

// baseState carries the enter/exit side effects shared by every
// measurement state: show the state's cursor and suspend orbit
// controls so drags pick points instead of rotating the camera.
type baseState struct {
	tool    ToolID
	cursor  Cursor
	entered bool
}

func (b *baseState) Tool() ToolID   { return b.tool }
func (b *baseState) Cursor() Cursor { return b.cursor }

func (b *baseState) OnEnter(ctl *Controller) {
	if b.entered {
		// Re-entering without an exit is a programmer error upstream;
		// the side effects below are idempotent so just flag it.
		debugCheck("OnEnter called twice without OnExit (tool %q)", b.tool)
	}
	b.entered = true
	ctl.SetCursor(b.cursor)
	ctl.SetOrbitControlsEnabled(false)
}

func (b *baseState) OnExit(ctl *Controller) {
	if !b.entered {
		debugCheck("OnExit without matching OnEnter (tool %q)", b.tool)
	}
	b.entered = false
	ctl.SetCursor(CursorDefault)
	ctl.SetOrbitControlsEnabled(true)
}

// pointSelector is the shared click-to-select-point behavior. It emits
// TopicPointSelected with a copied point on click and TopicPointHover
// on movement. Both measurement variants compose it.
type pointSelector struct {
	tool    ToolID
	channel *Channel
}

func (p pointSelector) click(point Vector3, hit Intersection) {
	// point and hit.Point are value types; building the payload copies
	// them, so callers may reuse or mutate their vectors afterwards.
	p.channel.Emit(TopicPointSelected, PointSelectedEvent{
		Point:  point,
		Tool:   p.tool,
		Object: hit.Object,
		Face:   hit.Face,
	})
}

func (p pointSelector) hover(point Vector3) {
	p.channel.Emit(TopicPointHover, HoverEvent{Point: point, Tool: p.tool})
}

// PointState interprets clicks as point selections for single- and
// multi-point measurements (distance chains, angles). Keys and double
// clicks are ignored.
type PointState struct {
	baseState
	selector pointSelector
}

// NewPointState creates a point-selection state for the given tool,
// emitting on ch.
func NewPointState(tool ToolID, ch *Channel) *PointState {
	return &PointState{
		baseState: baseState{tool: tool, cursor: CursorCrosshair},
		selector:  pointSelector{tool: tool, channel: ch},
	}
}

func (s *PointState) OnClick(point Vector3, hit Intersection, _ *Controller) {
	s.selector.click(point, hit)
}

func (s *PointState) OnMouseMove(point Vector3, _ *Controller) {
	s.selector.hover(point)
}

// OnKeyDown ignores key input; point selection has nothing to finish.
func (s *PointState) OnKeyDown(KeyEvent, *Controller) {}

// OnDoubleClick ignores double clicks.
func (s *PointState) OnDoubleClick(*Controller) {}

// PolygonState selects vertices one click at a time like PointState
// and adds two equivalent finish triggers: the Escape key and a double
// click each emit TopicAreaFinish so the consuming measurement logic
// closes the polygon from the vertices it has collected. Downstream
// consumers treat the two triggers identically; guarding against a
// double finish is their concern, not this state's.
type PolygonState struct {
	baseState
	selector pointSelector
}

// NewPolygonState creates a polygon-vertex state for the given tool,
// emitting on ch.
func NewPolygonState(tool ToolID, ch *Channel) *PolygonState {
	return &PolygonState{
		baseState: baseState{tool: tool, cursor: CursorCrosshair},
		selector:  pointSelector{tool: tool, channel: ch},
	}
}

func (s *PolygonState) OnClick(point Vector3, hit Intersection, _ *Controller) {
	s.selector.click(point, hit)
}

func (s *PolygonState) OnMouseMove(point Vector3, _ *Controller) {
	s.selector.hover(point)
}

func (s *PolygonState) OnKeyDown(ev KeyEvent, _ *Controller) {
	if ev.Key == KeyEscape {
		s.selector.channel.Emit(TopicAreaFinish, nil)
	}
}

func (s *PolygonState) OnDoubleClick(_ *Controller) {
	s.selector.channel.Emit(TopicAreaFinish, nil)
}
