package caliper

// Controller is the interaction state machine's driver. It owns the
// currently active State, forwards raw input to it, and exposes the
// side-effecting primitives (SetCursor, SetOrbitControlsEnabled)
// states call back into.
//
// The machine has no terminal state: it lives for the session,
// switching among tool variants. All methods run on the host's input
// goroutine; Controller is not safe for concurrent use and does not
// need to be (the interaction model is single-threaded and
// callback-driven).
type Controller struct {
	channel  *Channel
	registry *Registry

	cursor CursorSetter  // may be nil (headless tests)
	orbit  OrbitControls // may be nil

	active State
}

// NewController creates a controller with no active state. cursor and
// orbit may be nil; the corresponding primitives then no-op.
func NewController(ch *Channel, reg *Registry, cursor CursorSetter, orbit OrbitControls) *Controller {
	return &Controller{
		channel:  ch,
		registry: reg,
		cursor:   cursor,
		orbit:    orbit,
	}
}

// Channel returns the event channel the controller and its states
// emit on.
func (c *Controller) Channel() *Channel {
	return c.channel
}

// SetTool switches the active state to the variant registered for
// tool. The outgoing state's OnExit runs exactly once, strictly before
// the incoming state's OnEnter; the two never overlap. On an unknown
// tool the error is returned before any side effect; the previous
// state stays active and untouched.
func (c *Controller) SetTool(tool ToolID) error {
	next, err := c.registry.Create(tool, c.channel)
	if err != nil {
		return err
	}
	c.swap(next)
	return nil
}

// Disable exits the active state and leaves interaction off. Cursor
// and orbit controls are back at their defaults afterwards. Calling
// Disable with no active state is a no-op.
func (c *Controller) Disable() {
	c.swap(nil)
}

// swap performs the exit-then-enter transition. The exit side effects
// (default cursor, orbit re-enabled) are restored even if the outgoing
// state's OnExit panics, so a faulty state cannot wedge the cursor or
// the camera.
func (c *Controller) swap(next State) {
	if old := c.active; old != nil {
		c.active = nil
		func() {
			defer func() {
				c.SetCursor(CursorDefault)
				c.SetOrbitControlsEnabled(true)
			}()
			old.OnExit(c)
		}()
	}
	if next != nil {
		c.active = next
		next.OnEnter(c)
	}
}

// ActiveTool returns the active tool identifier, or false when
// interaction is disabled.
func (c *Controller) ActiveTool() (ToolID, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.Tool(), true
}

// Click forwards a qualifying click and its intersection to the active
// state. No-op when interaction is disabled.
func (c *Controller) Click(point Vector3, hit Intersection) {
	if c.active != nil {
		c.active.OnClick(point, hit, c)
	}
}

// MouseMove forwards pointer movement to the active state.
func (c *Controller) MouseMove(point Vector3) {
	if c.active != nil {
		c.active.OnMouseMove(point, c)
	}
}

// KeyDown forwards a key press to the active state.
func (c *Controller) KeyDown(ev KeyEvent) {
	if c.active != nil {
		c.active.OnKeyDown(ev, c)
	}
}

// DoubleClick forwards a double click to the active state.
func (c *Controller) DoubleClick() {
	if c.active != nil {
		c.active.OnDoubleClick(c)
	}
}

// SetCursor forwards a cursor descriptor to the host's cursor sink.
func (c *Controller) SetCursor(cur Cursor) {
	if c.cursor != nil {
		c.cursor.SetCursor(cur)
	}
}

// SetOrbitControlsEnabled gates the host's camera orbit controls.
func (c *Controller) SetOrbitControlsEnabled(enabled bool) {
	if c.orbit != nil {
		c.orbit.SetEnabled(enabled)
	}
}
