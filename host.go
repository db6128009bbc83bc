package caliper

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// defaultDragDeadZone is the movement in pixels below which a
	// press/release pair counts as a click rather than a camera drag.
	defaultDragDeadZone = 4.0
	// doubleClickWindow is the maximum delay between two clicks for
	// the second to count as a double click.
	doubleClickWindow = 400 * time.Millisecond
)

// Renderer draws the scene each frame. Caliper draws nothing itself;
// the rendering engine is an external collaborator.
type Renderer interface {
	Draw(screen *ebiten.Image, cam *OrbitCamera)
}

// Viewer is the ebiten host: it implements ebiten.Game, pumps the
// Loop's frame scheduler, translates raw mouse/keyboard input into
// Controller calls, drives the OrbitCamera, and maps cursor
// descriptors onto the window cursor. It is the glue between the
// hardware runtime and the interaction layer; all semantic behavior
// lives in the states it forwards to.
type Viewer struct {
	channel    *Channel
	controller *Controller
	loop       *Loop
	camera     *OrbitCamera
	picker     Picker
	renderer   Renderer

	width, height int

	// Frame scheduler: callbacks requested by the Loop run at the top
	// of the next Update.
	pending []func()
	running []func()

	// Pointer state machine.
	mouseDown    bool
	downX, downY float64
	lastX, lastY float64
	moved        bool
	panning      bool
	dragDeadZone float64

	// Double-click detection.
	lastClickTime time.Time
	lastClickX    float64
	lastClickY    float64

	// Key edge detection.
	prevKeys map[ebiten.Key]bool

	cursor Cursor

	injectQueue []syntheticEvent
	script      *ScriptRunner
}

// NewViewer assembles a viewer around the given channel, registry,
// picker, and renderer. The loop is created but not started; Run (or
// the caller) starts it.
func NewViewer(ch *Channel, reg *Registry, picker Picker, renderer Renderer, width, height int) *Viewer {
	v := &Viewer{
		channel:      ch,
		camera:       NewOrbitCamera(10),
		picker:       picker,
		renderer:     renderer,
		width:        width,
		height:       height,
		dragDeadZone: defaultDragDeadZone,
		prevKeys:     make(map[ebiten.Key]bool),
	}
	v.controller = NewController(ch, reg, v, v.camera)
	v.loop = NewLoop(ch)
	v.loop.SetScheduler(v.scheduleFrame)
	return v
}

// Channel returns the viewer's event channel.
func (v *Viewer) Channel() *Channel { return v.channel }

// Controller returns the interaction controller.
func (v *Viewer) Controller() *Controller { return v.controller }

// Camera returns the orbit camera.
func (v *Viewer) Camera() *OrbitCamera { return v.camera }

// Loop returns the clock driver.
func (v *Viewer) Loop() *Loop { return v.loop }

// SetDragDeadZone sets the minimum movement in pixels before a press
// counts as a camera drag instead of a click.
func (v *Viewer) SetDragDeadZone(pixels float64) {
	v.dragDeadZone = pixels
}

// SetCursor maps a cursor descriptor onto the window cursor.
// Implements CursorSetter.
func (v *Viewer) SetCursor(c Cursor) {
	if c == v.cursor {
		return
	}
	v.cursor = c
	ebiten.SetCursorShape(c.EbitenShape())
}

// scheduleFrame queues fn for the top of the next Update. This is the
// "request next frame callback" primitive the Loop re-arms with.
func (v *Viewer) scheduleFrame(fn func()) {
	v.pending = append(v.pending, fn)
}

// Update implements ebiten.Game. Order per frame: scheduled frame
// callbacks (Loop emissions) first, then scripted/injected input, then
// real input.
func (v *Viewer) Update() error {
	v.runScheduled()

	dt := float32(1.0 / float64(ebiten.TPS()))
	v.camera.Update(dt)

	if v.script != nil {
		v.script.step(v)
	}
	if v.consumeInjected() {
		return nil
	}

	mods := readModifiers()
	v.processMouse(mods)
	v.processKeys(mods)
	return nil
}

// runScheduled drains the callbacks armed for this frame. Callbacks
// re-arming during the drain land in the next frame's batch.
func (v *Viewer) runScheduled() {
	v.running, v.pending = v.pending, v.running[:0]
	for _, fn := range v.running {
		fn()
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processMouse runs the pointer state machine: camera drags (rotate,
// or pan while Shift is held), wheel zoom, hover moves, and
// click/double-click dispatch on release inside the dead zone.
func (v *Viewer) processMouse(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		v.camera.Zoom(wheelY)
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && !v.mouseDown:
		v.mouseDown = true
		v.downX, v.downY = x, y
		v.lastX, v.lastY = x, y
		v.moved = false
		v.panning = mods&ModShift != 0 ||
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	case pressed && v.mouseDown:
		dx, dy := x-v.lastX, y-v.lastY
		if dx != 0 || dy != 0 {
			if !v.moved {
				tx, ty := x-v.downX, y-v.downY
				if tx*tx+ty*ty > v.dragDeadZone*v.dragDeadZone {
					v.moved = true
				}
			}
			if v.moved {
				if v.panning {
					v.camera.Pan(dx, dy)
				} else {
					v.camera.Rotate(dx, dy)
				}
			}
			v.lastX, v.lastY = x, y
		}

	case !pressed && v.mouseDown:
		v.mouseDown = false
		if !v.moved {
			v.dispatchClick(x, y)
		}
		v.panning = false

	default:
		// Hover move.
		if x != v.lastX || y != v.lastY {
			v.lastX, v.lastY = x, y
			v.hoverAt(x, y)
		}
	}
}

// dispatchClick resolves a click through the picker and forwards it to
// the controller. A second click inside the double-click window and
// dead zone additionally dispatches a double click, matching the
// click-click-dblclick sequence browsers deliver.
func (v *Viewer) dispatchClick(x, y float64) {
	now := time.Now()
	dx, dy := x-v.lastClickX, y-v.lastClickY
	isDouble := now.Sub(v.lastClickTime) <= doubleClickWindow &&
		dx*dx+dy*dy <= v.dragDeadZone*v.dragDeadZone
	if isDouble {
		// Consume the pair; a triple click starts over.
		v.lastClickTime = time.Time{}
	} else {
		v.lastClickTime = now
		v.lastClickX, v.lastClickY = x, y
	}

	if hit, ok := v.pick(x, y); ok {
		v.controller.Click(hit.Point, hit)
	}
	if isDouble {
		v.controller.DoubleClick()
	}
}

// hoverAt forwards a pointer move over the scene to the controller.
func (v *Viewer) hoverAt(x, y float64) {
	if hit, ok := v.pick(x, y); ok {
		v.controller.MouseMove(hit.Point)
	}
}

func (v *Viewer) pick(x, y float64) (Intersection, bool) {
	if v.picker == nil {
		return Intersection{}, false
	}
	return v.picker.Pick(x, y)
}

// hostKeys maps the ebiten keys the interaction layer cares about.
var hostKeys = [...]struct {
	ebiten ebiten.Key
	key    Key
}{
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyBackspace, KeyBackspace},
}

// processKeys edge-detects key presses and forwards them to the
// controller, plus printable characters as KeyRune events.
func (v *Viewer) processKeys(mods KeyModifiers) {
	for _, m := range hostKeys {
		down := ebiten.IsKeyPressed(m.ebiten)
		if down && !v.prevKeys[m.ebiten] {
			v.controller.KeyDown(KeyEvent{Key: m.key, Modifiers: mods})
		}
		v.prevKeys[m.ebiten] = down
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		v.controller.KeyDown(KeyEvent{Key: KeyRune, Rune: r, Modifiers: mods})
	}
}

// Draw implements ebiten.Game by delegating to the renderer, if any.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.renderer != nil {
		v.renderer.Draw(screen, v.camera)
	}
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(int, int) (int, int) {
	return v.width, v.height
}
