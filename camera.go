package caliper

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// rotateSpeed converts pointer drag pixels into radians.
	rotateSpeed = 0.01
	// zoomSpeed scales wheel movement into a distance factor.
	zoomSpeed = 0.03
	// pitchLimit clamps vertical rotation short of the poles.
	pitchLimit = 1.5
	// minDistance keeps the camera from passing through the target.
	minDistance = 1.0
)

// presetAnim holds active view-preset tweens for yaw, pitch, and distance.
type presetAnim struct {
	yaw      *gween.Tween
	pitch    *gween.Tween
	distance *gween.Tween
}

// OrbitCamera orbits a target point at a distance, driven by pointer
// drags and the scroll wheel. It is the reference implementation of
// the OrbitControls gate the Controller consumes: measurement states
// disable it on enter so drags select points instead of moving the
// view, and re-enable it on exit.
type OrbitCamera struct {
	// Target is the world-space point the camera orbits and looks at.
	Target Vector3
	// Yaw is the horizontal orbit angle in radians.
	Yaw float64
	// Pitch is the vertical orbit angle in radians, clamped to
	// [-pitchLimit, pitchLimit].
	Pitch float64
	// Distance is the orbit radius; never below minDistance.
	Distance float64

	enabled bool
	preset  *presetAnim
}

// NewOrbitCamera creates an enabled camera orbiting the origin at the
// given distance.
func NewOrbitCamera(distance float64) *OrbitCamera {
	if distance < minDistance {
		distance = minDistance
	}
	return &OrbitCamera{Distance: distance, enabled: true}
}

// SetEnabled gates input handling. While disabled, Rotate, Pan, and
// Zoom are ignored; preset animations still advance and the camera
// still reports its position. Implements OrbitControls.
func (c *OrbitCamera) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether input handling is active.
func (c *OrbitCamera) Enabled() bool {
	return c.enabled
}

// Rotate orbits the camera by a pointer drag delta in pixels. Manual
// input cancels a running preset animation.
func (c *OrbitCamera) Rotate(dx, dy float64) {
	if !c.enabled {
		return
	}
	c.preset = nil
	c.Yaw += dx * rotateSpeed
	c.Pitch -= dy * rotateSpeed
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// Zoom moves the camera along its view axis by scroll wheel movement.
// Positive wheel values zoom in.
func (c *OrbitCamera) Zoom(wheel float64) {
	if !c.enabled || wheel == 0 {
		return
	}
	c.preset = nil
	c.Distance *= 1.0 - wheel*zoomSpeed
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
}

// Pan shifts the orbit target in the camera's view plane by a pointer
// drag delta in pixels. The pan scale grows with distance so a
// screen-space drag feels constant at any zoom.
func (c *OrbitCamera) Pan(dx, dy float64) {
	if !c.enabled {
		return
	}
	c.preset = nil
	scale := c.Distance * 0.002
	right := Vector3{X: math.Cos(c.Yaw), Z: -math.Sin(c.Yaw)}
	up := Vector3{Y: 1}
	c.Target = c.Target.Sub(right.Mul(dx * scale)).Add(up.Mul(dy * scale))
}

// Position returns the camera's world-space position computed from its
// spherical coordinates around Target.
func (c *OrbitCamera) Position() Vector3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(Vector3{
		X: c.Distance * cp * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Cos(c.Yaw),
	})
}

// ViewPreset identifies a canned camera orientation.
type ViewPreset uint8

const (
	ViewHome  ViewPreset = iota // three-quarter overview
	ViewFront                   // looking down -Z
	ViewTop                     // straight down
	ViewRight                   // looking down -X
)

// presetAngles returns the yaw and pitch for a preset.
func presetAngles(p ViewPreset) (yaw, pitch float64) {
	switch p {
	case ViewFront:
		return 0, 0
	case ViewTop:
		return 0, pitchLimit
	case ViewRight:
		return math.Pi / 2, 0
	default: // ViewHome
		return math.Pi / 4, math.Pi / 6
	}
}

// AnimateTo eases the camera to a preset orientation over duration
// seconds. The animation advances from Update and is cancelled by any
// manual rotate, pan, or zoom.
func (c *OrbitCamera) AnimateTo(p ViewPreset, distance float64, duration float32) {
	yaw, pitch := presetAngles(p)
	if distance < minDistance {
		distance = minDistance
	}
	c.preset = &presetAnim{
		yaw:      gween.New(float32(c.Yaw), float32(yaw), duration, ease.OutQuad),
		pitch:    gween.New(float32(c.Pitch), float32(pitch), duration, ease.OutQuad),
		distance: gween.New(float32(c.Distance), float32(distance), duration, ease.OutQuad),
	}
}

// SnapTo jumps to a preset orientation immediately.
func (c *OrbitCamera) SnapTo(p ViewPreset, distance float64) {
	c.preset = nil
	c.Yaw, c.Pitch = presetAngles(p)
	c.Distance = distance
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
}

// Animating reports whether a preset animation is in progress.
func (c *OrbitCamera) Animating() bool {
	return c.preset != nil
}

// Update advances any preset animation by dt seconds. Call once per
// frame; subscribing the camera to TopicFrame is the usual wiring.
func (c *OrbitCamera) Update(dt float32) {
	a := c.preset
	if a == nil {
		return
	}
	y, yDone := a.yaw.Update(dt)
	p, pDone := a.pitch.Update(dt)
	d, dDone := a.distance.Update(dt)
	c.Yaw = float64(y)
	c.Pitch = float64(p)
	c.Distance = float64(d)
	if yDone && pDone && dDone {
		c.preset = nil
	}
}
