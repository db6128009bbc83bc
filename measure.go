package caliper

import "math"

// Measurement consumers. These subscribe to the interaction layer's
// semantic events and accumulate geometry; they never touch raw input.
// Each is bound to one tool identifier and ignores selections made by
// other tools.

// Segment is a single measured span between two selected points.
type Segment struct {
	Start, End Vector3
}

// Length returns the segment's length.
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// DistanceChain chains point selections into connected segments and
// tracks their total length. Each selection after the first appends a
// segment from the previous point.
type DistanceChain struct {
	tool   ToolID
	points []Vector3
	sub    Subscription
}

// NewDistanceChain creates a chain listening for point selections made
// by tool on ch.
func NewDistanceChain(ch *Channel, tool ToolID) *DistanceChain {
	d := &DistanceChain{tool: tool}
	d.sub = ch.Subscribe(TopicPointSelected, func(payload any) {
		ev, ok := payload.(PointSelectedEvent)
		if !ok || ev.Tool != d.tool {
			return
		}
		d.points = append(d.points, ev.Point)
	})
	return d
}

// Points returns the selected points in order. The returned slice MUST
// NOT be mutated.
func (d *DistanceChain) Points() []Vector3 {
	return d.points
}

// Segments returns the chained segments between consecutive points.
func (d *DistanceChain) Segments() []Segment {
	if len(d.points) < 2 {
		return nil
	}
	segs := make([]Segment, len(d.points)-1)
	for i := range segs {
		segs[i] = Segment{Start: d.points[i], End: d.points[i+1]}
	}
	return segs
}

// Total returns the summed length of all segments.
func (d *DistanceChain) Total() float64 {
	total := 0.0
	for i := 1; i < len(d.points); i++ {
		total += d.points[i-1].Distance(d.points[i])
	}
	return total
}

// Undo removes the most recently selected point. No-op when empty.
func (d *DistanceChain) Undo() {
	if n := len(d.points); n > 0 {
		d.points = d.points[:n-1]
	}
}

// Clear discards all selected points.
func (d *DistanceChain) Clear() {
	d.points = d.points[:0]
}

// Close unsubscribes the chain from its channel.
func (d *DistanceChain) Close() {
	d.sub.Remove()
}

// AngleProbe measures the angle formed at the second of three selected
// points. A fourth selection starts a fresh measurement.
type AngleProbe struct {
	tool   ToolID
	points []Vector3
	sub    Subscription
}

// NewAngleProbe creates a probe listening for point selections made by
// tool on ch.
func NewAngleProbe(ch *Channel, tool ToolID) *AngleProbe {
	a := &AngleProbe{tool: tool}
	a.sub = ch.Subscribe(TopicPointSelected, func(payload any) {
		ev, ok := payload.(PointSelectedEvent)
		if !ok || ev.Tool != a.tool {
			return
		}
		if len(a.points) == 3 {
			a.points = a.points[:0]
		}
		a.points = append(a.points, ev.Point)
	})
	return a
}

// Complete reports whether three points have been collected.
func (a *AngleProbe) Complete() bool {
	return len(a.points) == 3
}

// Angle returns the angle at the middle point in degrees. ok is false
// until three points are collected or when an arm is degenerate.
func (a *AngleProbe) Angle() (deg float64, ok bool) {
	if len(a.points) != 3 {
		return 0, false
	}
	u := a.points[0].Sub(a.points[1])
	v := a.points[2].Sub(a.points[1])
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0, false
	}
	cos := u.Dot(v) / (lu * lv)
	// Guard rounding drift before acos.
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi, true
}

// Reset discards collected points.
func (a *AngleProbe) Reset() {
	a.points = a.points[:0]
}

// Close unsubscribes the probe from its channel.
func (a *AngleProbe) Close() {
	a.sub.Remove()
}

// PolygonArea collects vertices selected by its tool and closes the
// polygon on TopicAreaFinish. Both finish triggers (Escape and double
// click) deliver the same event, so a second finish on an already
// closed polygon is ignored here.
type PolygonArea struct {
	tool     ToolID
	vertices []Vector3
	closed   bool
	pointSub Subscription
	finSub   Subscription
}

// NewPolygonArea creates a consumer listening for vertex selections by
// tool and finish signals on ch.
func NewPolygonArea(ch *Channel, tool ToolID) *PolygonArea {
	p := &PolygonArea{tool: tool}
	p.pointSub = ch.Subscribe(TopicPointSelected, func(payload any) {
		ev, ok := payload.(PointSelectedEvent)
		if !ok || ev.Tool != p.tool {
			return
		}
		if p.closed {
			// First vertex after a close starts a new polygon.
			p.vertices = p.vertices[:0]
			p.closed = false
		}
		p.vertices = append(p.vertices, ev.Point)
	})
	p.finSub = ch.Subscribe(TopicAreaFinish, func(any) {
		if p.closed || len(p.vertices) < 3 {
			return
		}
		p.closed = true
	})
	return p
}

// Vertices returns the collected vertices in selection order. The
// returned slice MUST NOT be mutated.
func (p *PolygonArea) Vertices() []Vector3 {
	return p.vertices
}

// Closed reports whether the polygon has been finalized.
func (p *PolygonArea) Closed() bool {
	return p.closed
}

// Area returns the area of the closed polygon, or 0 while it is still
// open. Vertices are assumed near-planar; the area is half the
// magnitude of the summed edge cross products, which is exact for
// planar polygons regardless of orientation.
func (p *PolygonArea) Area() float64 {
	if !p.closed || len(p.vertices) < 3 {
		return 0
	}
	var sum Vector3
	for i := range p.vertices {
		j := (i + 1) % len(p.vertices)
		sum = sum.Add(p.vertices[i].Cross(p.vertices[j]))
	}
	return sum.Length() / 2
}

// Close unsubscribes the consumer from its channel.
func (p *PolygonArea) Close() {
	p.pointSub.Remove()
	p.finSub.Remove()
}
