package caliper

import "time"

// Topic catalogue. Payload types are fixed per topic:
//
//	TopicFrame          (nil)               every scheduled frame callback
//	TopicTick           TickEvent           at most once per tick interval
//	TopicPointSelected  PointSelectedEvent  per qualifying click
//	TopicPointHover     HoverEvent          per mouse move while measuring
//	TopicAreaFinish     (nil)               per Escape or double-click in a polygon state
const (
	TopicFrame         Topic = "app:frame"
	TopicTick          Topic = "app:tick"
	TopicPointSelected Topic = "measurement:point:selected"
	TopicPointHover    Topic = "measurement:point:hover"
	TopicAreaFinish    Topic = "measurement:area:finish"
)

// TickEvent is the payload of TopicTick. Delta is the time elapsed
// since the previous tick emission, not since the frame started, so
// it is always at least the configured tick interval and jitters
// upward with frame timing.
type TickEvent struct {
	Delta time.Duration
}

// PointSelectedEvent is the payload of TopicPointSelected. Point is a
// value copy taken at emission time; mutating the source vector after
// the click does not alter the payload. Face is nil when the
// intersection had no face.
type PointSelectedEvent struct {
	Point  Vector3
	Tool   ToolID
	Object ObjectRef
	Face   FaceRef
}

// HoverEvent is the payload of TopicPointHover, emitted while a
// measurement state tracks the pointer so consumers can preview the
// pending segment.
type HoverEvent struct {
	Point Vector3
	Tool  ToolID
}
