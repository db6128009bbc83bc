package caliper

import "fmt"

// UnknownToolError reports a Create call for a tool identifier with no
// registered state constructor. The caller decides the fallback
// (typically leaving interaction disabled); the registry never
// guesses.
type UnknownToolError struct {
	Tool ToolID
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("caliper: unknown tool %q", e.Tool)
}

// StateFunc constructs a State for a tool, emitting on the given
// channel.
type StateFunc func(ch *Channel) State

// Registry maps tool identifiers to State constructors.
type Registry struct {
	tools map[ToolID]StateFunc
}

// NewRegistry creates a registry pre-populated with the built-in
// tools: ToolDistance and ToolAngle (point selection) and
// ToolAreaPolygon (vertex selection with finish triggers).
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[ToolID]StateFunc)}
	r.Register(ToolDistance, func(ch *Channel) State { return NewPointState(ToolDistance, ch) })
	r.Register(ToolAngle, func(ch *Channel) State { return NewPointState(ToolAngle, ch) })
	r.Register(ToolAreaPolygon, func(ch *Channel) State { return NewPolygonState(ToolAreaPolygon, ch) })
	return r
}

// Register adds or replaces the constructor for a tool.
func (r *Registry) Register(tool ToolID, fn StateFunc) {
	r.tools[tool] = fn
}

// Create constructs the state variant for tool. It has no side
// effects: on an unregistered identifier it returns an
// *UnknownToolError and nothing else happens, no cursor change and no
// emission.
func (r *Registry) Create(tool ToolID, ch *Channel) (State, error) {
	fn, ok := r.tools[tool]
	if !ok {
		return nil, &UnknownToolError{Tool: tool}
	}
	return fn(ch), nil
}

// Tools returns the registered tool identifiers in unspecified order.
func (r *Registry) Tools() []ToolID {
	out := make([]ToolID, 0, len(r.tools))
	for t := range r.tools {
		out = append(out, t)
	}
	return out
}
