// Package caliper is an interaction layer for 3D measurement viewers
// built on [Ebitengine].
//
// Caliper converts raw pointer and keyboard input plus a periodic
// render clock into semantic measurement events: "a point was
// selected", "the area polygon should finish", "a frame/tick
// occurred". Scene rendering, raycasting, and the measurement math
// that consumes the events stay outside; caliper owns the interaction
// state machine in between.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window,
// starts the clock driver, and runs the viewer for you:
//
//	caliper.Run(caliper.RunConfig{
//		Title:       "Part Inspector",
//		Picker:      myRaycaster,
//		Renderer:    myRenderer,
//		InitialTool: caliper.ToolDistance,
//	})
//
// For full control, build the pieces yourself:
//
//	ch := caliper.NewChannel()
//	viewer := caliper.NewViewer(ch, caliper.NewRegistry(), picker, renderer, 1024, 768)
//	viewer.Loop().Start()
//	ebiten.RunGame(viewer)
//
// # Event channel
//
// All components communicate over an explicitly constructed [Channel].
// Subscribe to the topics in events.go to consume interaction output:
//
//	ch.Subscribe(caliper.TopicPointSelected, func(payload any) {
//		ev := payload.(caliper.PointSelectedEvent)
//		fmt.Println("picked", ev.Point, "with", ev.Tool)
//	})
//
// Dispatch is synchronous and single-threaded; handlers may emit and
// subscribe re-entrantly.
//
// # Interaction states
//
// Each measurement tool is a [State]: it owns the cursor glyph,
// suspends the orbit camera while active, and decides what clicks and
// keys mean. [NewRegistry] ships point selection (distance, angle) and
// polygon vertex collection with Escape/double-click finish
// (area-polygon); register your own constructors for custom tools.
// The [Controller] swaps states with a strict exit-before-enter
// guarantee.
//
// # Clock driver
//
// [Loop] turns the per-frame callback into two streams on the channel:
// TopicFrame every frame and TopicTick at most once per tick interval,
// with an injectable clock and scheduler so tests can drive time
// deterministically.
//
// # Key features
//
// Caliper includes an orbit camera with eased view presets (via
// [gween]), ready-made measurement consumers ([DistanceChain],
// [AngleProbe], [PolygonArea]), synthetic input injection, and a JSON
// scripted runner for driving interaction flows headlessly.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package caliper
