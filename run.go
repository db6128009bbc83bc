package caliper

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the Run convenience entry point.
type RunConfig struct {
	Title  string
	Width  int // window width in pixels (default 1024)
	Height int // window height in pixels (default 768)

	// Picker resolves screen positions to scene intersections. It is
	// the boundary to the external raycasting engine and is required
	// for any measurement interaction to happen.
	Picker Picker

	// Renderer draws the scene each frame. Optional.
	Renderer Renderer

	// Registry supplies tool states. Nil uses NewRegistry's built-ins.
	Registry *Registry

	// Channel is the event channel shared with downstream consumers.
	// Nil creates a fresh one (retrieve it via Viewer.Channel).
	Channel *Channel

	// TickInterval overrides the app:tick throttle. Zero keeps
	// DefaultTickInterval.
	TickInterval time.Duration

	// InitialTool, when set, activates a tool before the first frame.
	InitialTool ToolID
}

// NewViewerConfig assembles a Viewer from a RunConfig without opening
// a window, so hosts embedding caliper in an existing ebiten.Game can
// drive it themselves.
func NewViewerConfig(cfg RunConfig) (*Viewer, error) {
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	ch := cfg.Channel
	if ch == nil {
		ch = NewChannel()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	v := NewViewer(ch, reg, cfg.Picker, cfg.Renderer, cfg.Width, cfg.Height)
	if cfg.TickInterval > 0 {
		v.loop.SetInterval(cfg.TickInterval)
	}
	if cfg.InitialTool != "" {
		if err := v.controller.SetTool(cfg.InitialTool); err != nil {
			return nil, fmt.Errorf("initial tool: %w", err)
		}
	}
	return v, nil
}

// Run opens a window and runs the viewer until it is closed. The clock
// driver starts before the first frame and stops when Run returns.
func Run(cfg RunConfig) error {
	v, err := NewViewerConfig(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(v.width, v.height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}

	v.loop.Start()
	defer v.loop.Stop()

	debugLogf("run: %dx%d, tick interval %v", v.width, v.height, v.loop.Interval())
	return ebiten.RunGame(v)
}
