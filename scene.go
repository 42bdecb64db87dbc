package pencil

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
)

// Scene is the root of a component tree bound to a Surface. It owns the
// frame loop, the pointer and keyboard interaction state and the services
// shapes use (measurement, fonts, resource loading).
//
// A Scene and its tree must be driven from a single goroutine: either call
// Frame and the Dispatch methods yourself, or let Run do it and hand work
// from other goroutines over with Post.
type Scene struct {
	*Component

	surface  Surface
	cfg      Config
	fonts    *FontBook
	measurer Measurer
	loader   Loader

	frame   uint64
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   chan func()
	stepBuf []*Component
	loading atomic.Int64

	pointers [maxPointers]pointerState
	captured [maxPointers]*Component
	focused  *Component
	cursor   Cursor

	debug frameStats
}

// SceneOption customizes NewScene.
type SceneOption func(*Scene)

// WithFonts sets the font book used for measurement and drawing.
func WithFonts(b *FontBook) SceneOption {
	return func(s *Scene) { s.fonts = b }
}

// WithMeasurer replaces the cached font measurer.
func WithMeasurer(m Measurer) SceneOption {
	return func(s *Scene) { s.measurer = m }
}

// WithLoader replaces the default file and HTTP loader.
func WithLoader(l Loader) SceneOption {
	return func(s *Scene) { s.loader = l }
}

// SceneDefaults returns the options of a scene root. The fill is the
// configured background.
func SceneDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{
		OptFill: "#ffffff",
	})
}

// NewScene creates a scene painting onto surface.
func NewScene(surface Surface, cfg Config, opts ...SceneOption) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		surface: surface,
		cfg:     cfg,
		tasks:   make(chan func(), 256),
		cursor:  CursorDefault,
	}
	base, err := newComponent(s, Position{}, SceneDefaults(), Options{OptFill: cfg.Background})
	if err != nil {
		return nil, err
	}
	s.Component = base
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = DefaultFontBook()
	}
	if s.measurer == nil {
		s.measurer = NewCachedMeasurer(NewFaceMeasurer(s.fonts), cfg.MeasureCacheSize)
	}
	if s.loader == nil {
		s.loader = NewDefaultLoader(cfg.AssetRoot)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// Type returns "Scene".
func (s *Scene) Type() string { return "Scene" }

// Trace covers the whole surface.
func (s *Scene) Trace(p *gg.Path) {
	sz := s.surface.Size()
	p.Rectangle(0, 0, sz.Width, sz.Height)
}

// PaintContent does nothing: Frame already cleared the surface with the
// background.
func (s *Scene) PaintContent(Surface, *gg.Path, PaintStyle) {}

// ContainsPoint reports whether local lies on the surface. The scene is
// never a hover target; this only matters for Find-style queries.
func (s *Scene) ContainsPoint(local Position) bool {
	sz := s.surface.Size()
	return Rect{Width: sz.Width, Height: sz.Height}.Contains(local)
}

// Surface returns the surface the scene paints onto.
func (s *Scene) Surface() Surface { return s.surface }

// Config returns the scene's settings.
func (s *Scene) Config() Config { return s.cfg }

// Fonts returns the scene's font book.
func (s *Scene) Fonts() *FontBook { return s.fonts }

// Measurer returns the text measurement service.
func (s *Scene) Measurer() Measurer { return s.measurer }

// Loader returns the resource loader.
func (s *Scene) Loader() Loader { return s.loader }

// FrameCount returns the number of frames rendered so far.
func (s *Scene) FrameCount() uint64 { return s.frame }

// Size returns the surface size in scene units.
func (s *Scene) Size() Size { return s.surface.Size() }

// Center returns the middle of the surface.
func (s *Scene) Center() Position {
	sz := s.surface.Size()
	return Position{sz.Width / 2, sz.Height / 2}
}

// Frame renders one frame: apply finished resource loads, fire
// EventDraw, clear the surface, paint the tree, then step every
// Animatable (and running tween) that was painted and is still attached
// and shown.
func (s *Scene) Frame() {
	start := time.Now()
	s.frame++

	s.Walk(func(c *Component) bool {
		if rp, ok := c.variant.(resourcePoller); ok {
			rp.pollResources(s)
		}
		c.settle()
		return true
	})

	s.Fire(&Event{Kind: EventDraw})
	s.surface.Clear(s.options.Color(OptFill))

	s.stepBuf = s.stepBuf[:0]
	var painted int
	s.paint(s.surface, IdentityMatrix, 1, func(c *Component) {
		painted++
		if _, ok := c.variant.(Animatable); ok || len(c.tweens) > 0 {
			s.stepBuf = append(s.stepBuf, c)
		}
	})
	paintDone := time.Now()

	for _, c := range s.stepBuf {
		if c.Scene() != s || !c.IsShown() {
			continue
		}
		if a, ok := c.variant.(Animatable); ok {
			a.Step(s.frame)
		}
		c.stepTweens()
	}
	clear(s.stepBuf)

	if s.cfg.Debug {
		s.debug.record(s.frame, painted, len(s.stepBuf), paintDone.Sub(start), time.Since(start))
	}
}

// Run renders frames at Config.FrameRate until ctx is cancelled or Close
// is called, running posted tasks between frames on the same goroutine.
func (s *Scene) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.FrameRate))
	defer ticker.Stop()
	Logger().Info("pencil: scene running", "fps", s.cfg.FrameRate, "size", s.surface.Size())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.ctx.Done():
			return nil
		case fn := <-s.tasks:
			fn()
		case <-ticker.C:
			s.Frame()
		}
	}
}

// Post queues fn to run on the goroutine executing Run. It is meant for
// other goroutines (input sources, timers) and blocks when the queue is
// full.
func (s *Scene) Post(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.ctx.Done():
	}
}

// Loading reports whether resource loads started by the tree are still in
// flight. A finished load is applied by the next Frame.
func (s *Scene) Loading() bool {
	return s.loading.Load() > 0
}

// RunPosted runs the tasks queued by Post without blocking. Hosts that
// drive Frame themselves call it once per tick.
func (s *Scene) RunPosted() {
	for {
		select {
		case fn := <-s.tasks:
			fn()
		default:
			return
		}
	}
}

// Close stops Run and abandons pending resource loads.
func (s *Scene) Close() {
	s.cancel()
}
