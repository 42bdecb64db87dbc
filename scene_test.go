package pencil

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gg"
)

// --- Helpers ---

func newTestScene(t *testing.T, w, h int) (*Scene, *RasterSurface) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	surf := NewRasterSurface(w, h, 1, nil)
	s, err := NewScene(surf, cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	t.Cleanup(s.Close)
	return s, surf
}

// eventLog records "name:kind" entries for events targeted at watched
// components, ignoring events that bubble up from descendants.
type eventLog struct {
	entries []string
}

func (l *eventLog) watch(name string, shape Shape, kinds ...EventKind) {
	c := shape.Base()
	for _, k := range kinds {
		c.On(k, func(ev *Event) {
			if ev.Target == c {
				l.entries = append(l.entries, fmt.Sprintf("%s:%s", name, ev.Kind))
			}
		})
	}
}

func (l *eventLog) reset() { l.entries = nil }

func (l *eventLog) expect(t *testing.T, want ...string) {
	t.Helper()
	if len(l.entries) != len(want) {
		t.Fatalf("events = %v, want %v", l.entries, want)
	}
	for i := range want {
		if l.entries[i] != want[i] {
			t.Fatalf("events = %v, want %v", l.entries, want)
		}
	}
}

var pointerKinds = []EventKind{
	EventHover, EventLeave, EventDown, EventUp, EventClick,
	EventGrab, EventDrag, EventDrop,
	EventScrollUp, EventScrollDown, EventZoomIn, EventZoomOut,
	EventFocus, EventBlur, EventChange,
}

func move(s *Scene, x, y float64) {
	s.DispatchPointer(PointerInput{Kind: PointerMove, X: x, Y: y})
}

func press(s *Scene, x, y float64) {
	s.DispatchPointer(PointerInput{Kind: PointerDown, X: x, Y: y})
}

func release(s *Scene, x, y float64) {
	s.DispatchPointer(PointerInput{Kind: PointerUp, X: x, Y: y})
}

func assertPixel(t *testing.T, surf *RasterSurface, x, y int, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(surf.Image().At(x, y)).(color.NRGBA)
	const tol = 8
	diff := func(a, b uint8) bool { return int(a)-int(b) > tol || int(b)-int(a) > tol }
	if diff(got.R, want.R) || diff(got.G, want.G) || diff(got.B, want.B) || diff(got.A, want.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// stepper is an Animatable test shape recording the frames it was stepped
// on.
type stepper struct {
	*Component
	steps  []uint64
	onStep func()
}

func newStepper(pos Position) *stepper {
	st := &stepper{}
	st.Component = mustComponent(st, pos, ComponentDefaults(), nil)
	return st
}

func (st *stepper) Type() string       { return "stepper" }
func (st *stepper) Trace(p *gg.Path)    { p.Rectangle(0, 0, 10, 10) }
func (st *stepper) Step(frame uint64) {
	st.steps = append(st.steps, frame)
	if st.onStep != nil {
		st.onStep()
	}
}

// --- Scene ---

func TestNewSceneRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 0
	if _, err := NewScene(NewRasterSurface(10, 10, 1, nil), cfg); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("err = %v, want ErrInvalidOption", err)
	}
}

func TestSceneSizeAndCenter(t *testing.T) {
	s, _ := newTestScene(t, 200, 100)
	if got := s.Size(); got != (Size{200, 100}) {
		t.Errorf("Size = %v", got)
	}
	assertPos(t, "Center", s.Center(), Pos(100, 50))
	if s.Scene() != s {
		t.Error("scene root should report itself as its scene")
	}
}

func TestFrameClearsWithBackground(t *testing.T) {
	s, surf := newTestScene(t, 20, 20)
	if err := s.SetOption(OptFill, "#0000ff"); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	assertPixel(t, surf, 10, 10, blue)
	if s.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", s.FrameCount())
	}
}

func TestFrameFiresDraw(t *testing.T) {
	s, _ := newTestScene(t, 20, 20)
	var frames []uint64
	s.On(EventDraw, func(ev *Event) { frames = append(frames, ev.Frame) })
	s.Frame()
	s.Frame()
	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("draw frames = %v, want [1 2]", frames)
	}
}

func TestFrameStepsOncePerFrame(t *testing.T) {
	s, _ := newTestScene(t, 50, 50)
	st := newStepper(Pos(0, 0))
	if err := s.Attach(st); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		s.Frame()
	}
	if len(st.steps) != 3 || st.steps[0] != 1 || st.steps[2] != 3 {
		t.Errorf("steps = %v, want [1 2 3]", st.steps)
	}
}

func TestFrameSkipsHidden(t *testing.T) {
	s, _ := newTestScene(t, 50, 50)
	group := NewContainer(Pos(0, 0))
	inner := newStepper(Pos(0, 0))
	own := newStepper(Pos(0, 0))
	if err := group.Attach(inner); err != nil {
		t.Fatal(err)
	}
	if err := s.Attach(group, own); err != nil {
		t.Fatal(err)
	}
	group.Hide()
	own.Hide()
	s.Frame()
	if len(inner.steps) != 0 || len(own.steps) != 0 {
		t.Errorf("hidden components stepped: inner=%v own=%v", inner.steps, own.steps)
	}
	group.Show()
	s.Frame()
	if len(inner.steps) != 1 {
		t.Errorf("inner steps = %v after showing parent", inner.steps)
	}
}

func TestFrameSkipsDetachedDuringFrame(t *testing.T) {
	s, _ := newTestScene(t, 50, 50)
	first := newStepper(Pos(0, 0))
	second := newStepper(Pos(0, 0))
	if err := s.Attach(first, second); err != nil {
		t.Fatal(err)
	}
	first.onStep = func() { second.Remove() }
	s.Frame()
	if len(first.steps) != 1 {
		t.Errorf("first steps = %v", first.steps)
	}
	if len(second.steps) != 0 {
		t.Errorf("second was stepped after being detached: %v", second.steps)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s, _ := newTestScene(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRunExecutesPostedTasksAndStopsOnClose(t *testing.T) {
	s, _ := newTestScene(t, 10, 10)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	ran := make(chan uint64, 1)
	s.Post(func() { ran <- s.FrameCount() })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task did not run")
	}
	s.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil after Close", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after Close")
	}
}

func TestRunPosted(t *testing.T) {
	s, _ := newTestScene(t, 10, 10)
	var n int
	s.Post(func() { n++ })
	s.Post(func() { n++ })
	s.RunPosted()
	if n != 2 {
		t.Errorf("ran %d tasks, want 2", n)
	}
}
