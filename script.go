package pencil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Script actions.
const (
	ActionClick      = "click"
	ActionPress      = "press"
	ActionMove       = "move"
	ActionRelease    = "release"
	ActionDrag       = "drag"
	ActionWheel      = "wheel"
	ActionKey        = "key"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
)

// DefaultScreenshotDir receives screenshot steps when the runner names no
// directory.
const DefaultScreenshotDir = "screenshots"

// ScriptStep is a single action of an input script. Coordinates are
// surface pixels, as a host would report them.
type ScriptStep struct {
	Action string  `yaml:"action" json:"action"`
	Label  string  `yaml:"label,omitempty" json:"label,omitempty"`
	X      float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty" json:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty" json:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty" json:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty" json:"toY,omitempty"`
	Delta  float64 `yaml:"delta,omitempty" json:"delta,omitempty"`
	Key    string  `yaml:"key,omitempty" json:"key,omitempty"`
	Frames int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// validate rejects unknown actions up front so a script never stops
// halfway through.
func (st ScriptStep) validate() error {
	switch st.Action {
	case ActionClick, ActionPress, ActionMove, ActionRelease, ActionDrag,
		ActionWheel, ActionWait, ActionScreenshot:
		return nil
	case ActionKey:
		if st.Key == "" {
			return errors.New("key step without a key")
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

type script struct {
	Steps []ScriptStep `yaml:"steps" json:"steps"`
}

// injected is one queued device event.
type injected struct {
	pointer *PointerInput
	key     *KeyInput
}

// ScriptRunner replays an input script against a scene, one device event
// per frame. Call Step before each frame and AfterFrame once it is
// painted.
type ScriptRunner struct {
	// ScreenshotDir receives one timestamped PNG per screenshot step.
	ScreenshotDir string

	steps     []ScriptStep
	cursor    int
	waitCount int
	queue     []injected
	shots     []string
	done      bool
	err       error
}

// ParseScript decodes a YAML or JSON input script:
//
//	steps:
//	  - {action: click, x: 40, y: 30}
//	  - {action: drag, fromX: 40, fromY: 30, toX: 200, toY: 30, frames: 10}
//	  - {action: wait, frames: 5}
//	  - {action: screenshot, label: after-drag}
func ParseScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("pencil: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("pencil: parse script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("pencil: parse script: step %d: %w", i, err)
		}
	}
	return NewScriptRunner(s.Steps...), nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pencil: read script: %w", err)
	}
	return ParseScript(data)
}

// NewScriptRunner creates a runner over steps.
func NewScriptRunner(steps ...ScriptStep) *ScriptRunner {
	return &ScriptRunner{steps: steps, ScreenshotDir: DefaultScreenshotDir}
}

// Done reports whether every step ran and every queued event was
// dispatched.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first screenshot failure, if any.
func (r *ScriptRunner) Err() error {
	return r.err
}

// Step advances the script by one frame and dispatches at most one queued
// event. It reports whether an event was dispatched, in which case hosts
// skip real device input for the frame.
func (r *ScriptRunner) Step(s *Scene) bool {
	r.advance()
	if len(r.queue) == 0 {
		return false
	}
	in := r.queue[0]
	r.queue = r.queue[1:]
	switch {
	case in.pointer != nil:
		s.DispatchPointer(*in.pointer)
	case in.key != nil:
		s.DispatchKey(*in.key)
	}
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
	return true
}

func (r *ScriptRunner) advance() {
	if r.done || len(r.queue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionScreenshot:
		r.shots = append(r.shots, st.Label)
	case ActionClick:
		r.pointer(PointerDown, st.X, st.Y, 0)
		r.pointer(PointerUp, st.X, st.Y, 0)
	case ActionPress:
		r.pointer(PointerDown, st.X, st.Y, 0)
	case ActionMove:
		r.pointer(PointerMove, st.X, st.Y, 0)
	case ActionRelease:
		r.pointer(PointerUp, st.X, st.Y, 0)
	case ActionDrag:
		r.drag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 3))
	case ActionWheel:
		r.pointer(PointerWheel, st.X, st.Y, st.Delta)
	case ActionKey:
		r.queue = append(r.queue,
			injected{key: &KeyInput{Kind: KeyDown, Key: st.Key}},
			injected{key: &KeyInput{Kind: KeyUp, Key: st.Key}})
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}

func (r *ScriptRunner) pointer(kind PointerKind, x, y, delta float64) {
	r.queue = append(r.queue, injected{pointer: &PointerInput{
		Kind: kind, X: x, Y: y, Button: MouseButtonLeft, DeltaY: delta,
	}})
}

// drag queues a press, frames-2 evenly spaced moves ending on the
// destination, and a release: one event per frame.
func (r *ScriptRunner) drag(fromX, fromY, toX, toY float64, frames int) {
	r.pointer(PointerDown, fromX, fromY, 0)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.pointer(PointerMove, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, 0)
	}
	r.pointer(PointerUp, toX, toY, 0)
}

// pngEncoder is implemented by surfaces that can read back their pixels.
type pngEncoder interface {
	EncodePNG(w io.Writer) error
}

// AfterFrame writes the screenshots requested since the last frame. The
// surface must be able to encode itself as PNG.
func (r *ScriptRunner) AfterFrame(s *Scene) {
	if len(r.shots) == 0 {
		return
	}
	shots := r.shots
	r.shots = nil

	enc, ok := s.Surface().(pngEncoder)
	if !ok {
		r.fail(fmt.Errorf("pencil: screenshot: %T cannot encode PNG", s.Surface()))
		return
	}
	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		r.fail(fmt.Errorf("pencil: screenshot: %w", err))
		return
	}
	stamp := time.Now().Format("20060102_150405")
	for _, label := range shots {
		path := filepath.Join(r.ScreenshotDir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writeScreenshot(path, enc); err != nil {
			r.fail(err)
			continue
		}
		Logger().Info("pencil: screenshot saved", "path", path, "frame", s.FrameCount())
	}
}

func (r *ScriptRunner) fail(err error) {
	Logger().Warn("pencil: screenshot failed", "err", err)
	if r.err == nil {
		r.err = err
	}
}

func writeScreenshot(path string, enc pngEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pencil: screenshot: %w", err)
	}
	if err := enc.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("pencil: screenshot %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Play runs the script to completion without a host, rendering one frame
// per step.
func (r *ScriptRunner) Play(s *Scene) error {
	for !r.Done() {
		r.Step(s)
		s.Frame()
		r.AfterFrame(s)
	}
	return r.err
}
