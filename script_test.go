package pencil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// playFrames steps r and renders until it is done or limit frames pass.
func playFrames(t *testing.T, s *Scene, r *ScriptRunner, limit int) int {
	t.Helper()
	frames := 0
	for !r.Done() {
		if frames == limit {
			t.Fatalf("script not done after %d frames", limit)
		}
		r.Step(s)
		s.Frame()
		r.AfterFrame(s)
		frames++
	}
	return frames
}

// --- Parsing ---

func TestParseScript(t *testing.T) {
	r, err := ParseScript([]byte(`
steps:
  - {action: click, x: 10, y: 10}
  - {action: wait, frames: 3}
  - {action: key, key: Enter}
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 || r.steps[2].Key != "Enter" {
		t.Errorf("steps = %+v", r.steps)
	}
	if r.ScreenshotDir != DefaultScreenshotDir {
		t.Errorf("ScreenshotDir = %q", r.ScreenshotDir)
	}
}

func TestParseScriptJSON(t *testing.T) {
	r, err := ParseScript([]byte(`{"steps": [{"action": "drag", "fromX": 1, "fromY": 2, "toX": 3, "toY": 4, "frames": 5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	st := r.steps[0]
	if st.FromY != 2 || st.ToX != 3 || st.Frames != 5 {
		t.Errorf("step = %+v", st)
	}
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed", "steps: [", "parse script"},
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps: [{action: teleport}]", `unknown action "teleport"`},
		{"key without key", "steps: [{action: key}]", "without a key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

// --- Replay ---

func TestScriptClick(t *testing.T) {
	s, _ := newTestScene(t, 100, 100)
	r := NewRectangle(Pos(0, 0), 50, 50, Options{OptFill: "#ff0000"})
	_ = s.Attach(r)
	var log eventLog
	log.watch("r", r, EventDown, EventUp, EventClick)

	runner := NewScriptRunner(ScriptStep{Action: ActionClick, X: 10, Y: 10})
	if n := playFrames(t, s, runner, 10); n != 2 {
		t.Errorf("click took %d frames, want 2", n)
	}
	log.expect(t, "r:down", "r:up", "r:click")
}

func TestScriptDrag(t *testing.T) {
	s, _ := newTestScene(t, 100, 100)
	r := NewRectangle(Pos(10, 10), 20, 20, Options{OptFill: "#ff0000"})
	r.Draggable(DragOptions{})
	_ = s.Attach(r)
	var log eventLog
	log.watch("r", r, EventGrab, EventDrag, EventDrop)

	runner := NewScriptRunner(ScriptStep{Action: ActionDrag, FromX: 15, FromY: 15, ToX: 45, ToY: 15, Frames: 5})
	if n := playFrames(t, s, runner, 20); n != 5 {
		t.Errorf("drag took %d frames, want 5", n)
	}
	log.expect(t, "r:grab", "r:drag", "r:drag", "r:drop")
	assertPos(t, "position", r.Position(), Pos(40, 10))
}

func TestScriptWaitAndKey(t *testing.T) {
	s, _ := newTestScene(t, 200, 100)
	b := NewButton(Pos(10, 10), "OK")
	_ = s.Attach(b)
	s.Focus(b)
	clicks := 0
	b.On(EventClick, func(*Event) { clicks++ })

	runner := NewScriptRunner(
		ScriptStep{Action: ActionWait, Frames: 3},
		ScriptStep{Action: ActionKey, Key: "Enter"},
	)
	if n := playFrames(t, s, runner, 20); n != 5 {
		t.Errorf("took %d frames, want 3 waiting plus key down and up", n)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d", clicks)
	}
}

func TestScriptWheel(t *testing.T) {
	s, _ := newTestScene(t, 100, 100)
	r := NewRectangle(Pos(0, 0), 50, 50)
	_ = s.Attach(r)
	var log eventLog
	log.watch("r", r, EventScrollUp, EventZoomIn)
	playFrames(t, s, NewScriptRunner(ScriptStep{Action: ActionWheel, X: 5, Y: 5, Delta: -1}), 5)
	log.expect(t, "r:scroll-up", "r:zoom-in")
}

func TestScriptStepReportsDispatch(t *testing.T) {
	s, _ := newTestScene(t, 10, 10)
	runner := NewScriptRunner(
		ScriptStep{Action: ActionWait, Frames: 1},
		ScriptStep{Action: ActionMove, X: 1, Y: 1},
	)
	if runner.Step(s) {
		t.Error("wait frame should not dispatch")
	}
	if !runner.Step(s) {
		t.Error("move frame should dispatch")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

// --- Screenshots ---

func TestScriptScreenshot(t *testing.T) {
	s, _ := newTestScene(t, 20, 20)
	dir := filepath.Join(t.TempDir(), "shots")
	runner := NewScriptRunner(ScriptStep{Action: ActionScreenshot, Label: "after click/drag"})
	runner.ScreenshotDir = dir
	if err := runner.Play(s); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "_after_click_drag.png") {
		t.Errorf("screenshots = %v", entries)
	}
}

func TestScriptScreenshotFailure(t *testing.T) {
	s, _ := newTestScene(t, 20, 20)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	runner := NewScriptRunner(ScriptStep{Action: ActionScreenshot})
	runner.ScreenshotDir = blocker
	if err := runner.Play(s); err == nil {
		t.Error("expected an error when the directory is a file")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"  ", "unlabeled"},
		{"menu-open.v2", "menu-open.v2"},
		{"a b/c", "a_b_c"},
		{"é", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeLabel(tt.in); got != tt.want {
				t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
