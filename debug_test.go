package pencil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLogs routes pencil's logger to a buffer for the duration of the
// test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func newDebugScene(t *testing.T) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 50, 50
	cfg.Debug = true
	s, err := NewScene(NewRasterSurface(50, 50, 1, nil), cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

// --- Tree checks ---

func TestDebugTreeDepthWarning(t *testing.T) {
	logs := captureLogs(t)
	s := newDebugScene(t)

	var current Shape = s
	for range debugMaxTreeDepth + 2 {
		child := NewContainer(Pos(0, 0))
		if err := current.Base().Attach(child); err != nil {
			t.Fatal(err)
		}
		current = child
	}
	if !strings.Contains(logs.String(), "tree depth exceeds threshold") {
		t.Errorf("expected a depth warning, got %q", logs.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	logs := captureLogs(t)
	s := newDebugScene(t)

	wide := NewContainer(Pos(0, 0))
	for range debugMaxChildCount + 1 {
		_ = wide.Attach(NewContainer(Pos(0, 0)))
	}
	if strings.Contains(logs.String(), "child count") {
		t.Fatal("detached trees should not be checked")
	}
	_ = s.Attach(wide)
	if !strings.Contains(logs.String(), "child count exceeds threshold") {
		t.Errorf("expected a child count warning, got %q", logs.String())
	}
}

func TestReleaseModeSkipsTreeChecks(t *testing.T) {
	logs := captureLogs(t)
	s, _ := newTestScene(t, 50, 50)
	var current Shape = s
	for range debugMaxTreeDepth + 2 {
		child := NewContainer(Pos(0, 0))
		_ = current.Base().Attach(child)
		current = child
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected logs: %q", logs.String())
	}
}

// --- Frame stats ---

func TestFrameStatsReportEvery(t *testing.T) {
	logs := captureLogs(t)
	var f frameStats
	for i := range debugReportEvery - 1 {
		f.record(uint64(i+1), 3, 1, time.Millisecond, 2*time.Millisecond)
	}
	if logs.Len() != 0 {
		t.Fatal("logged before the report interval")
	}
	if f.worst != 2*time.Millisecond || f.frames != debugReportEvery-1 {
		t.Errorf("stats = %+v", f)
	}
	f.record(debugReportEvery, 3, 1, time.Millisecond, 5*time.Millisecond)

	out := logs.String()
	for _, want := range []string{"frame stats", "painted=3", "stepped=1", "worst=5ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("report %q missing %q", out, want)
		}
	}
	if f != (frameStats{}) {
		t.Errorf("stats not reset: %+v", f)
	}
}

func TestDebugSceneReportsFrames(t *testing.T) {
	logs := captureLogs(t)
	s := newDebugScene(t)
	_ = s.Attach(NewRectangle(Pos(0, 0), 10, 10))
	for range debugReportEvery {
		s.Frame()
	}
	if !strings.Contains(logs.String(), "painted=2") {
		t.Errorf("expected the scene and rectangle painted, got %q", logs.String())
	}
}
