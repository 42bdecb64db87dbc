package pencil

import (
	"log/slog"
	"time"
)

// debugReportEvery is the number of frames aggregated per debug log line.
const debugReportEvery = 60

// debugMaxTreeDepth and debugMaxChildCount trigger warnings in debug mode.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// frameStats aggregates per-frame timings. Only populated when
// Config.Debug is set.
type frameStats struct {
	frames    int
	paintTime time.Duration
	totalTime time.Duration
	worst     time.Duration
	painted   int
	stepped   int
}

// record adds one frame and logs a summary every debugReportEvery frames.
func (f *frameStats) record(frame uint64, painted, stepped int, paint, total time.Duration) {
	f.frames++
	f.paintTime += paint
	f.totalTime += total
	f.worst = max(f.worst, total)
	f.painted = painted
	f.stepped = stepped
	if f.frames < debugReportEvery {
		return
	}
	n := time.Duration(f.frames)
	Logger().Debug("pencil: frame stats",
		slog.Uint64("frame", frame),
		slog.Duration("paint_avg", f.paintTime/n),
		slog.Duration("total_avg", f.totalTime/n),
		slog.Duration("worst", f.worst),
		slog.Int("painted", f.painted),
		slog.Int("stepped", f.stepped),
	)
	*f = frameStats{}
}

// debugCheckTree warns when the tree under c grows unusually deep or wide.
func debugCheckTree(c *Component) {
	c.Walk(func(n *Component) bool {
		if d := n.Depth(); d > debugMaxTreeDepth {
			Logger().Warn("pencil: tree depth exceeds threshold",
				"depth", d, "threshold", debugMaxTreeDepth, "component", n.String())
			return false
		}
		if len(n.children) > debugMaxChildCount {
			Logger().Warn("pencil: child count exceeds threshold",
				"children", len(n.children), "threshold", debugMaxChildCount, "component", n.String())
		}
		return true
	})
}
