package pencil

import (
	"image"

	"github.com/gogpu/gg"
)

// Surface is the raster target a Scene paints onto. Paths passed to
// FillPath and StrokePath are in the local frame of the component being
// painted; the surface applies the matrix given to SetTransform.
type Surface interface {
	// Size returns the drawable area in scene units.
	Size() Size
	Clear(bg Color)
	SetTransform(m Matrix)
	FillPath(p *gg.Path, fill Color)
	StrokePath(p *gg.Path, stroke Color, style StrokeStyle)
	// DrawText draws one line whose line box starts at top-left.
	DrawText(line string, topLeft Position, style TextStyle, fill Color)
	// DrawImage draws the src region of img scaled into dst.
	DrawImage(img image.Image, src image.Rectangle, dst Rect, opacity float64)
	SetCursor(c Cursor)
}

// StrokeStyle describes how outlines are drawn.
type StrokeStyle struct {
	Width float64
	Join  string // "miter", "round" or "bevel"
	Cap   string // "butt", "round" or "square"
}

// PaintStyle is the resolved appearance of a component for one frame.
// Opacity has already been multiplied into both colors.
type PaintStyle struct {
	Fill    Color
	Stroke  Color
	Line    StrokeStyle
	Opacity float64
}

// HasFill reports whether painting the fill would change any pixel.
func (s PaintStyle) HasFill() bool {
	return s.Fill.Visible()
}

// HasStroke reports whether painting the outline would change any pixel.
func (s PaintStyle) HasStroke() bool {
	return s.Stroke.Visible() && s.Line.Width > 0
}

// TextStyle selects a font face and line layout. It is comparable and used
// as part of measurement cache keys.
type TextStyle struct {
	Font       string
	Size       float64
	Align      TextAlign
	LineHeight float64 // multiple of Size
}

var lineJoins = map[string]gg.LineJoin{
	"miter": gg.LineJoinMiter,
	"round": gg.LineJoinRound,
	"bevel": gg.LineJoinBevel,
}

var lineCaps = map[string]gg.LineCap{
	"butt":   gg.LineCapButt,
	"round":  gg.LineCapRound,
	"square": gg.LineCapSquare,
}
