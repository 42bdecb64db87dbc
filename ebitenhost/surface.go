// Package ebitenhost runs a pencil scene in an Ebitengine window. It
// provides a pencil.Surface over *ebiten.Image and an ebiten.Game that
// polls mouse, touch, wheel and keyboard input and feeds it to the scene.
package ebitenhost

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/shamseena-dev/pencil"
)

var lineJoins = map[string]vector.LineJoin{
	"miter": vector.LineJoinMiter,
	"round": vector.LineJoinRound,
	"bevel": vector.LineJoinBevel,
}

var lineCaps = map[string]vector.LineCap{
	"butt":   vector.LineCapButt,
	"round":  vector.LineCapRound,
	"square": vector.LineCapSquare,
}

var cursorShapes = map[pencil.Cursor]ebiten.CursorShapeType{
	pencil.CursorDefault:    ebiten.CursorShapeDefault,
	pencil.CursorPointer:    ebiten.CursorShapePointer,
	pencil.CursorText:       ebiten.CursorShapeText,
	pencil.CursorMove:       ebiten.CursorShapeMove,
	pencil.CursorGrab:       ebiten.CursorShapePointer,
	pencil.CursorGrabbing:   ebiten.CursorShapeMove,
	pencil.CursorCrosshair:  ebiten.CursorShapeCrosshair,
	pencil.CursorNotAllowed: ebiten.CursorShapeNotAllowed,
	pencil.CursorEWResize:   ebiten.CursorShapeEWResize,
	pencil.CursorNSResize:   ebiten.CursorShapeNSResize,
}

type faceSource struct {
	ttf []byte
	src *text.GoTextFaceSource
}

// Surface paints onto the ebiten image handed to Draw. Paths are
// tessellated by the vector package and drawn with DrawTriangles; text
// uses text/v2 faces built from the scene's FontBook.
type Surface struct {
	target        *ebiten.Image
	width, height int
	pixelRatio    float64
	fonts         *pencil.FontBook
	world         pencil.Matrix

	white   *ebiten.Image
	sources map[string]faceSource
	images  map[image.Image]*ebiten.Image
	vs      []ebiten.Vertex
	is      []uint16
	cursor  pencil.Cursor
}

// NewSurface creates a surface of width x height scene units. The window
// backbuffer is pixelRatio times larger.
func NewSurface(width, height int, pixelRatio float64, fonts *pencil.FontBook) *Surface {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if fonts == nil {
		fonts = pencil.DefaultFontBook()
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &Surface{
		width:      width,
		height:     height,
		pixelRatio: pixelRatio,
		fonts:      fonts,
		world:      pencil.IdentityMatrix,
		white:      white,
		sources:    make(map[string]faceSource),
		images:     make(map[image.Image]*ebiten.Image),
		cursor:     pencil.CursorDefault,
	}
}

// SetTarget selects the image the next frame paints onto.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Resize changes the size in scene units, for resizable windows.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// PixelSize returns the backbuffer size.
func (s *Surface) PixelSize() (int, int) {
	return int(math.Ceil(float64(s.width) * s.pixelRatio)), int(math.Ceil(float64(s.height) * s.pixelRatio))
}

// Size returns the surface size in scene units.
func (s *Surface) Size() pencil.Size {
	return pencil.Size{Width: float64(s.width), Height: float64(s.height)}
}

// Clear fills the target with bg.
func (s *Surface) Clear(bg pencil.Color) {
	if s.target == nil {
		return
	}
	s.target.Fill(bg.NRGBA())
}

// SetTransform sets the matrix applied to subsequent drawing calls.
func (s *Surface) SetTransform(m pencil.Matrix) {
	s.world = pencil.Scaling(pencil.Pos(s.pixelRatio, s.pixelRatio)).Multiply(m)
}

// vectorPath converts p to device space.
func (s *Surface) vectorPath(p *gg.Path) *vector.Path {
	var vp vector.Path
	pt := func(x, y float64) (float32, float32) {
		d := s.world.Apply(pencil.Pos(x, y))
		return float32(d.X), float32(d.Y)
	}
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			vp.MoveTo(pt(e.Point.X, e.Point.Y))
		case gg.LineTo:
			vp.LineTo(pt(e.Point.X, e.Point.Y))
		case gg.QuadTo:
			cx, cy := pt(e.Control.X, e.Control.Y)
			x, y := pt(e.Point.X, e.Point.Y)
			vp.QuadTo(cx, cy, x, y)
		case gg.CubicTo:
			c1x, c1y := pt(e.Control1.X, e.Control1.Y)
			c2x, c2y := pt(e.Control2.X, e.Control2.Y)
			x, y := pt(e.Point.X, e.Point.Y)
			vp.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case gg.Close:
			vp.Close()
		}
	}
	return &vp
}

func (s *Surface) drawTriangles(c pencil.Color, rule ebiten.FillRule) {
	n := c.NRGBA()
	for i := range s.vs {
		s.vs[i].SrcX, s.vs[i].SrcY = 0, 0
		s.vs[i].ColorR = float32(n.R) / 255
		s.vs[i].ColorG = float32(n.G) / 255
		s.vs[i].ColorB = float32(n.B) / 255
		s.vs[i].ColorA = float32(n.A) / 255
	}
	s.target.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
		FillRule:       rule,
		AntiAlias:      true,
	})
}

// FillPath fills p with the non-zero winding rule.
func (s *Surface) FillPath(p *gg.Path, fill pencil.Color) {
	if s.target == nil || !fill.Visible() {
		return
	}
	s.vs, s.is = s.vectorPath(p).AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	s.drawTriangles(fill, ebiten.FillRuleNonZero)
}

// StrokePath outlines p. The width scales with the transform.
func (s *Surface) StrokePath(p *gg.Path, stroke pencil.Color, style pencil.StrokeStyle) {
	if s.target == nil || !stroke.Visible() || style.Width <= 0 {
		return
	}
	s.vs, s.is = s.vectorPath(p).AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:      float32(style.Width * s.world.ScaleFactor()),
		LineJoin:   lineJoins[style.Join],
		LineCap:    lineCaps[style.Cap],
		MiterLimit: 10,
	})
	s.drawTriangles(stroke, ebiten.FillRuleFillAll)
}

// geoM converts the current transform.
func (s *Surface) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	m := s.world
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

func (s *Surface) face(style pencil.TextStyle) *text.GoTextFace {
	key, ttf := s.fonts.Data(style.Font)
	fs, ok := s.sources[key]
	if !ok || len(fs.ttf) != len(ttf) || (len(ttf) > 0 && &fs.ttf[0] != &ttf[0]) {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			pencil.Logger().Warn("ebitenhost: font rejected", "font", key, "err", err)
			return nil
		}
		fs = faceSource{ttf: ttf, src: src}
		s.sources[key] = fs
	}
	return &text.GoTextFace{Source: fs.src, Size: max(style.Size, 1)}
}

// DrawText draws one line with its line box at topLeft. Text follows the
// full transform, rotation included.
func (s *Surface) DrawText(line string, topLeft pencil.Position, style pencil.TextStyle, fill pencil.Color) {
	if s.target == nil || line == "" || !fill.Visible() {
		return
	}
	face := s.face(style)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(topLeft.X, topLeft.Y)
	op.GeoM.Concat(s.geoM())
	op.ColorScale.ScaleWithColor(fill.NRGBA())
	text.Draw(s.target, line, face, op)
}

// DrawImage draws the src region of img scaled into dst. Converted images
// are kept for the surface's lifetime.
func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst pencil.Rect, opacity float64) {
	if s.target == nil || img == nil || opacity <= 0 || src.Empty() {
		return
	}
	eimg, ok := s.images[img]
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
		s.images[img] = eimg
	}
	sub := eimg.SubImage(src.Sub(img.Bounds().Min)).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(dst.Width/float64(src.Dx()), dst.Height/float64(src.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.GeoM.Concat(s.geoM())
	op.ColorScale.ScaleAlpha(float32(pencil.Clamp(opacity, 0, 1)))
	s.target.DrawImage(sub, op)
}

// SetCursor changes the window's cursor shape.
func (s *Surface) SetCursor(c pencil.Cursor) {
	if c == s.cursor {
		return
	}
	s.cursor = c
	if c == pencil.CursorNone {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	shape, ok := cursorShapes[c]
	if !ok {
		shape = ebiten.CursorShapeDefault
	}
	ebiten.SetCursorShape(shape)
}
