package pencil

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// RasterSurface is a software Surface backed by a github.com/gogpu/gg
// context. It renders headless and is used for tests, the command line tool
// and image export.
//
// Paths are transformed on the CPU before rasterizing so that stroke widths
// scale with the component. Text and images follow the transform's
// translation and scale; rotation is not applied to them.
type RasterSurface struct {
	ctx        *gg.Context
	fonts      *FontBook
	pixelRatio float64
	world      Matrix
	cursor     Cursor
}

// NewRasterSurface creates a surface of width x height scene units.
// pixelRatio scales the backing pixmap (2 renders at twice the
// resolution); values <= 0 mean 1.
func NewRasterSurface(width, height int, pixelRatio float64, fonts *FontBook) *RasterSurface {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	if fonts == nil {
		fonts = DefaultFontBook()
	}
	w := max(int(math.Ceil(float64(width)*pixelRatio)), 1)
	h := max(int(math.Ceil(float64(height)*pixelRatio)), 1)
	return &RasterSurface{
		ctx:        gg.NewContext(w, h),
		fonts:      fonts,
		pixelRatio: pixelRatio,
		world:      IdentityMatrix,
		cursor:     CursorDefault,
	}
}

// Size returns the surface size in scene units.
func (r *RasterSurface) Size() Size {
	return Size{
		Width:  float64(r.ctx.Width()) / r.pixelRatio,
		Height: float64(r.ctx.Height()) / r.pixelRatio,
	}
}

// Clear fills the whole pixmap with bg.
func (r *RasterSurface) Clear(bg Color) {
	r.ctx.ClearWithColor(bg.gg())
}

// SetTransform sets the matrix applied to subsequent drawing calls.
func (r *RasterSurface) SetTransform(m Matrix) {
	r.world = Scaling(Position{r.pixelRatio, r.pixelRatio}).Multiply(m)
}

// FillPath fills p with the non-zero rule.
func (r *RasterSurface) FillPath(p *gg.Path, fill Color) {
	r.replay(p)
	r.ctx.SetRGBA(fill.R, fill.G, fill.B, fill.A)
	r.ctx.SetFillRule(gg.FillRuleNonZero)
	if err := r.ctx.Fill(); err != nil {
		Logger().Debug("pencil: fill failed", "err", err)
	}
}

// StrokePath outlines p.
func (r *RasterSurface) StrokePath(p *gg.Path, stroke Color, style StrokeStyle) {
	r.replay(p)
	r.ctx.SetRGBA(stroke.R, stroke.G, stroke.B, stroke.A)
	r.ctx.SetLineWidth(style.Width * r.world.ScaleFactor())
	if j, ok := lineJoins[style.Join]; ok {
		r.ctx.SetLineJoin(j)
	}
	if c, ok := lineCaps[style.Cap]; ok {
		r.ctx.SetLineCap(c)
	}
	if err := r.ctx.Stroke(); err != nil {
		Logger().Debug("pencil: stroke failed", "err", err)
	}
}

// replay loads p, transformed to device space, as the context's current
// path.
func (r *RasterSurface) replay(p *gg.Path) {
	r.ctx.Identity()
	r.ctx.ClearPath()
	for _, el := range p.Transform(r.world.gg()).Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			r.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			r.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			r.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			r.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			r.ctx.ClosePath()
		}
	}
}

// DrawText draws one line with its line box's top-left corner at topLeft.
func (r *RasterSurface) DrawText(line string, topLeft Position, style TextStyle, fill Color) {
	if line == "" || !fill.Visible() {
		return
	}
	scale := r.world.ScaleFactor()
	face := r.fonts.Face(style.Font, style.Size*scale)
	at := r.world.Apply(topLeft)
	r.ctx.Identity()
	r.ctx.SetFont(face)
	r.ctx.SetRGBA(fill.R, fill.G, fill.B, fill.A)
	r.ctx.DrawString(line, at.X, at.Y+face.Metrics().Ascent)
}

// DrawImage draws the src region of img into the axis-aligned bounds of
// dst under the current transform.
func (r *RasterSurface) DrawImage(img image.Image, src image.Rectangle, dst Rect, opacity float64) {
	if img == nil || opacity <= 0 || src.Empty() {
		return
	}
	a := r.world.Apply(dst.Min())
	b := r.world.Apply(dst.Max())
	x0, y0 := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
	w, h := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
	if w < 1 || h < 1 {
		return
	}
	r.ctx.Identity()
	r.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         x0,
		Y:         y0,
		DstWidth:  w,
		DstHeight: h,
		SrcRect:   &src,
		Opacity:   Clamp(opacity, 0, 1),
	})
}

// SetCursor records the requested cursor. Headless surfaces have no
// pointer to change.
func (r *RasterSurface) SetCursor(c Cursor) {
	r.cursor = c
}

// Cursor returns the last cursor requested by the scene.
func (r *RasterSurface) Cursor() Cursor {
	return r.cursor
}

// Image returns the rendered pixels.
func (r *RasterSurface) Image() image.Image {
	return r.ctx.Image()
}

// EncodePNG writes the rendered pixels as PNG.
func (r *RasterSurface) EncodePNG(w io.Writer) error {
	return r.ctx.EncodePNG(w)
}

// SavePNG writes the rendered pixels to a PNG file.
func (r *RasterSurface) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}
