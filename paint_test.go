package pencil

import (
	"image/color"
	"testing"
)

func TestPaintFillAndOrder(t *testing.T) {
	s, surf := newTestScene(t, 60, 60)
	below := NewRectangle(Pos(10, 10), 30, 30, Options{OptFill: "#ff0000"})
	above := NewRectangle(Pos(25, 25), 30, 30, Options{OptFill: "#0000ff"})
	if err := s.Attach(below, above); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	assertPixel(t, surf, 5, 5, white)
	assertPixel(t, surf, 15, 15, red)
	assertPixel(t, surf, 30, 30, blue)
	assertPixel(t, surf, 50, 50, blue)
}

func TestPaintSkipsHidden(t *testing.T) {
	s, surf := newTestScene(t, 40, 40)
	group := NewContainer(Pos(0, 0))
	r := NewRectangle(Pos(0, 0), 40, 40, Options{OptFill: "#ff0000"})
	_ = group.Attach(r)
	_ = s.Attach(group)
	group.Hide()
	s.Frame()
	assertPixel(t, surf, 20, 20, white)
}

func TestPaintOpacityMultiplies(t *testing.T) {
	s, surf := newTestScene(t, 40, 40)
	group := NewContainer(Pos(0, 0), Options{OptOpacity: 0.5})
	r := NewRectangle(Pos(0, 0), 40, 40, Options{OptFill: "#ff0000"})
	_ = group.Attach(r)
	_ = s.Attach(group)
	s.Frame()
	assertPixel(t, surf, 20, 20, color.NRGBA{255, 128, 128, 255})
}

func TestPaintStroke(t *testing.T) {
	s, surf := newTestScene(t, 60, 60)
	c := NewCircle(Pos(30, 30), 20, Options{OptFill: "", OptStroke: "#0000ff", OptStrokeWidth: 4.0})
	_ = s.Attach(c)
	s.Frame()
	assertPixel(t, surf, 50, 30, blue)
	assertPixel(t, surf, 30, 30, white)
}

func TestPaintTransforms(t *testing.T) {
	s, surf := newTestScene(t, 100, 100)
	group := NewContainer(Pos(50, 50))
	group.SetScale(Pos(2, 2))
	r := NewRectangle(Pos(0, 0), 10, 10, Options{OptFill: "#ff0000", OptOrigin: "center"})
	_ = group.Attach(r)
	_ = s.Attach(group)
	s.Frame()
	assertPixel(t, surf, 42, 42, red)
	assertPixel(t, surf, 58, 58, red)
	assertPixel(t, surf, 62, 50, white)
}

func TestPaintPixelRatio(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PixelRatio = 2
	surf := NewRasterSurface(20, 20, 2, nil)
	s, err := NewScene(surf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Size() != (Size{20, 20}) {
		t.Errorf("scene size = %v", s.Size())
	}
	if b := surf.Image().Bounds(); b.Dx() != 40 {
		t.Errorf("pixmap width = %d, want 40", b.Dx())
	}
	_ = s.Attach(NewRectangle(Pos(10, 10), 10, 10, Options{OptFill: "#ff0000"}))
	s.Frame()
	assertPixel(t, surf, 30, 30, red)
	assertPixel(t, surf, 15, 15, white)
}

func TestPaintText(t *testing.T) {
	s, surf := newTestScene(t, 120, 40)
	txt := NewText(Pos(5, 5), "Hello", Options{OptFill: "#000000", OptFontSize: 24.0})
	_ = s.Attach(txt)
	s.Frame()

	w, h := txt.Size()
	var inked int
	img := surf.Image()
	for y := 5; y < 5+int(h); y++ {
		for x := 5; x < 5+int(w); x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R < 128 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no glyph pixels inside the text box")
	}
}

func TestPaintButtonHover(t *testing.T) {
	s, surf := newTestScene(t, 100, 60)
	b := NewButton(Pos(10, 10), "Hi", Options{OptFill: "#ff0000", OptHoverFill: "#0000ff"})
	_ = s.Attach(b)
	s.Frame()
	assertPixel(t, surf, 12, 12, red)
	move(s, 12, 12)
	s.Frame()
	assertPixel(t, surf, 12, 12, blue)
}

func TestComponentPaintDirect(t *testing.T) {
	surf := NewRasterSurface(20, 20, 1, nil)
	surf.Clear(ColorWhite)
	r := NewRectangle(Pos(0, 0), 10, 10, Options{OptFill: "#ff0000"})
	r.Paint(surf, Translation(Pos(5, 5)))
	assertPixel(t, surf, 10, 10, red)
	assertPixel(t, surf, 2, 2, white)
}
