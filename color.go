package pencil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	ColorTransparent = Color{}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{1, 1, 1, 1}
)

var namedColors = map[string]Color{
	"black":   ColorBlack,
	"white":   ColorWhite,
	"red":     {1, 0, 0, 1},
	"green":   {0, 0.5, 0, 1},
	"lime":    {0, 1, 0, 1},
	"blue":    {0, 0, 1, 1},
	"yellow":  {1, 1, 0, 1},
	"cyan":    {0, 1, 1, 1},
	"magenta": {1, 0, 1, 1},
	"gray":    {0.5, 0.5, 0.5, 1},
	"grey":    {0.5, 0.5, 0.5, 1},
	"orange":  {1, 0.647, 0, 1},
	"purple":  {0.5, 0, 0.5, 1},
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)", a small set of CSS names, "transparent" or "none".
// The empty string parses as fully transparent (no paint).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "none", "transparent":
		return ColorTransparent, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgb") {
		return parseRGBFunc(s)
	}
	return Color{}, fmt.Errorf("pencil: unknown color %q", s)
}

// MustParseColor is like ParseColor but panics on error. For literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHexColor(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("pencil: bad color alpha %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("pencil: bad hex color %q: %w", s, err)
	}
	return Color{c.R, c.G, c.B, alpha}, nil
}

func parseRGBFunc(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("pencil: bad color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("pencil: bad color %q", s)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("pencil: bad color component in %q: %w", s, err)
		}
		if i < 3 {
			f /= 255
		}
		v[i] = Clamp(f, 0, 1)
	}
	return Color{v[0], v[1], v[2], v[3]}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when not fully opaque.
func (c Color) Hex() string {
	h := colorful.Color{R: Clamp(c.R, 0, 1), G: Clamp(c.G, 0, 1), B: Clamp(c.B, 0, 1)}.Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, uint8(Clamp(c.A, 0, 1)*255+0.5))
}

// Lerp blends c toward other in RGB space.
func (c Color) Lerp(other Color, ratio float64) Color {
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: other.R, G: other.G, B: other.B}
	m := a.BlendRgb(b, Clamp(ratio, 0, 1))
	return Color{m.R, m.G, m.B, Lerp(c.A, other.A, Clamp(ratio, 0, 1))}
}

// Brightness returns the relative luminance of c in [0, 1].
func (c Color) Brightness() float64 {
	_, _, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return l
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Visible reports whether painting c would change any pixel.
func (c Color) Visible() bool {
	return c.A > 0
}

// RGBA converts to the standard library color model.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(Clamp(c.R, 0, 1)*255 + 0.5),
		G: uint8(Clamp(c.G, 0, 1)*255 + 0.5),
		B: uint8(Clamp(c.B, 0, 1)*255 + 0.5),
		A: uint8(Clamp(c.A, 0, 1)*255 + 0.5),
	}
}

func (c Color) gg() gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// MarshalText encodes c as a hex string, so colors stored in options
// serialize the way they are written.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts every form ParseColor does.
func (c *Color) UnmarshalText(data []byte) error {
	v, err := ParseColor(string(data))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
