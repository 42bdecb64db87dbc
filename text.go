package pencil

import (
	"context"
	"strings"
	"sync"

	"github.com/gogpu/gg"
)

// Option keys of text-bearing shapes.
const (
	OptFont       = "font"
	OptFontSize   = "fontSize"
	OptAlign      = "align"
	OptLineHeight = "lineHeight"
)

// TextDefaults returns the options a Text starts from.
func TextDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{
		OptFont:       DefaultFont,
		OptFontSize:   16.0,
		OptAlign:      string(AlignLeft),
		OptLineHeight: 1.0,
	})
}

var defaultMeasurer = sync.OnceValue(func() Measurer {
	return NewCachedMeasurer(NewFaceMeasurer(nil), 0)
})

// measurer returns the scene's measurer, or a shared one for detached
// components.
func (c *Component) measurer() Measurer {
	if s := c.Scene(); s != nil {
		return s.measurer
	}
	return defaultMeasurer()
}

// textStyle reads the text options of c.
func (c *Component) textStyle() TextStyle {
	return TextStyle{
		Font:       c.options.String(OptFont),
		Size:       max(c.options.Float(OptFontSize), 0),
		Align:      TextAlign(c.options.String(OptAlign)),
		LineHeight: max(c.options.Float(OptLineHeight), 0),
	}
}

// drawLines paints the lines of s inside box, aligned per style.
func drawLines(surf Surface, m Measurer, s string, box Rect, style TextStyle, fill Color) {
	lines := strings.Split(s, "\n")
	lh := box.Height / float64(len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		x := box.X
		switch style.Align {
		case AlignCenter:
			x += (box.Width - m.Measure(line, style).Width) / 2
		case AlignRight:
			x += box.Width - m.Measure(line, style).Width
		}
		surf.DrawText(line, Position{x, box.Y + float64(i)*lh}, style, fill)
	}
}

// isFontURL reports whether a font option names a file to load rather
// than a registered family.
func isFontURL(font string) bool {
	lower := strings.ToLower(font)
	return strings.Contains(font, "/") ||
		strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
}

// Text is one or more lines of text. Its box is measured from the font, so
// origin names like "center" anchor the text block.
type Text struct {
	*Component

	text      string
	fontAsked string
}

// NewText creates a text block at pos. Lines are separated by "\n".
func NewText(pos Position, text string, opts ...Options) *Text {
	t := &Text{text: text}
	t.Component = mustComponent(t, pos, TextDefaults(), MergeOptions(opts...))
	return t
}

// Type returns "Text".
func (t *Text) Type() string { return "Text" }

// Text returns the content.
func (t *Text) Text() string { return t.text }

// SetText replaces the content.
func (t *Text) SetText(s string) {
	t.text = s
	t.MarkDirty()
}

// Lines returns the content split on line breaks.
func (t *Text) Lines() []string { return strings.Split(t.text, "\n") }

// Size measures the text block.
func (t *Text) Size() (float64, float64) {
	sz := t.measurer().Measure(t.text, t.textStyle())
	return sz.Width, sz.Height
}

// Trace adds the text box. It is used for hit-testing and bounds only;
// glyphs are drawn by PaintContent.
func (t *Text) Trace(p *gg.Path) {
	w, h := t.Size()
	p.Rectangle(0, 0, w, h)
}

// PaintContent draws every line with the fill color.
func (t *Text) PaintContent(s Surface, _ *gg.Path, style PaintStyle) {
	if !style.HasFill() {
		return
	}
	w, h := t.Size()
	off := t.OriginOffset()
	box := Rect{X: off.X, Y: off.Y, Width: w, Height: h}
	drawLines(s, t.measurer(), t.text, box, t.textStyle(), style.Fill)
}

// pollResources loads the font when the font option is a file or URL that
// the scene's font book does not know yet.
func (t *Text) pollResources(s *Scene) {
	font := t.options.String(OptFont)
	if !isFontURL(font) || font == t.fontAsked || s.fonts.Has(font) {
		return
	}
	t.fontAsked = font
	loadAsync(t.Component, s, font,
		func(ctx context.Context) ([]byte, error) { return s.loader.LoadFont(ctx, font) },
		func(data []byte) {
			if err := s.fonts.Register(font, data); err != nil {
				Logger().Warn("pencil: font rejected", "url", font, "err", err)
				return
			}
			if cm, ok := s.measurer.(*CachedMeasurer); ok {
				cm.Purge()
			}
		})
}

// MarshalFields records the content.
func (t *Text) MarshalFields() Options {
	return Options{"text": t.text}
}

func textFromDefinition(def Definition) (Shape, error) {
	t := &Text{text: fieldString(def.Fields, "text", "")}
	base, err := newComponent(t, def.Position, TextDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	t.Component = base
	return t, nil
}
