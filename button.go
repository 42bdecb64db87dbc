package pencil

import "github.com/gogpu/gg"

// Option keys of input shapes.
const (
	OptHoverFill   = "hoverFill"
	OptTextColor   = "color"
	OptFocusStroke = "focusStroke"
	OptPadding     = "padding"
)

// InputDefaults returns the options shared by Button and Select.
func InputDefaults() Options {
	return MergeOptions(TextDefaults(), Options{
		OptFill:        "#f0f0f0",
		OptHoverFill:   "#dcdcdc",
		OptStroke:      "#444444",
		OptStrokeWidth: 1.0,
		OptCursor:      string(CursorPointer),
		OptTextColor:   "#000000",
		OptFocusStroke: "#3b82f6",
		OptPadding:     8.0,
		OptAlign:       string(AlignCenter),
	})
}

// hoveredBy reports whether any pointer currently hovers c.
func (c *Component) hoveredBy() bool {
	s := c.Scene()
	if s == nil {
		return false
	}
	for id := range s.pointers {
		if s.pointers[id].hover == c {
			return true
		}
	}
	return false
}

// inputStyle adjusts style for the hover and focus state of c.
func (c *Component) inputStyle(style PaintStyle, focused bool) PaintStyle {
	if c.hoveredBy() {
		style.Fill = c.options.Color(OptHoverFill).WithAlpha(style.Opacity)
	}
	if focused {
		style.Stroke = c.options.Color(OptFocusStroke).WithAlpha(style.Opacity)
	}
	return style
}

// isActivationKey reports whether key presses a focused button.
func isActivationKey(key string) bool {
	return key == "Enter" || key == " " || key == "Space"
}

// Button is a clickable label in a padded box. When focused, Enter or
// Space fire EventClick as a pointer click would.
type Button struct {
	*Component

	label   string
	focused bool
}

// NewButton creates a button at pos.
func NewButton(pos Position, label string, opts ...Options) *Button {
	b := &Button{label: label}
	b.Component = mustComponent(b, pos, InputDefaults(), MergeOptions(opts...))
	b.listen()
	return b
}

func (b *Button) listen() {
	b.On(EventKeyDown, func(ev *Event) {
		if ev.Target == b.Component && isActivationKey(ev.Key.Key) {
			b.Fire(&Event{Kind: EventClick, Modifiers: ev.Modifiers})
		}
	})
}

// Type returns "Button".
func (b *Button) Type() string { return "Button" }

// Label returns the caption.
func (b *Button) Label() string { return b.label }

// SetLabel replaces the caption and resizes the button.
func (b *Button) SetLabel(label string) {
	b.label = label
	b.MarkDirty()
}

// IsFocused reports whether the button holds keyboard focus.
func (b *Button) IsFocused() bool { return b.focused }

// FocusChanged tracks keyboard focus for the focus outline.
func (b *Button) FocusChanged(focused bool) { b.focused = focused }

// Size returns the measured label plus padding on every side.
func (b *Button) Size() (float64, float64) {
	pad := max(b.options.Float(OptPadding), 0)
	sz := b.measurer().Measure(b.label, b.textStyle())
	return sz.Width + 2*pad, sz.Height + 2*pad
}

// Trace adds the button box.
func (b *Button) Trace(p *gg.Path) {
	w, h := b.Size()
	p.Rectangle(0, 0, w, h)
}

// PaintContent draws the box, highlighted while hovered, then the label.
func (b *Button) PaintContent(s Surface, path *gg.Path, style PaintStyle) {
	paintPath(s, path, b.inputStyle(style, b.focused))
	w, h := b.Size()
	pad := max(b.options.Float(OptPadding), 0)
	off := b.OriginOffset()
	box := Rect{X: off.X + pad, Y: off.Y + pad, Width: w - 2*pad, Height: h - 2*pad}
	drawLines(s, b.measurer(), b.label, box, b.textStyle(), b.options.Color(OptTextColor).WithAlpha(style.Opacity))
}

// MarshalFields records the caption.
func (b *Button) MarshalFields() Options {
	return Options{"label": b.label}
}

func buttonFromDefinition(def Definition) (Shape, error) {
	b := &Button{label: fieldString(def.Fields, "label", "")}
	base, err := newComponent(b, def.Position, InputDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	b.Component = base
	b.listen()
	return b, nil
}
