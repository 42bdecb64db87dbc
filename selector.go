package pencil

import (
	"slices"

	"github.com/gogpu/gg"
)

// Select shows one of a list of items. Taking focus expands the list
// below the box; clicking a row picks it, fires EventChange and gives up
// focus. While focused, ArrowUp and ArrowDown change the value and Enter
// or Escape collapse the list.
type Select struct {
	*Component

	items    []string
	value    int
	expanded bool
}

// SelectDefaults returns the options a Select starts from.
func SelectDefaults() Options {
	return MergeOptions(InputDefaults(), Options{OptAlign: string(AlignLeft)})
}

// NewSelect creates a select at pos showing items[value].
func NewSelect(pos Position, items []string, value int, opts ...Options) *Select {
	sel := &Select{items: slices.Clone(items), value: value}
	sel.Component = mustComponent(sel, pos, SelectDefaults(), MergeOptions(opts...))
	sel.clampValue()
	sel.listen()
	return sel
}

func (sel *Select) listen() {
	sel.On(EventClick, func(ev *Event) {
		if ev.Target != sel.Component || !sel.expanded {
			return
		}
		if row, ok := sel.rowAt(ev.Local); ok {
			sel.SetValue(row)
			if s := sel.Scene(); s != nil {
				s.Blur()
			}
		}
	})
	sel.On(EventKeyDown, func(ev *Event) {
		if ev.Target != sel.Component {
			return
		}
		switch ev.Key.Key {
		case "ArrowDown":
			sel.SetValue(sel.value + 1)
		case "ArrowUp":
			sel.SetValue(sel.value - 1)
		case "Enter", "Escape":
			if s := sel.Scene(); s != nil {
				s.Blur()
			}
		}
	})
}

// Type returns "Select".
func (sel *Select) Type() string { return "Select" }

// Items returns a copy of the choices.
func (sel *Select) Items() []string { return slices.Clone(sel.items) }

// Value returns the index of the selected item, or -1 without items.
func (sel *Select) Value() int { return sel.value }

// Selected returns the selected item, or "" without items.
func (sel *Select) Selected() string {
	if sel.value < 0 || sel.value >= len(sel.items) {
		return ""
	}
	return sel.items[sel.value]
}

// SetValue selects item i, clamped to the list, and fires EventChange when
// the selection moved.
func (sel *Select) SetValue(i int) {
	prev := sel.value
	sel.value = i
	sel.clampValue()
	if sel.value != prev {
		sel.MarkDirty()
		sel.Fire(&Event{Kind: EventChange})
	}
}

func (sel *Select) clampValue() {
	if len(sel.items) == 0 {
		sel.value = -1
		return
	}
	sel.value = max(0, min(sel.value, len(sel.items)-1))
}

// Expanded reports whether the list is open.
func (sel *Select) Expanded() bool { return sel.expanded }

// FocusChanged opens the list on focus and closes it on blur.
func (sel *Select) FocusChanged(focused bool) {
	sel.expanded = focused
	sel.MarkDirty()
}

// arrowWidth is the room kept at the right of the box for the indicator.
func (sel *Select) arrowWidth() float64 {
	return sel.textStyle().Size
}

// rowHeight is the height of the box and of each list row.
func (sel *Select) rowHeight() float64 {
	pad := max(sel.options.Float(OptPadding), 0)
	return sel.measurer().Measure("", sel.textStyle()).Height + 2*pad
}

// Size returns the collapsed box: the widest item plus padding and the
// indicator.
func (sel *Select) Size() (float64, float64) {
	pad := max(sel.options.Float(OptPadding), 0)
	m, style := sel.measurer(), sel.textStyle()
	var w float64
	for _, item := range sel.items {
		w = max(w, m.Measure(item, style).Width)
	}
	return w + 2*pad + sel.arrowWidth(), sel.rowHeight()
}

// rowAt returns the list row under local, which includes the origin
// offset.
func (sel *Select) rowAt(local Position) (int, bool) {
	w, h := sel.Size()
	off := sel.OriginOffset()
	x, y := local.X-off.X, local.Y-off.Y-h
	if x < 0 || x > w || y < 0 {
		return 0, false
	}
	row := int(y / sel.rowHeight())
	return row, row < len(sel.items)
}

// Trace adds the box and, while expanded, the list below it.
func (sel *Select) Trace(p *gg.Path) {
	w, h := sel.Size()
	if sel.expanded && len(sel.items) > 0 {
		h += float64(len(sel.items)) * sel.rowHeight()
	}
	p.Rectangle(0, 0, w, h)
}

// PaintContent draws the box with the selected item and the indicator,
// then the open list.
func (sel *Select) PaintContent(s Surface, _ *gg.Path, style PaintStyle) {
	w, h := sel.Size()
	pad := max(sel.options.Float(OptPadding), 0)
	off := sel.OriginOffset()
	m, ts := sel.measurer(), sel.textStyle()
	ink := sel.options.Color(OptTextColor).WithAlpha(style.Opacity)

	box := gg.NewPath()
	box.Rectangle(off.X, off.Y, w, h)
	paintPath(s, box, sel.inputStyle(style, sel.expanded))
	drawLines(s, m, sel.Selected(), Rect{X: off.X + pad, Y: off.Y + pad, Width: w - 2*pad - sel.arrowWidth(), Height: h - 2*pad}, ts, ink)

	aw := sel.arrowWidth() / 2
	ax, ay := off.X+w-pad-aw*1.5, off.Y+h/2
	arrow := gg.NewPath()
	if sel.expanded {
		tracePolygon(arrow, []Position{{ax, ay + aw/4}, {ax + aw, ay + aw/4}, {ax + aw/2, ay - aw/4}})
	} else {
		tracePolygon(arrow, []Position{{ax, ay - aw/4}, {ax + aw, ay - aw/4}, {ax + aw/2, ay + aw/4}})
	}
	s.FillPath(arrow, ink)

	if !sel.expanded {
		return
	}
	rh := sel.rowHeight()
	for i, item := range sel.items {
		y := off.Y + h + float64(i)*rh
		row := gg.NewPath()
		row.Rectangle(off.X, y, w, rh)
		rowStyle := style
		if i == sel.value {
			rowStyle.Fill = sel.options.Color(OptHoverFill).WithAlpha(style.Opacity)
		}
		paintPath(s, row, rowStyle)
		drawLines(s, m, item, Rect{X: off.X + pad, Y: y + pad, Width: w - 2*pad, Height: rh - 2*pad}, ts, ink)
	}
}

// MarshalFields records the items and the selected index.
func (sel *Select) MarshalFields() Options {
	items := make([]any, len(sel.items))
	for i, item := range sel.items {
		items[i] = item
	}
	return Options{"items": items, "value": sel.value}
}

func selectFromDefinition(def Definition) (Shape, error) {
	sel := &Select{
		items: def.Fields.Strings("items"),
		value: int(fieldFloat(def.Fields, "value", 0)),
	}
	base, err := newComponent(sel, def.Position, SelectDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	sel.Component = base
	sel.clampValue()
	sel.listen()
	return sel, nil
}
