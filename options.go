package pencil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Option keys shared by every component.
const (
	OptFill           = "fill"
	OptStroke         = "stroke"
	OptStrokeWidth    = "strokeWidth"
	OptJoin           = "join"
	OptCap            = "cap"
	OptCursor         = "cursor"
	OptOpacity        = "opacity"
	OptOrigin         = "origin"
	OptRotationCenter = "rotationCenter"
	OptShown          = "shown"
	OptDraggable      = "draggable"
)

// Options is an open map of drawing and behavior attributes. Values keep
// whatever type they were given (or decoded as); the typed getters coerce.
type Options map[string]any

// ComponentDefaults returns the options every component starts from.
func ComponentDefaults() Options {
	return Options{
		OptFill:           "#000000",
		OptStroke:         "",
		OptStrokeWidth:    2.0,
		OptJoin:           "miter",
		OptCap:            "butt",
		OptCursor:         string(CursorDefault),
		OptOpacity:        1.0,
		OptOrigin:         "topLeft",
		OptRotationCenter: Position{},
		OptShown:          true,
		OptDraggable:      false,
	}
}

// MergeOptions deep merges layers from left to right into a new map.
// Later layers win. Nested maps merge key by key, slices are replaced
// wholesale and nil values never override an existing key. The result
// shares no mutable state with any layer.
func MergeOptions(layers ...Options) Options {
	out := Options{}
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		if v == nil {
			continue
		}
		if sm, ok := asMap(v); ok {
			if dm, ok := asMap(dst[k]); ok {
				merged := cloneMap(dm)
				mergeInto(merged, sm)
				dst[k] = merged
				continue
			}
			dst[k] = cloneMap(sm)
			continue
		}
		dst[k] = cloneValue(v)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Options:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Options:
		return Options(cloneMap(t))
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []float64:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	case []Position:
		return slices.Clone(t)
	}
	return v
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return Options(cloneMap(o))
}

// Keys returns the option keys in sorted order.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// String returns the option as a string, or "" when absent or not a string.
func (o Options) String(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case Cursor:
		return string(v)
	case TextAlign:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

// Float returns the option as a float64, or 0 when absent or not numeric.
func (o Options) Float(key string) float64 {
	f, _ := toFloat(o[key])
	return f
}

// Bool returns the option as a bool, or false when absent.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// Color returns the option parsed as a color. Missing or unparsable values
// resolve to transparent.
func (o Options) Color(key string) Color {
	switch v := o[key].(type) {
	case Color:
		return v
	case string:
		c, err := ParseColor(v)
		if err != nil {
			return ColorTransparent
		}
		return c
	}
	return ColorTransparent
}

// Position returns the option decoded as a Position.
func (o Options) Position(key string) Position {
	p, _ := toPosition(o[key])
	return p
}

// Strings returns the option as a string slice.
func (o Options) Strings(key string) []string {
	switch v := o[key].(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Validate checks the values of the shared option keys against their
// domains. Numbers must be finite, strokeWidth and opacity non-negative,
// colors parsable and the cursor a known name.
func (o Options) Validate() error {
	for _, key := range []string{OptFill, OptStroke, OptHoverFill, OptTextColor, OptFocusStroke} {
		v, ok := o[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case Color:
		case string:
			if _, err := ParseColor(t); err != nil {
				return &InvalidOptionError{Key: key, Value: v, Reason: err.Error()}
			}
		default:
			return &InvalidOptionError{Key: key, Value: v, Reason: "expected a color string"}
		}
	}
	for _, key := range []string{OptStrokeWidth, OptOpacity, OptFontSize, OptLineHeight, OptPadding} {
		v, ok := o[key]
		if !ok {
			continue
		}
		f, isNum := toFloat(v)
		switch {
		case !isNum:
			return &InvalidOptionError{Key: key, Value: v, Reason: "expected a number"}
		case !isFinite(f):
			return &InvalidOptionError{Key: key, Value: v, Reason: "not finite"}
		case f < 0:
			return &InvalidOptionError{Key: key, Value: v, Reason: "negative"}
		}
	}
	if v, ok := o[OptCursor]; ok {
		if !knownCursors[Cursor(o.String(OptCursor))] {
			return &InvalidOptionError{Key: OptCursor, Value: v, Reason: "unknown cursor"}
		}
	}
	if v, ok := o[OptJoin]; ok {
		if _, known := lineJoins[o.String(OptJoin)]; !known {
			return &InvalidOptionError{Key: OptJoin, Value: v, Reason: "unknown line join"}
		}
	}
	if v, ok := o[OptCap]; ok {
		if _, known := lineCaps[o.String(OptCap)]; !known {
			return &InvalidOptionError{Key: OptCap, Value: v, Reason: "unknown line cap"}
		}
	}
	if v, ok := o[OptAlign]; ok {
		switch TextAlign(o.String(OptAlign)) {
		case AlignLeft, AlignCenter, AlignRight:
		default:
			return &InvalidOptionError{Key: OptAlign, Value: v, Reason: "expected left, center or right"}
		}
	}
	if v, ok := o[OptOrigin]; ok {
		if _, err := parseOrigin(v); err != nil {
			return &InvalidOptionError{Key: OptOrigin, Value: v, Reason: err.Error()}
		}
	}
	if v, ok := o[OptRotationCenter]; ok {
		p, isPos := toPosition(v)
		if !isPos || !p.IsFinite() {
			return &InvalidOptionError{Key: OptRotationCenter, Value: v, Reason: "expected a finite [x, y] pair"}
		}
	}
	for _, key := range []string{OptShown, OptDraggable} {
		if v, ok := o[key]; ok {
			if _, isBool := v.(bool); !isBool {
				return &InvalidOptionError{Key: key, Value: v, Reason: "expected a boolean"}
			}
		}
	}
	return nil
}

// valid returns the entries of o that pass Validate on their own, along
// with the first failure in key order.
func (o Options) valid() (Options, error) {
	out := Options{}
	var first error
	for _, key := range o.Keys() {
		if err := (Options{key: o[key]}).Validate(); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		out[key] = o[key]
	}
	return out, first
}

// Diff returns the entries of o whose value differs from defaults.
// Values are compared by their JSON encoding so that decoded documents
// ([]any, float64) compare equal to their typed counterparts.
func (o Options) Diff(defaults Options) Options {
	out := Options{}
	for k, v := range o {
		d, ok := defaults[k]
		if ok && sameJSON(v, d) {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func sameJSON(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// toFloat converts any numeric value, including decoded JSON numbers, to
// float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
