package pencil

import (
	"errors"
	"math"
	"testing"
)

func TestMergeOptions(t *testing.T) {
	base := Options{
		"fill":  "#ff0000",
		"font":  Options{"family": "Go", "size": 12.0},
		"dash":  []any{1.0, 2.0},
		"shown": true,
	}
	over := Options{
		"fill":  "#00ff00",
		"font":  map[string]any{"size": 14.0},
		"dash":  []any{4.0},
		"shown": nil,
	}
	got := MergeOptions(base, over)

	if got.String("fill") != "#00ff00" {
		t.Errorf("later layers should win: %v", got["fill"])
	}
	font, _ := asMap(got["font"])
	if font["family"] != "Go" || font["size"] != 14.0 {
		t.Errorf("nested maps should merge key by key: %v", font)
	}
	if dash := got["dash"].([]any); len(dash) != 1 {
		t.Errorf("slices should be replaced: %v", dash)
	}
	if !got.Bool("shown") {
		t.Error("nil must not override")
	}
}

func TestMergeOptionsIndependence(t *testing.T) {
	inner := Options{"a": 1.0}
	list := []any{1.0}
	base := Options{"inner": inner, "list": list}
	merged := MergeOptions(base)

	inner["a"] = 2.0
	list[0] = 9.0
	m, _ := asMap(merged["inner"])
	if m["a"] != 1.0 || merged["list"].([]any)[0] != 1.0 {
		t.Error("merge result shares state with its input")
	}
	if MergeOptions() == nil || len(MergeOptions(nil, nil)) != 0 {
		t.Error("merging nothing should give an empty map")
	}
}

func TestOptionsGetters(t *testing.T) {
	o := Options{
		"s":   "text",
		"c":   CursorPointer,
		"f":   3,
		"b":   true,
		"col": "#ff0000",
		"bad": "nope",
		"p":   []any{1.0, 2.0},
		"l":   []any{"a", 1.0, "b"},
	}
	if o.String("s") != "text" || o.String("c") != "pointer" || o.String("missing") != "" {
		t.Error("String")
	}
	if o.Float("f") != 3 || o.Float("s") != 0 {
		t.Error("Float")
	}
	if !o.Bool("b") || o.Bool("s") {
		t.Error("Bool")
	}
	assertColor(t, o.Color("col"), Color{1, 0, 0, 1})
	assertColor(t, o.Color("bad"), ColorTransparent)
	assertPos(t, "Position", o.Position("p"), Pos(1, 2))
	if got := o.Strings("l"); len(got) != 2 || got[1] != "b" {
		t.Errorf("Strings = %v", got)
	}
	if keys := o.Keys(); keys[0] != "b" || len(keys) != len(o) {
		t.Errorf("Keys = %v", keys)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		o    Options
		ok   bool
	}{
		{"defaults", ComponentDefaults(), true},
		{"input defaults", InputDefaults(), true},
		{"empty", Options{}, true},
		{"nil", nil, true},
		{"color value", Options{OptFill: ColorWhite}, true},
		{"bad color", Options{OptStroke: "#xyz"}, false},
		{"color type", Options{OptFill: 3}, false},
		{"negative width", Options{OptStrokeWidth: -1.0}, false},
		{"nan opacity", Options{OptOpacity: math.NaN()}, false},
		{"string width", Options{OptStrokeWidth: "2"}, false},
		{"unknown cursor", Options{OptCursor: "hand"}, false},
		{"cursor", Options{OptCursor: "grab"}, true},
		{"bad join", Options{OptJoin: "soft"}, false},
		{"bad cap", Options{OptCap: "flat"}, false},
		{"bad align", Options{OptAlign: "justify"}, false},
		{"named origin", Options{OptOrigin: "bottomRight"}, true},
		{"explicit origin", Options{OptOrigin: []any{-5.0, 2.0}}, true},
		{"bad origin", Options{OptOrigin: "middle"}, false},
		{"bad rotation center", Options{OptRotationCenter: "c"}, false},
		{"shown string", Options{OptShown: "yes"}, false},
		{"negative padding", Options{OptPadding: -2.0}, false},
		{"unknown keys pass", Options{"custom": struct{}{}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				var ioe *InvalidOptionError
				if !errors.As(err, &ioe) || !errors.Is(err, ErrInvalidOption) {
					t.Errorf("err = %v, want *InvalidOptionError", err)
				}
			}
		})
	}
}

func TestOptionsDiff(t *testing.T) {
	defaults := Options{"fill": "#000000", "width": 2.0, "origin": Position{}}
	o := Options{"fill": "#000000", "width": 2, "origin": []any{0.0, 0.0}, "extra": true}
	got := o.Diff(defaults)
	if len(got) != 1 || got["extra"] != true {
		t.Errorf("Diff = %v, want only extra", got)
	}
	o["fill"] = "#ffffff"
	if got := o.Diff(defaults); got["fill"] != "#ffffff" {
		t.Errorf("changed value missing: %v", got)
	}
}

func TestOptionsClone(t *testing.T) {
	var nilOpts Options
	if nilOpts.Clone() != nil {
		t.Error("nil clone should stay nil")
	}
	o := Options{"p": []Position{{1, 1}}}
	c := o.Clone()
	c["p"].([]Position)[0] = Pos(9, 9)
	if o["p"].([]Position)[0] != Pos(1, 1) {
		t.Error("Clone shares slices")
	}
}
