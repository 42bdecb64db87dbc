package pencil

import (
	"image"
	"testing"
)

const hashSheet = `{
	"frames": {
		"walk_02": {"frame": {"x": 16, "y": 0, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}},
		"walk_01": {"frame": {"x": 0, "y": 0, "w": 16, "h": 16}, "sourceSize": {"w": 16, "h": 16}},
		"idle": {"frame": {"x": 32, "y": 0, "w": 12, "h": 10}, "rotated": true,
			"spriteSourceSize": {"x": 2, "y": 3, "w": 12, "h": 10}, "sourceSize": {"w": 16, "h": 16}}
	},
	"meta": {"image": "hero.png"}
}`

const listSheet = `{
	"frames": [
		{"filename": "b", "frame": {"x": 8, "y": 0, "w": 8, "h": 8}},
		{"filename": "a", "frame": {"x": 0, "y": 0, "w": 8, "h": 8}}
	],
	"meta": {"image": "list.png"}
}`

const pagedSheet = `{
	"textures": [
		{"image": "page0.png", "frames": {"x": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}}},
		{"image": "page1.png", "frames": {"y": {"frame": {"x": 0, "y": 0, "w": 4, "h": 4}}}}
	]
}`

func TestParseSpritesheetHash(t *testing.T) {
	sheet, err := ParseSpritesheet([]byte(hashSheet))
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(sheet.Frames))
	for i, f := range sheet.Frames {
		names[i] = f.Name
	}
	if want := []string{"idle", "walk_01", "walk_02"}; len(names) != 3 || names[0] != want[0] || names[2] != want[2] {
		t.Errorf("names = %v, want sorted %v", names, want)
	}

	idle := sheet.Frames[0]
	if idle.Region != image.Rect(32, 0, 44, 10) {
		t.Errorf("region = %v", idle.Region)
	}
	if idle.Source != (Size{16, 16}) || idle.Offset != Pos(2, 3) || !idle.Rotated {
		t.Errorf("idle = %+v", idle)
	}
	if got := sheet.ImageURL("assets/hero.json"); got != "assets/hero.png" {
		t.Errorf("ImageURL = %q", got)
	}
}

func TestParseSpritesheetList(t *testing.T) {
	sheet, err := ParseSpritesheet([]byte(listSheet))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Frames) != 2 || sheet.Frames[0].Name != "a" {
		t.Fatalf("frames = %+v", sheet.Frames)
	}
	// Without sourceSize the frame size is used.
	if sheet.Frames[1].Source != (Size{8, 8}) {
		t.Errorf("source = %v", sheet.Frames[1].Source)
	}
}

func TestParseSpritesheetPages(t *testing.T) {
	sheet, err := ParseSpritesheet([]byte(pagedSheet))
	if err != nil {
		t.Fatal(err)
	}
	if len(sheet.Frames) != 1 || sheet.Frames[0].Name != "x" {
		t.Errorf("only the first page should be read: %+v", sheet.Frames)
	}
	if got := sheet.ImageURL("sheet.json"); got != "page0.png" {
		t.Errorf("ImageURL = %q", got)
	}
}

func TestParseSpritesheetErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not json":  `{`,
		"no frames": `{"meta": {"image": "x.png"}}`,
		"empty":     `{"frames": {}}`,
		"bad list":  `{"frames": 3}`,
	} {
		if _, err := ParseSpritesheet([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestSpritesheetSelect(t *testing.T) {
	sheet, err := ParseSpritesheet([]byte(hashSheet))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		pattern string
		want    int
	}{
		{"", 3},
		{"*", 3},
		{"walk_*", 2},
		{"walk_0?", 2},
		{"idle", 1},
		{"run_*", 0},
		{"[", 0},
	}
	for _, tt := range tests {
		if got := len(sheet.Select(tt.pattern)); got != tt.want {
			t.Errorf("Select(%q) = %d frames, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestResolveRef(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"sheet.json", "img.png", "img.png"},
		{"assets/sheet.json", "img.png", "assets/img.png"},
		{"assets/sheet.json", "../img.png", "img.png"},
		{"file:///data/sheet.json", "img.png", "/data/img.png"},
		{"https://cdn.test/a/sheet.json", "img.png", "https://cdn.test/a/img.png"},
		{"https://cdn.test/a/sheet.json", "https://other.test/x.png", "https://other.test/x.png"},
		{"assets/sheet.json", "/abs/img.png", "/abs/img.png"},
		{"assets/sheet.json", "", ""},
	}
	for _, tt := range tests {
		if got := resolveRef(tt.base, tt.ref); got != tt.want {
			t.Errorf("resolveRef(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}
