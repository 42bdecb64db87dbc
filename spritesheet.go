package pencil

import (
	"encoding/json"
	"fmt"
	"image"
	"net/url"
	"path"
	"slices"
	"strings"
)

// SpriteFrame is one named cell of a sprite sheet.
type SpriteFrame struct {
	Name string
	// Region is the cell within the sheet image.
	Region image.Rectangle
	// Source is the untrimmed size the frame was authored at.
	Source Size
	// Offset places a trimmed Region inside the Source box.
	Offset Position
	// Rotated cells are stored 90 degrees clockwise. They are drawn as
	// stored.
	Rotated bool
}

// Spritesheet holds a sheet image and its frames sorted by name.
type Spritesheet struct {
	Image  image.Image
	Frames []SpriteFrame

	imageRef string
}

// ParseSpritesheet reads a TexturePacker JSON description. Both the hash
// format (a "frames" object) and the array format (a "textures" list, of
// which only the first page is used) are accepted.
func ParseSpritesheet(data []byte) (*Spritesheet, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures []sheetPage     `json:"textures"`
		Meta     struct {
			Image string `json:"image"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("pencil: parse sprite sheet: %w", err)
	}

	sheet := &Spritesheet{imageRef: probe.Meta.Image}
	switch {
	case len(probe.Textures) > 0:
		page := probe.Textures[0]
		sheet.imageRef = page.Image
		sheet.Frames = framesFromMap(page.Frames)
	case probe.Frames != nil:
		frames, err := parseSheetFrames(probe.Frames)
		if err != nil {
			return nil, err
		}
		sheet.Frames = frames
	default:
		return nil, fmt.Errorf("pencil: sprite sheet has neither \"frames\" nor \"textures\"")
	}
	if len(sheet.Frames) == 0 {
		return nil, fmt.Errorf("pencil: sprite sheet has no frames")
	}
	return sheet, nil
}

type sheetRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type sheetFrame struct {
	Filename         string    `json:"filename"`
	Frame            sheetRect `json:"frame"`
	Rotated          bool      `json:"rotated"`
	SpriteSourceSize sheetRect `json:"spriteSourceSize"`
	SourceSize       struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceSize"`
}

type sheetPage struct {
	Image  string                `json:"image"`
	Frames map[string]sheetFrame `json:"frames"`
}

// parseSheetFrames accepts "frames" as a name-keyed object or as a list
// of entries carrying a filename.
func parseSheetFrames(raw json.RawMessage) ([]SpriteFrame, error) {
	var byName map[string]sheetFrame
	if err := json.Unmarshal(raw, &byName); err == nil {
		return framesFromMap(byName), nil
	}
	var list []sheetFrame
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("pencil: parse sprite frames: %w", err)
	}
	frames := make([]SpriteFrame, 0, len(list))
	for _, f := range list {
		frames = append(frames, f.toFrame(f.Filename))
	}
	slices.SortFunc(frames, func(a, b SpriteFrame) int { return strings.Compare(a.Name, b.Name) })
	return frames, nil
}

func framesFromMap(m map[string]sheetFrame) []SpriteFrame {
	frames := make([]SpriteFrame, 0, len(m))
	for name, f := range m {
		frames = append(frames, f.toFrame(name))
	}
	slices.SortFunc(frames, func(a, b SpriteFrame) int { return strings.Compare(a.Name, b.Name) })
	return frames
}

func (f sheetFrame) toFrame(name string) SpriteFrame {
	src := Size{Width: float64(f.SourceSize.W), Height: float64(f.SourceSize.H)}
	if src.Width == 0 || src.Height == 0 {
		src = Size{Width: float64(f.Frame.W), Height: float64(f.Frame.H)}
	}
	return SpriteFrame{
		Name:    name,
		Region:  image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H),
		Source:  src,
		Offset:  Position{float64(f.SpriteSourceSize.X), float64(f.SpriteSourceSize.Y)},
		Rotated: f.Rotated,
	}
}

// Select returns the frames whose name matches pattern, using path.Match
// syntax. An empty pattern selects every frame.
func (s *Spritesheet) Select(pattern string) []SpriteFrame {
	if pattern == "" || pattern == "*" {
		return slices.Clone(s.Frames)
	}
	var out []SpriteFrame
	for _, f := range s.Frames {
		if ok, _ := path.Match(pattern, f.Name); ok {
			out = append(out, f)
		}
	}
	return out
}

// ImageURL resolves the sheet image reference against the location the
// description was loaded from.
func (s *Spritesheet) ImageURL(sheetURL string) string {
	return resolveRef(sheetURL, s.imageRef)
}

// resolveRef resolves ref relative to base, for URLs and file paths alike.
func resolveRef(base, ref string) string {
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	if b, err := url.Parse(base); err == nil && b.IsAbs() && b.Scheme != "file" {
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	if path.IsAbs(ref) {
		return ref
	}
	return path.Join(path.Dir(strings.TrimPrefix(base, "file://")), ref)
}
