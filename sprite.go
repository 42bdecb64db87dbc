package pencil

import (
	"context"
	"fmt"
	"math"

	"github.com/gogpu/gg"
)

// Sprite plays the frames of a sprite sheet, advancing speed frames per
// scene frame. A looping sprite fires EventLoop each time it wraps; a
// non-looping one stops on its last frame and fires EventEnd.
type Sprite struct {
	*Component

	sheetURL string
	selector string
	speed    float64
	loop     bool

	sheet     *Spritesheet
	frames    []SpriteFrame
	cursor    float64
	playing   bool
	requested string
}

// NewSprite creates a sprite at pos from the TexturePacker description at
// sheetURL. selector filters frame names (path.Match syntax, "" for all).
func NewSprite(pos Position, sheetURL, selector string, speed float64, loop bool, opts ...Options) *Sprite {
	sp := &Sprite{sheetURL: sheetURL, selector: selector, speed: speed, loop: loop, playing: true}
	sp.Component = mustComponent(sp, pos, ImageDefaults(), MergeOptions(opts...))
	return sp
}

// Type returns "Sprite".
func (sp *Sprite) Type() string { return "Sprite" }

// Loaded reports whether the sheet is ready.
func (sp *Sprite) Loaded() bool { return sp.sheet != nil }

// FrameCount returns the number of selected frames.
func (sp *Sprite) FrameCount() int { return len(sp.frames) }

// FrameIndex returns the frame currently shown.
func (sp *Sprite) FrameIndex() int {
	if len(sp.frames) == 0 {
		return 0
	}
	return min(int(sp.cursor), len(sp.frames)-1)
}

// SetFrameIndex jumps to frame i, clamped to the selected frames.
func (sp *Sprite) SetFrameIndex(i int) {
	if len(sp.frames) == 0 {
		return
	}
	sp.cursor = float64(max(0, min(i, len(sp.frames)-1)))
	sp.MarkDirty()
}

// Play resumes the animation, rewinding when a non-looping sprite has
// ended.
func (sp *Sprite) Play() {
	if !sp.loop && len(sp.frames) > 0 && sp.FrameIndex() == len(sp.frames)-1 {
		sp.cursor = 0
		sp.MarkDirty()
	}
	sp.playing = true
}

// Pause stops the animation on the current frame.
func (sp *Sprite) Pause() { sp.playing = false }

// Playing reports whether Step advances frames.
func (sp *Sprite) Playing() bool { return sp.playing }

// SetSpeed changes the number of sheet frames advanced per scene frame.
func (sp *Sprite) SetSpeed(speed float64) { sp.speed = speed }

func (sp *Sprite) current() (SpriteFrame, bool) {
	if len(sp.frames) == 0 {
		return SpriteFrame{}, false
	}
	return sp.frames[sp.FrameIndex()], true
}

// Size returns the authored size of the current frame.
func (sp *Sprite) Size() (float64, float64) {
	f, ok := sp.current()
	if !ok {
		return 0, 0
	}
	return f.Source.Width, f.Source.Height
}

// Trace adds the frame box.
func (sp *Sprite) Trace(p *gg.Path) {
	w, h := sp.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.Rectangle(0, 0, w, h)
}

// PaintContent draws the current frame, then the fill and outline.
func (sp *Sprite) PaintContent(s Surface, path *gg.Path, style PaintStyle) {
	if f, ok := sp.current(); ok && sp.sheet.Image != nil {
		off := sp.OriginOffset().Add(f.Offset)
		dst := Rect{X: off.X, Y: off.Y, Width: float64(f.Region.Dx()), Height: float64(f.Region.Dy())}
		s.DrawImage(sp.sheet.Image, f.Region, dst, style.Opacity)
	}
	paintPath(s, path, style)
}

// ContainsPoint reports whether local lies on the current frame box.
func (sp *Sprite) ContainsPoint(local Position) bool {
	w, h := sp.Size()
	if w <= 0 || h <= 0 {
		return false
	}
	off := sp.OriginOffset()
	return Rect{X: off.X, Y: off.Y, Width: w, Height: h}.Contains(local)
}

// Step advances the animation by speed frames.
func (sp *Sprite) Step(uint64) {
	n := float64(len(sp.frames))
	if !sp.playing || n == 0 || sp.speed == 0 {
		return
	}
	before := sp.FrameIndex()
	sp.cursor += sp.speed
	if sp.cursor >= n || sp.cursor < 0 {
		if sp.loop {
			sp.cursor = Modulo(sp.cursor, n)
			sp.Fire(&Event{Kind: EventLoop})
		} else {
			sp.cursor = math.Max(0, math.Min(sp.cursor, n-1))
			sp.playing = false
			sp.Fire(&Event{Kind: EventEnd})
		}
	}
	if sp.FrameIndex() != before {
		sp.MarkDirty()
	}
}

func (sp *Sprite) pollResources(s *Scene) {
	if sp.sheetURL == "" || sp.sheetURL == sp.requested {
		return
	}
	sheetURL := sp.sheetURL
	sp.requested = sheetURL
	loadAsync(sp.Component, s, sheetURL,
		func(ctx context.Context) (*Spritesheet, error) {
			data, err := s.loader.LoadData(ctx, sheetURL)
			if err != nil {
				return nil, err
			}
			sheet, err := ParseSpritesheet(data)
			if err != nil {
				return nil, err
			}
			imgURL := sheet.ImageURL(sheetURL)
			if imgURL == "" {
				return nil, fmt.Errorf("pencil: sprite sheet names no image")
			}
			if sheet.Image, err = s.loader.LoadImage(ctx, imgURL); err != nil {
				return nil, err
			}
			return sheet, nil
		},
		func(sheet *Spritesheet) { sp.setSheet(sheet) })
}

// SetSheet uses an already loaded sheet instead of fetching one.
func (sp *Sprite) SetSheet(sheet *Spritesheet) {
	sp.requested = sp.sheetURL
	sp.setSheet(sheet)
	sp.MarkDirty()
}

func (sp *Sprite) setSheet(sheet *Spritesheet) {
	sp.sheet = sheet
	sp.frames = sheet.Select(sp.selector)
	sp.cursor = 0
	if len(sp.frames) == 0 {
		Logger().Warn("pencil: sprite selector matches no frame", "sheet", sp.sheetURL, "selector", sp.selector)
	}
}

// MarshalFields records the sheet, selector and playback settings.
func (sp *Sprite) MarshalFields() Options {
	return Options{
		"sheet":    sp.sheetURL,
		"selector": sp.selector,
		"speed":    sp.speed,
		"loop":     sp.loop,
	}
}

func spriteFromDefinition(def Definition) (Shape, error) {
	sp := &Sprite{
		sheetURL: fieldString(def.Fields, "sheet", ""),
		selector: fieldString(def.Fields, "selector", ""),
		speed:    fieldFloat(def.Fields, "speed", 1),
		loop:     fieldBool(def.Fields, "loop", true),
		playing:  true,
	}
	base, err := newComponent(sp, def.Position, ImageDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	sp.Component = base
	return sp, nil
}
