package pencil

import (
	"context"
	"image"

	"github.com/gogpu/gg"
)

// Image draws a picture loaded from a file or URL. Until the picture is
// ready the component has its declared size, or no size at all, and is
// not hit.
type Image struct {
	*Component

	url           string
	width, height float64 // 0 means the natural size

	img       image.Image
	requested string
}

// ImageDefaults returns the options an Image starts from: no fill and no
// outline.
func ImageDefaults() Options {
	return MergeOptions(ComponentDefaults(), Options{OptFill: ""})
}

// NewImage creates an image at pos. width and height may be 0 to use the
// picture's natural size; when only one is set the other keeps the aspect
// ratio. Loading starts once the image is attached to a scene.
func NewImage(pos Position, url string, width, height float64, opts ...Options) *Image {
	i := &Image{url: url, width: width, height: height}
	i.Component = mustComponent(i, pos, ImageDefaults(), MergeOptions(opts...))
	return i
}

// Type returns "Image".
func (i *Image) Type() string { return "Image" }

// URL returns the source location.
func (i *Image) URL() string { return i.url }

// SetURL switches to another picture. The current one is dropped and the
// new one loads on a later frame.
func (i *Image) SetURL(url string) {
	if url == i.url {
		return
	}
	i.url = url
	i.img = nil
	i.requested = ""
	i.MarkDirty()
}

// Loaded reports whether the picture is ready.
func (i *Image) Loaded() bool { return i.img != nil }

// Picture returns the decoded picture, or nil before it is ready.
func (i *Image) Picture() image.Image { return i.img }

// Size returns the drawn size.
func (i *Image) Size() (float64, float64) {
	var nw, nh float64
	if i.img != nil {
		b := i.img.Bounds()
		nw, nh = float64(b.Dx()), float64(b.Dy())
	}
	return fitSize(i.width, i.height, nw, nh)
}

// fitSize resolves declared dimensions against a natural size.
func fitSize(w, h, nw, nh float64) (float64, float64) {
	switch {
	case w > 0 && h > 0:
		return w, h
	case w > 0:
		return w, w * safeDiv(nh, nw)
	case h > 0:
		return h * safeDiv(nw, nh), h
	}
	return nw, nh
}

// Trace adds the image box.
func (i *Image) Trace(p *gg.Path) {
	w, h := i.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.Rectangle(0, 0, w, h)
}

// PaintContent draws the picture, then the fill and outline over it when
// set.
func (i *Image) PaintContent(s Surface, path *gg.Path, style PaintStyle) {
	if i.img != nil {
		w, h := i.Size()
		off := i.OriginOffset()
		s.DrawImage(i.img, i.img.Bounds(), Rect{X: off.X, Y: off.Y, Width: w, Height: h}, style.Opacity)
	}
	paintPath(s, path, style)
}

// ContainsPoint reports whether local lies on the loaded picture.
func (i *Image) ContainsPoint(local Position) bool {
	if i.img == nil {
		return false
	}
	w, h := i.Size()
	off := i.OriginOffset()
	return Rect{X: off.X, Y: off.Y, Width: w, Height: h}.Contains(local)
}

func (i *Image) pollResources(s *Scene) {
	if i.url == "" || i.url == i.requested {
		return
	}
	url := i.url
	i.requested = url
	loadAsync(i.Component, s, url,
		func(ctx context.Context) (image.Image, error) { return s.loader.LoadImage(ctx, url) },
		func(img image.Image) {
			if i.url == url {
				i.img = img
			}
		})
}

// MarshalFields records the source and declared size.
func (i *Image) MarshalFields() Options {
	f := Options{"url": i.url}
	if i.width > 0 {
		f["width"] = i.width
	}
	if i.height > 0 {
		f["height"] = i.height
	}
	return f
}

func imageFromDefinition(def Definition) (Shape, error) {
	i := &Image{
		url:    fieldString(def.Fields, "url", ""),
		width:  fieldFloat(def.Fields, "width", 0),
		height: fieldFloat(def.Fields, "height", 0),
	}
	base, err := newComponent(i, def.Position, ImageDefaults(), def.Options)
	if err != nil {
		return nil, err
	}
	i.Component = base
	return i, nil
}
