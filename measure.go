package pencil

import (
	"strconv"
	"strings"

	"github.com/gogpu/gg/cache"
	"github.com/gogpu/gg/text"
)

// Measurer reports the box a block of text occupies. Lines are separated
// by "\n". Implementations must be pure for a given (text, style).
type Measurer interface {
	Measure(s string, style TextStyle) Size
}

// FaceMeasurer measures text with faces from a FontBook.
type FaceMeasurer struct {
	Fonts *FontBook
}

// NewFaceMeasurer returns a measurer over fonts, or over DefaultFontBook
// when fonts is nil.
func NewFaceMeasurer(fonts *FontBook) *FaceMeasurer {
	if fonts == nil {
		fonts = DefaultFontBook()
	}
	return &FaceMeasurer{Fonts: fonts}
}

// Measure returns the widest line's advance and the summed line heights.
func (m *FaceMeasurer) Measure(s string, style TextStyle) Size {
	face := m.Fonts.Face(style.Font, style.Size)
	lines := strings.Split(s, "\n")
	var width float64
	for _, line := range lines {
		width = max(width, face.Advance(line))
	}
	return Size{Width: width, Height: lineHeight(face, style) * float64(len(lines))}
}

// lineHeight is style.LineHeight times the font size, or the face's own
// line height when unset.
func lineHeight(face text.Face, style TextStyle) float64 {
	if style.LineHeight > 0 {
		return style.LineHeight * style.Size
	}
	return face.Metrics().LineHeight()
}

// CachedMeasurer memoizes another Measurer in a bounded LRU cache keyed by
// text and style.
type CachedMeasurer struct {
	next  Measurer
	cache *cache.ShardedCache[string, Size]
}

// NewCachedMeasurer wraps next with a cache holding about capacity
// entries. capacity <= 0 picks the cache package default.
func NewCachedMeasurer(next Measurer, capacity int) *CachedMeasurer {
	perShard := 0
	if capacity > 0 {
		perShard = max(capacity/cache.DefaultShardCount, 1)
	}
	return &CachedMeasurer{
		next:  next,
		cache: cache.NewSharded[string, Size](perShard, cache.StringHasher),
	}
}

// Measure returns the cached size, measuring on a miss.
func (m *CachedMeasurer) Measure(s string, style TextStyle) Size {
	return m.cache.GetOrCreate(measureKey(s, style), func() Size {
		return m.next.Measure(s, style)
	})
}

// Len returns the number of cached entries.
func (m *CachedMeasurer) Len() int {
	return m.cache.Len()
}

// Purge drops every cached entry, for instance after registering a font
// under a name already in use.
func (m *CachedMeasurer) Purge() {
	m.cache.Clear()
}

func measureKey(s string, style TextStyle) string {
	var b strings.Builder
	b.Grow(len(s) + len(style.Font) + 32)
	b.WriteString(fold(style.Font))
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(style.Size, 'g', -1, 64))
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(style.LineHeight, 'g', -1, 64))
	b.WriteByte(0)
	b.WriteString(s)
	return b.String()
}
