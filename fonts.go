package pencil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont is the family used when a text style names none, or names a
// family that was never registered.
const DefaultFont = "sans-serif"

// builtinFonts are registered in every FontBook.
var builtinFonts = []struct {
	names []string
	ttf   []byte
}{
	{[]string{"Go", DefaultFont}, goregular.TTF},
	{[]string{"Go Bold", "bold"}, gobold.TTF},
	{[]string{"Go Italic", "italic"}, goitalic.TTF},
	{[]string{"Go Mono", "monospace"}, gomono.TTF},
}

type faceKey struct {
	name string
	size float64
}

// FontBook maps family names to parsed font sources and hands out sized
// faces. It is safe for concurrent use.
type FontBook struct {
	mu      sync.RWMutex
	sources map[string]*text.FontSource
	data    map[string][]byte
	faces   map[faceKey]text.Face
}

// NewFontBook returns a book holding the Go font family under its own
// names and the generic aliases sans-serif, bold, italic and monospace.
func NewFontBook() *FontBook {
	b := &FontBook{
		sources: make(map[string]*text.FontSource),
		data:    make(map[string][]byte),
		faces:   make(map[faceKey]text.Face),
	}
	for _, f := range builtinFonts {
		src, err := text.NewFontSource(f.ttf)
		if err != nil {
			// The embedded Go fonts always parse.
			panic(fmt.Sprintf("pencil: builtin font %s: %v", f.names[0], err))
		}
		for _, name := range f.names {
			b.sources[fold(name)] = src
			b.data[fold(name)] = f.ttf
		}
	}
	return b
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     *FontBook
)

// DefaultFontBook returns the process-wide book used when no scene
// provides one.
func DefaultFontBook() *FontBook {
	defaultFontsOnce.Do(func() { defaultFonts = NewFontBook() })
	return defaultFonts
}

// Register parses ttf (TrueType or OpenType) and makes it available under
// name. A later registration replaces an earlier one.
func (b *FontBook) Register(name string, ttf []byte) error {
	src, err := text.NewFontSource(ttf)
	if err != nil {
		return fmt.Errorf("pencil: register font %q: %w", name, err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	key := fold(name)
	b.sources[key] = src
	b.data[key] = ttf
	for k := range b.faces {
		if k.name == key {
			delete(b.faces, k)
		}
	}
	return nil
}

// Has reports whether name is registered.
func (b *FontBook) Has(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.sources[fold(name)]
	return ok
}

// Face returns a face of the named family at size pixels, falling back to
// DefaultFont for unknown names.
func (b *FontBook) Face(name string, size float64) text.Face {
	if size <= 0 {
		size = 1
	}
	key := faceKey{fold(name), size}
	b.mu.RLock()
	f, ok := b.faces[key]
	b.mu.RUnlock()
	if ok {
		return f
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if f, ok := b.faces[key]; ok {
		return f
	}
	src, ok := b.sources[key.name]
	if !ok {
		src = b.sources[DefaultFont]
	}
	f = src.Face(size)
	b.faces[key] = f
	return f
}

// Data returns the font file behind name, resolved the way Face resolves
// it, along with the key it was found under. Hosts that rasterize text
// with their own engine parse these bytes.
func (b *FontBook) Data(name string) (key string, ttf []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	key = fold(name)
	if ttf, ok := b.data[key]; ok {
		return key, ttf
	}
	return DefaultFont, b.data[DefaultFont]
}

func fold(name string) string {
	if name == "" {
		return DefaultFont
	}
	return strings.ToLower(name)
}
