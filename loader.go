package pencil

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg/cache"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader fetches external resources. Implementations are called from
// background goroutines and must be safe for concurrent use.
type Loader interface {
	LoadImage(ctx context.Context, url string) (image.Image, error)
	LoadFont(ctx context.Context, url string) ([]byte, error)
	// LoadData fetches raw bytes, such as a sprite sheet description.
	LoadData(ctx context.Context, url string) ([]byte, error)
}

// DefaultLoader reads local paths and file:// URLs from disk and fetches
// http(s) URLs. Decoded images are kept in a bounded cache so a sprite
// sheet shared by many sprites is decoded once.
type DefaultLoader struct {
	// Client performs HTTP requests. nil uses http.DefaultClient.
	Client *http.Client
	// Root resolves relative paths. Empty means the working directory.
	Root string

	images *cache.ShardedCache[string, image.Image]
}

// NewDefaultLoader returns a loader resolving relative paths against root.
func NewDefaultLoader(root string) *DefaultLoader {
	return &DefaultLoader{
		Root:   root,
		images: cache.NewSharded[string, image.Image](8, cache.StringHasher),
	}
}

// LoadImage fetches and decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func (l *DefaultLoader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	if l.images != nil {
		if img, ok := l.images.Get(url); ok {
			return img, nil
		}
	}
	rc, err := l.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	Logger().Debug("pencil: image loaded", "url", url, "format", format, "bounds", img.Bounds())
	if l.images != nil {
		l.images.Set(url, img)
	}
	return img, nil
}

// LoadFont fetches raw font bytes.
func (l *DefaultLoader) LoadFont(ctx context.Context, url string) ([]byte, error) {
	return l.LoadData(ctx, url)
}

// LoadData fetches url into memory.
func (l *DefaultLoader) LoadData(ctx context.Context, url string) ([]byte, error) {
	rc, err := l.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *DefaultLoader) open(ctx context.Context, url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := strings.TrimPrefix(url, "file://")
		if !filepath.IsAbs(p) && l.Root != "" {
			p = filepath.Join(l.Root, p)
		}
		return os.Open(p)
	}
}

// loadAsync runs fetch on a new goroutine and queues its completion on c.
// The completion runs on the loop goroutine during a later Frame, and only
// while c is attached to a scene. Success calls done, marks the geometry
// dirty and fires EventReady; failure fires EventLoadFailed with a
// *ResourceLoadError.
func loadAsync[T any](c *Component, s *Scene, url string, fetch func(context.Context) (T, error), done func(T)) {
	inbox := c.deferred()
	ctx := s.ctx
	s.loading.Add(1)
	go func() {
		defer s.loading.Add(-1)
		v, err := fetch(ctx)
		complete := func() {
			if err != nil {
				lerr := &ResourceLoadError{URL: url, Err: err}
				Logger().Warn("pencil: resource load failed", "type", c.TypeName(), "url", url, "err", err)
				c.Fire(&Event{Kind: EventLoadFailed, Err: lerr})
				return
			}
			done(v)
			c.MarkDirty()
			c.Fire(&Event{Kind: EventReady})
		}
		select {
		case inbox <- complete:
		case <-ctx.Done():
		}
	}()
}
