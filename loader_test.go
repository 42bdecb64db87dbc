package pencil

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// --- DefaultLoader ---

func TestDefaultLoaderHTTP(t *testing.T) {
	data := encodePNG(t, 4, 3, color.White)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cat.png" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l := NewDefaultLoader("")
	img, err := l.LoadImage(context.Background(), srv.URL+"/cat.png")
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
	if _, err := l.LoadImage(context.Background(), srv.URL+"/cat.png"); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("hits = %d, decoded images should be cached", n)
	}
	if _, err := l.LoadImage(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Error("404 should fail")
	}
}

func TestDefaultLoaderFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "dot.png"), encodePNG(t, 2, 2, color.Black), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sheet.json"), []byte(`{"frames": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewDefaultLoader(dir)
	ctx := context.Background()

	if _, err := l.LoadImage(ctx, "dot.png"); err != nil {
		t.Errorf("relative path: %v", err)
	}
	if _, err := l.LoadImage(ctx, "file://"+filepath.Join(dir, "dot.png")); err != nil {
		t.Errorf("file URL: %v", err)
	}
	data, err := l.LoadData(ctx, "sheet.json")
	if err != nil || !bytes.Contains(data, []byte("frames")) {
		t.Errorf("LoadData = %q, %v", data, err)
	}
	if _, err := l.LoadImage(ctx, "sheet.json"); err == nil {
		t.Error("decoding a non-image should fail")
	}
	if _, err := l.LoadData(ctx, "missing.bin"); err == nil {
		t.Error("missing file should fail")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.LoadData(cancelled, "sheet.json"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: %v", err)
	}
}

// --- Asynchronous loading ---

// fakeLoader serves images from memory. When gate is set, every load
// waits for it to close.
type fakeLoader struct {
	mu     sync.Mutex
	images map[string]image.Image
	data   map[string][]byte
	gate   chan struct{}
	calls  []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{images: map[string]image.Image{}, data: map[string][]byte{}}
}

func (f *fakeLoader) wait(ctx context.Context, url string) error {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	gate := f.gate
	f.mu.Unlock()
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeLoader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	if err := f.wait(ctx, url); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	img, ok := f.images[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return img, nil
}

func (f *fakeLoader) LoadFont(ctx context.Context, url string) ([]byte, error) {
	return f.LoadData(ctx, url)
}

func (f *fakeLoader) LoadData(ctx context.Context, url string) ([]byte, error) {
	if err := f.wait(ctx, url); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.data[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newLoaderScene(t *testing.T, l Loader) (*Scene, *RasterSurface) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 100, 100
	surf := NewRasterSurface(100, 100, 1, nil)
	s, err := NewScene(surf, cfg, WithLoader(l))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s, surf
}

// waitIdle waits for background loads to finish, then renders a frame so
// their completions are applied.
func waitIdle(t *testing.T, s *Scene) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("loads did not finish")
		}
		time.Sleep(time.Millisecond)
	}
	s.Frame()
}

func TestImageLoadsAsync(t *testing.T) {
	l := newFakeLoader()
	l.images["red.png"] = redSquare(8)
	s, surf := newLoaderScene(t, l)

	img := NewImage(Pos(10, 10), "red.png", 0, 0)
	var ready int
	img.On(EventReady, func(*Event) { ready++ })
	if err := s.Attach(img); err != nil {
		t.Fatal(err)
	}
	if img.Loaded() {
		t.Fatal("loaded before any frame")
	}

	s.Frame()
	waitIdle(t, s)
	if !img.Loaded() || ready != 1 {
		t.Fatalf("loaded %v, ready %d", img.Loaded(), ready)
	}
	if w, h := img.Size(); w != 8 || h != 8 {
		t.Errorf("natural size = %v x %v", w, h)
	}
	s.Frame()
	assertPixel(t, surf, 12, 12, red)
	if l.callCount() != 1 {
		t.Errorf("loader called %d times", l.callCount())
	}
}

func TestImageLoadFailed(t *testing.T) {
	l := newFakeLoader()
	s, _ := newLoaderScene(t, l)
	img := NewImage(Pos(0, 0), "missing.png", 10, 10)
	var failure error
	img.On(EventLoadFailed, func(ev *Event) { failure = ev.Err })
	if err := s.Attach(img); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	waitIdle(t, s)

	if !errors.Is(failure, ErrResourceLoad) {
		t.Fatalf("failure = %v, want ErrResourceLoad", failure)
	}
	var lerr *ResourceLoadError
	if !errors.As(failure, &lerr) || lerr.URL != "missing.png" {
		t.Errorf("error should carry the URL: %v", failure)
	}
	if img.Loaded() {
		t.Error("failed image reported loaded")
	}
	move(s, 5, 5)
	if s.Hovered(0) != nil {
		t.Error("unloaded image should not be hit")
	}
}

func TestImageCompletionWaitsForAttach(t *testing.T) {
	l := newFakeLoader()
	l.images["red.png"] = redSquare(4)
	s, _ := newLoaderScene(t, l)
	img := NewImage(Pos(0, 0), "red.png", 0, 0)
	var ready int
	img.On(EventReady, func(*Event) { ready++ })
	if err := s.Attach(img); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	img.Remove()
	waitIdle(t, s)
	if ready != 0 || img.Loaded() {
		t.Fatal("completion applied while detached")
	}

	if err := s.Attach(img); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	if ready != 1 || !img.Loaded() {
		t.Errorf("completion not applied after reattach: ready %d", ready)
	}
	if l.callCount() != 1 {
		t.Errorf("reattach should not reload: %d calls", l.callCount())
	}
}

func TestImageURLChangeDuringLoad(t *testing.T) {
	l := newFakeLoader()
	l.images["a.png"] = redSquare(4)
	l.images["b.png"] = redSquare(6)
	l.gate = make(chan struct{})
	s, _ := newLoaderScene(t, l)

	img := NewImage(Pos(0, 0), "a.png", 0, 0)
	if err := s.Attach(img); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	img.SetURL("b.png")
	s.Frame()
	close(l.gate)
	waitIdle(t, s)

	if !img.Loaded() {
		t.Fatal("b.png not loaded")
	}
	if w, _ := img.Size(); w != 6 {
		t.Errorf("width = %v, the stale load must not win", w)
	}

	// Switching back reloads the first picture.
	img.SetURL("a.png")
	s.Frame()
	waitIdle(t, s)
	if w, _ := img.Size(); w != 4 {
		t.Errorf("width = %v after switching back", w)
	}
}

func TestCloseAbandonsLoads(t *testing.T) {
	l := newFakeLoader()
	l.gate = make(chan struct{})
	s, _ := newLoaderScene(t, l)
	if err := s.Attach(NewImage(Pos(0, 0), "slow.png", 0, 0)); err != nil {
		t.Fatal(err)
	}
	s.Frame()
	s.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.Loading() {
		if time.Now().After(deadline) {
			t.Fatal("load still running after Close")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestImageFitSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, nw, nh float64
		wantW, wantH float64
	}{
		{"natural", 0, 0, 40, 20, 40, 20},
		{"both", 10, 30, 40, 20, 10, 30},
		{"width only", 20, 0, 40, 20, 20, 10},
		{"height only", 0, 10, 40, 20, 20, 10},
		{"not loaded", 20, 0, 0, 0, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitSize(tt.w, tt.h, tt.nw, tt.nh)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("fitSize = %v x %v, want %v x %v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func redSquare(n int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	return img
}
