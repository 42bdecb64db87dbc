package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/shamseena-dev/pencil"
)

// watchDebounce merges the bursts of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

type renderOptions struct {
	output      string
	frames      int
	pixelRatio  float64
	loadTimeout time.Duration
	watch       bool
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a scene document to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			doc := args[0]
			if o.output == "" {
				o.output = trimExt(doc) + ".png"
			}
			if o.pixelRatio > 0 {
				cfg.PixelRatio = o.pixelRatio
			}
			if err := renderOnce(cmd.Context(), doc, cfg, o); err != nil {
				return err
			}
			if !o.watch {
				return nil
			}
			return watchDocument(cmd.Context(), doc, func() {
				if err := renderOnce(cmd.Context(), doc, cfg, o); err != nil {
					pencil.Logger().Error("render failed", "document", doc, "err", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "PNG file to write (default: document name with .png)")
	cmd.Flags().IntVar(&o.frames, "frames", 1, "number of frames to run before saving")
	cmd.Flags().Float64Var(&o.pixelRatio, "pixel-ratio", 0, "override the configured pixel ratio")
	cmd.Flags().DurationVar(&o.loadTimeout, "load-timeout", 5*time.Second, "how long to wait for images and fonts")
	cmd.Flags().BoolVar(&o.watch, "watch", false, "render again whenever the document changes")
	return cmd
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}

// buildScene creates a raster scene for def. A Scene root keeps its own
// size and options; any other root is attached to a scene sized from cfg.
func buildScene(doc string, def pencil.Definition, cfg pencil.Config) (*pencil.Scene, *pencil.RasterSurface, error) {
	if cfg.AssetRoot == "" {
		cfg.AssetRoot = filepath.Dir(doc)
	}
	if def.Type == "Scene" {
		if w := fieldInt(def.Fields, "width"); w > 0 {
			cfg.Width = w
		}
		if h := fieldInt(def.Fields, "height"); h > 0 {
			cfg.Height = h
		}
	}
	surface := pencil.NewRasterSurface(cfg.Width, cfg.Height, cfg.PixelRatio, nil)
	if def.Type == "Scene" {
		s, err := pencil.SceneFromDefinition(def, surface, cfg)
		return s, surface, err
	}
	shape, err := pencil.From(def)
	if err != nil {
		return nil, nil, err
	}
	s, err := pencil.NewScene(surface, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Attach(shape); err != nil {
		return nil, nil, err
	}
	return s, surface, nil
}

// fieldInt reads a size field decoded from JSON (float64) or YAML (int).
func fieldInt(f pencil.Options, key string) int {
	switch v := f[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func renderOnce(ctx context.Context, doc string, cfg pencil.Config, o renderOptions) error {
	start := time.Now()
	def, err := readDocument(doc)
	if err != nil {
		return err
	}
	scene, surface, err := buildScene(doc, def, cfg)
	if err != nil {
		return err
	}
	defer scene.Close()

	scene.Frame()
	for i := 1; i < o.frames || (scene.Loading() && time.Since(start) < o.loadTimeout); i++ {
		if err := waitLoads(ctx, scene, o.loadTimeout); err != nil {
			return err
		}
		scene.Frame()
	}
	if err := surface.SavePNG(o.output); err != nil {
		return fmt.Errorf("save %s: %w", o.output, err)
	}
	pencil.Logger().Info("rendered",
		slog.String("document", doc),
		slog.String("output", o.output),
		slog.Uint64("frames", scene.FrameCount()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// waitLoads blocks until the scene has no load in flight or timeout
// passes. A timeout is not an error: the frame renders without the
// missing resources.
func waitLoads(ctx context.Context, scene *pencil.Scene, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for scene.Loading() && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	if scene.Loading() {
		pencil.Logger().Warn("resources still loading", "timeout", timeout)
	}
	return nil
}

// watchDocument calls render after every change to doc until interrupted.
// The directory is watched rather than the file so that editors replacing
// the file on save are followed.
func watchDocument(ctx context.Context, doc string, render func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	abs, err := filepath.Abs(doc)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	pencil.Logger().Info("watching", "document", doc)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			pencil.Logger().Warn("watch error", "err", err)
		case <-debounce:
			debounce = nil
			render()
		}
	}
}
