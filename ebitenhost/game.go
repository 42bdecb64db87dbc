package ebitenhost

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/shamseena-dev/pencil"
)

// Game adapts a scene to ebiten.Game. Update polls input and runs tasks
// posted to the scene; Draw renders one scene frame.
type Game struct {
	scene   *pencil.Scene
	surface *Surface
	input   inputState
	script  *pencil.ScriptRunner
	fps     *fpsOverlay
}

// NewGame creates a window-backed scene from cfg. Build the tree on
// Scene() before calling Run. In debug mode the measured frame rate is
// drawn over the scene.
func NewGame(cfg pencil.Config, opts ...pencil.SceneOption) (*Game, error) {
	surface := NewSurface(cfg.Width, cfg.Height, cfg.PixelRatio, nil)
	scene, err := pencil.NewScene(surface, cfg, append([]pencil.SceneOption{pencil.WithFonts(surface.fonts)}, opts...)...)
	if err != nil {
		return nil, err
	}
	g := &Game{scene: scene, surface: surface}
	if cfg.Debug {
		g.fps = &fpsOverlay{}
	}
	return g, nil
}

// Scene returns the scene the game drives.
func (g *Game) Scene() *pencil.Scene { return g.scene }

// SetScript replays r's input instead of the devices while it runs.
// Screenshot steps capture the window contents.
func (g *Game) SetScript(r *pencil.ScriptRunner) {
	g.script = r
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.scene.RunPosted()
	if g.script != nil && !g.script.Done() {
		if g.script.Step(g.scene) {
			return nil
		}
	}
	g.input.poll(g.scene)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.scene.Frame()
	if g.script != nil {
		g.script.AfterFrame(g.scene)
	}
	g.surface.SetTarget(nil)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The backbuffer stays at the configured
// size times the pixel ratio.
func (g *Game) Layout(int, int) (int, int) {
	return g.surface.PixelSize()
}

// Run opens a window and blocks until it is closed.
func (g *Game) Run() error {
	cfg := g.scene.Config()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.FrameRate)
	defer g.scene.Close()
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
