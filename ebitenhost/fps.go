package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the overlay text is redrawn.
const fpsRefresh = 500 * time.Millisecond

// fpsOverlay shows the measured frame and tick rates in the top-left
// corner. Games enable it in debug mode.
type fpsOverlay struct {
	img  *ebiten.Image
	last time.Time
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		o.img = ebiten.NewImage(100, 32)
	}
	if now := time.Now(); now.Sub(o.last) >= fpsRefresh {
		o.last = now
		o.img.Clear()
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(o.img, nil)
}
