package pencil

import (
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates up to 4 values of a component simultaneously. Create one
// with TweenPosition, TweenScale, TweenRotation, TweenOpacity or TweenFill
// and either register it with Animate, so the scene steps it once per frame
// after painting, or call Update yourself.
type Tween struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float64)
	target *Component
	Done   bool
}

// Update advances every value by dt seconds and applies the results.
func (t *Tween) Update(dt float32) {
	if t.Done {
		return
	}
	var v [4]float64
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.apply(v)
	t.Done = allDone
}

// Reset rewinds the tween to its start.
func (t *Tween) Reset() {
	for i := 0; i < t.count; i++ {
		t.tweens[i].Reset()
	}
	t.Done = false
}

func newTween(target *Component, from, to []float64, duration float32, fn ease.TweenFunc, apply func([4]float64)) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Tween{count: len(from), target: target, apply: apply}
	for i := range from {
		t.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return t
}

// TweenPosition moves shape to the given position over duration seconds.
func TweenPosition(shape Shape, to Position, duration float32, fn ease.TweenFunc) *Tween {
	c := shape.Base()
	from := c.position
	return newTween(c, []float64{from.X, from.Y}, []float64{to.X, to.Y}, duration, fn, func(v [4]float64) {
		c.SetPosition(Position{v[0], v[1]})
	})
}

// TweenScale scales shape to the given factors.
func TweenScale(shape Shape, to Position, duration float32, fn ease.TweenFunc) *Tween {
	c := shape.Base()
	from := c.scale
	return newTween(c, []float64{from.X, from.Y}, []float64{to.X, to.Y}, duration, fn, func(v [4]float64) {
		c.SetScale(Position{v[0], v[1]})
	})
}

// TweenRotation rotates shape to the given angle in turns.
func TweenRotation(shape Shape, to float64, duration float32, fn ease.TweenFunc) *Tween {
	c := shape.Base()
	return newTween(c, []float64{c.rotation}, []float64{to}, duration, fn, func(v [4]float64) {
		_ = c.SetRotation(v[0])
	})
}

// TweenOpacity fades shape to the given opacity.
func TweenOpacity(shape Shape, to float64, duration float32, fn ease.TweenFunc) *Tween {
	c := shape.Base()
	from := c.options.Float(OptOpacity)
	return newTween(c, []float64{from}, []float64{Clamp(to, 0, 1)}, duration, fn, func(v [4]float64) {
		c.options[OptOpacity] = Clamp(v[0], 0, 1)
	})
}

// TweenFill blends shape's fill color toward to.
func TweenFill(shape Shape, to Color, duration float32, fn ease.TweenFunc) *Tween {
	c := shape.Base()
	from := c.options.Color(OptFill)
	return newTween(c,
		[]float64{from.R, from.G, from.B, from.A},
		[]float64{to.R, to.G, to.B, to.A},
		duration, fn, func(v [4]float64) {
			c.options[OptFill] = Color{v[0], v[1], v[2], v[3]}.Hex()
		})
}

// Animate registers tweens with c. The scene steps them once per frame
// while c is attached and shown, and drops each one after it finishes,
// firing EventEnd.
func (c *Component) Animate(tweens ...*Tween) {
	c.tweens = append(slices.Clip(c.tweens), tweens...)
}

// StopAnimations drops every registered tween without finishing it.
func (c *Component) StopAnimations() {
	c.tweens = nil
}

// Animating reports whether c has running tweens.
func (c *Component) Animating() bool {
	return len(c.tweens) > 0
}

// stepTweens advances registered tweens by one frame.
func (c *Component) stepTweens() {
	if len(c.tweens) == 0 {
		return
	}
	dt := float32(1) / 60
	if s := c.Scene(); s != nil {
		dt = float32(1) / float32(s.cfg.FrameRate)
	}
	var finished bool
	for _, t := range c.tweens {
		t.Update(dt)
		finished = finished || t.Done
	}
	if !finished {
		return
	}
	c.tweens = slices.DeleteFunc(slices.Clone(c.tweens), func(t *Tween) bool { return t.Done })
	c.Fire(&Event{Kind: EventEnd})
}
