package ruffle

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 scripted properties on a clip
// simultaneously. Create one via the convenience constructors
// (TweenPosition, TweenScale, TweenAlpha) and call Update(dt) each frame.
// If the target clip is removed from the tree, the group stops
// immediately.
//
// There is no global animation manager. Hosts call Update themselves,
// typically from the same tick that drives Stage.Update.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  [4]func(float64)
	target *Clip
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values through
// the clip's setters. A removed target sets Done without writing.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.Removed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates the clip's x and y position, in pixels, to the
// given coordinates over the duration using the easing function.
func TweenPosition(c *Clip, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(c.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.Y()), float32(toY), duration, fn)
	g.apply[0] = c.SetX
	g.apply[1] = c.SetY
	return g
}

// TweenScale animates the clip matrix's axis scale factors to the given
// values over the duration using the easing function. Any rotation or
// skew present in the matrix is preserved.
func TweenScale(c *Clip, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	sx, sy := c.Matrix().ScaleFactors()
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(sx), float32(toSX), duration, fn)
	g.tweens[1] = gween.New(float32(sy), float32(toSY), duration, fn)
	g.apply[0] = func(v float64) { c.setScaleX(v) }
	g.apply[1] = func(v float64) { c.setScaleY(v) }
	return g
}

// TweenAlpha animates the clip's alpha, as a percentage in [0, 100], to
// the target value over the duration using the easing function.
func TweenAlpha(c *Clip, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: c}
	g.tweens[0] = gween.New(float32(c.Alpha()), float32(to), duration, fn)
	g.apply[0] = c.SetAlpha
	return g
}
