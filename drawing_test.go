package ruffle

import "testing"

func TestPathStateAppendGrowsBounds(t *testing.T) {
	c := newTestClip("c")
	c.AppendDrawCommand(DrawCommand{Kind: DrawMoveTo, Anchor: PointFromPixels(10, 10)})
	c.AppendDrawCommand(DrawCommand{Kind: DrawLineTo, Anchor: PointFromPixels(-20, 40)})

	b := c.Drawing().Bounds()
	assertNear(t, "xmin", b.XMin.Pixels(), -20)
	assertNear(t, "xmax", b.XMax.Pixels(), 10)
	assertNear(t, "ymax", b.YMax.Pixels(), 40)
}

func TestPathStateCurveBoundsIncludeControl(t *testing.T) {
	c := newTestClip("c")
	c.AppendDrawCommand(DrawCommand{Kind: DrawMoveTo, Anchor: PointFromPixels(0, 0)})
	c.AppendDrawCommand(DrawCommand{
		Kind:    DrawCurveTo,
		Control: PointFromPixels(50, -30),
		Anchor:  PointFromPixels(100, 0),
	})

	b := c.Drawing().Bounds()
	assertNear(t, "ymin", b.YMin.Pixels(), -30)
	assertNear(t, "xmax", b.XMax.Pixels(), 100)
}

func TestPathStateClear(t *testing.T) {
	c := newTestClip("c")
	c.SetFillStyle(&FillStyle{Kind: FillSolid, Color: Color{R: 255, A: 255}})
	c.SetLineStyle(&LineStyle{Width: 20, Color: Color{A: 255}})
	c.AppendDrawCommand(DrawCommand{Kind: DrawMoveTo, Anchor: PointFromPixels(5, 5)})

	c.ClearDrawing()

	d := c.Drawing()
	if d.FillStyle() != nil || d.LineStyle() != nil || len(d.Commands()) != 0 {
		t.Error("clear left drawing state behind")
	}
	if d.Bounds().Valid {
		t.Error("clear left stale bounds")
	}
}

// --- Gradient sampling ---

func twoStopGradient(spread GradientSpread) Gradient {
	return Gradient{
		Spread: spread,
		Stops: []GradientStop{
			{Ratio: 0, Color: Color{R: 0, A: 255}},
			{Ratio: 255, Color: Color{R: 255, A: 255}},
		},
	}
}

func TestGradientColorAtLinearEndpoints(t *testing.T) {
	g := twoStopGradient(SpreadPad)
	left := g.ColorAt(Point{X: -gradientExtent}, FillLinearGradient, 0)
	right := g.ColorAt(Point{X: gradientExtent}, FillLinearGradient, 0)
	if left.R != 0 {
		t.Errorf("left edge R = %d, want 0", left.R)
	}
	if right.R != 255 {
		t.Errorf("right edge R = %d, want 255", right.R)
	}
}

func TestGradientColorAtMidpoint(t *testing.T) {
	g := twoStopGradient(SpreadPad)
	mid := g.ColorAt(Point{X: 0}, FillLinearGradient, 0)
	if mid.R < 126 || mid.R > 129 {
		t.Errorf("midpoint R = %d, want ~128", mid.R)
	}
}

func TestGradientColorAtPadClamps(t *testing.T) {
	g := twoStopGradient(SpreadPad)
	beyond := g.ColorAt(Point{X: 3 * gradientExtent}, FillLinearGradient, 0)
	if beyond.R != 255 {
		t.Errorf("padded sample R = %d, want 255", beyond.R)
	}
}

func TestGradientColorAtRepeatWraps(t *testing.T) {
	g := twoStopGradient(SpreadRepeat)
	// Radial distance 1.5 wraps to offset 0.5.
	sample := g.ColorAt(Point{X: Twips(1.5 * gradientExtent)}, FillRadialGradient, 0)
	if sample.R < 126 || sample.R > 129 {
		t.Errorf("wrapped sample R = %d, want ~128", sample.R)
	}
}

func TestGradientColorAtReflectMirrors(t *testing.T) {
	g := twoStopGradient(SpreadReflect)
	// Radial distance 1.75 reflects to offset 0.25.
	sample := g.ColorAt(Point{X: Twips(1.75 * gradientExtent)}, FillRadialGradient, 0)
	if sample.R < 62 || sample.R > 66 {
		t.Errorf("reflected sample R = %d, want ~64", sample.R)
	}
}

func TestGradientColorAtEmpty(t *testing.T) {
	var g Gradient
	if got := g.ColorAt(Point{}, FillLinearGradient, 0); got != (Color{}) {
		t.Errorf("empty gradient sample = %+v", got)
	}
}
