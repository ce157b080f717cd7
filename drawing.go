package ruffle

import "math"

// CapStyle is the shape of stroke endpoints.
type CapStyle uint8

const (
	CapRound  CapStyle = iota // rounded cap (default)
	CapNone                   // flat cap ending at the endpoint
	CapSquare                 // flat cap extending past the endpoint
)

// JoinStyle is the shape of stroke joins.
type JoinStyle uint8

const (
	JoinRound JoinStyle = iota // rounded join (default)
	JoinBevel                  // beveled join
	JoinMiter                  // sharp join, limited by LineStyle.MiterLimit
)

// LineStyle describes the current stroke of a clip's path builder.
type LineStyle struct {
	Width         Twips
	Color         Color
	StartCap      CapStyle
	EndCap        CapStyle
	Join          JoinStyle
	MiterLimit    float64 // only meaningful with JoinMiter
	AllowScaleX   bool
	AllowScaleY   bool
	IsPixelHinted bool
}

// GradientSpread selects how a gradient extends past its bounds.
type GradientSpread uint8

const (
	SpreadPad     GradientSpread = iota // extend edge colors (default)
	SpreadReflect                       // mirror the pattern
	SpreadRepeat                        // repeat the pattern
)

// GradientInterpolation selects the color space gradient stops blend in.
type GradientInterpolation uint8

const (
	InterpolationRGB       GradientInterpolation = iota // standard sRGB (default)
	InterpolationLinearRGB                              // linear sRGB
)

// GradientStop is a color at a ratio position along a gradient.
type GradientStop struct {
	Ratio uint8
	Color Color
}

// Gradient is a shared gradient descriptor for the gradient fill kinds.
type Gradient struct {
	Matrix        Matrix
	Spread        GradientSpread
	Interpolation GradientInterpolation
	Stops         []GradientStop
}

// FillKind discriminates FillStyle variants.
type FillKind uint8

const (
	FillSolid FillKind = iota
	FillLinearGradient
	FillRadialGradient
	FillFocalGradient
)

// FillStyle describes the current fill of a clip's path builder.
// Gradient is meaningful for the gradient kinds, FocalPoint only for
// FillFocalGradient.
type FillStyle struct {
	Kind       FillKind
	Color      Color
	Gradient   Gradient
	FocalPoint float64
}

// DrawKind discriminates path commands.
type DrawKind uint8

const (
	DrawMoveTo DrawKind = iota
	DrawLineTo
	DrawCurveTo
)

// DrawCommand is one accumulated path command. Anchor is the destination
// point; Control is only meaningful for DrawCurveTo.
type DrawCommand struct {
	Kind    DrawKind
	Control Point
	Anchor  Point
}

// PathState is a clip's mutable vector drawing state: the current fill and
// line styles plus the ordered, append-only command sequence since the
// last clear.
type PathState struct {
	fill     *FillStyle
	line     *LineStyle
	commands []DrawCommand
	bounds   Bounds
}

// FillStyle returns the current fill style, or nil when no fill is open.
func (p *PathState) FillStyle() *FillStyle { return p.fill }

// LineStyle returns the current line style, or nil when strokes are off.
func (p *PathState) LineStyle() *LineStyle { return p.line }

// Commands returns the accumulated command sequence. The returned slice
// MUST NOT be mutated by the caller.
func (p *PathState) Commands() []DrawCommand { return p.commands }

// Bounds returns the extent of the accumulated commands, invalid when
// nothing has been drawn.
func (p *PathState) Bounds() Bounds { return p.bounds }

// SetFillStyle replaces the current fill style. Ending a fill passes nil,
// which clears only the fill; accumulated geometry stays.
func (p *PathState) SetFillStyle(style *FillStyle) {
	p.fill = style
}

// SetLineStyle replaces the current line style; nil turns strokes off.
func (p *PathState) SetLineStyle(style *LineStyle) {
	p.line = style
}

// Append adds a path command and grows the drawing bounds.
func (p *PathState) Append(cmd DrawCommand) {
	p.commands = append(p.commands, cmd)
	if cmd.Kind == DrawCurveTo {
		p.bounds.EncompassPoint(cmd.Control)
	}
	p.bounds.EncompassPoint(cmd.Anchor)
}

// Clear resets fill, line, and the command sequence together.
func (p *PathState) Clear() {
	p.fill = nil
	p.line = nil
	p.commands = nil
	p.bounds = Bounds{}
}

// --- Clip drawing API ---

// SetFillStyle replaces the clip's current fill style.
func (c *Clip) SetFillStyle(style *FillStyle) { c.drawing.SetFillStyle(style) }

// SetLineStyle replaces the clip's current line style.
func (c *Clip) SetLineStyle(style *LineStyle) { c.drawing.SetLineStyle(style) }

// AppendDrawCommand appends a path command to the clip's drawing state.
func (c *Clip) AppendDrawCommand(cmd DrawCommand) { c.drawing.Append(cmd) }

// ClearDrawing resets the clip's drawing state.
func (c *Clip) ClearDrawing() { c.drawing.Clear() }

// Drawing returns the clip's path builder state.
func (c *Clip) Drawing() *PathState { return &c.drawing }

// gradientExtent is half the width of the gradient design square, in
// twips. Gradient matrices map this square onto the filled geometry.
const gradientExtent = 16384.0

// ColorAt samples the gradient at a point in gradient space. kind selects
// the ramp geometry; focal shifts the radial center for focal gradients.
func (g Gradient) ColorAt(p Point, kind FillKind, focal float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	x := float64(p.X) / gradientExtent
	y := float64(p.Y) / gradientExtent

	var t float64
	switch kind {
	case FillLinearGradient:
		t = (x + 1) / 2
	case FillFocalGradient:
		t = math.Hypot(x-focal, y)
	default:
		t = math.Hypot(x, y)
	}

	switch g.Spread {
	case SpreadRepeat:
		t = t - math.Floor(t)
	case SpreadReflect:
		t = math.Abs(t)
		period := math.Mod(t, 2)
		if period > 1 {
			period = 2 - period
		}
		t = period
	default:
		t = clampF64(t, 0, 1)
	}

	ratio := t * 255
	stops := g.Stops
	if ratio <= float64(stops[0].Ratio) {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if ratio >= float64(last.Ratio) {
		return last.Color
	}
	for i := 1; i < len(stops); i++ {
		if ratio > float64(stops[i].Ratio) {
			continue
		}
		lo, hi := stops[i-1], stops[i]
		span := float64(hi.Ratio) - float64(lo.Ratio)
		if span <= 0 {
			return hi.Color
		}
		frac := (ratio - float64(lo.Ratio)) / span
		if g.Interpolation == InterpolationLinearRGB {
			return lerpColorLinear(lo.Color, hi.Color, frac)
		}
		return lerpColor(lo.Color, hi.Color, frac)
	}
	return last.Color
}

func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// lerpColorLinear blends in linear light with a 2.2 gamma approximation.
// Alpha stays in direct space.
func lerpColorLinear(a, b Color, t float64) Color {
	blend := func(x, y uint8) uint8 {
		lx := math.Pow(float64(x)/255, 2.2)
		ly := math.Pow(float64(y)/255, 2.2)
		v := math.Pow(lx+(ly-lx)*t, 1/2.2)
		return uint8(v*255 + 0.5)
	}
	return Color{
		R: blend(a.R, b.R),
		G: blend(a.G, b.G),
		B: blend(a.B, b.B),
		A: lerpChannel(a.A, b.A, t),
	}
}
