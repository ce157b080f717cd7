package ruffle

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- White pixel singleton (the tree is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// All flattened geometry samples it, with the color carried per vertex.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// renderState is scratch space reused across frames so per-frame draws do
// not reallocate vertex slices.
type renderState struct {
	verts []ebiten.Vertex
	inds  []uint16
}

// Draw flattens the display tree into screen, children in ascending depth
// order, each clip's own geometry under its world transform and world
// color transform.
func (s *Stage) Draw(screen *ebiten.Image) {
	s.render.verts = s.render.verts[:0]
	s.render.inds = s.render.inds[:0]
	s.drawClip(screen, s.root, IdentityMatrix(), IdentityColorTransform())
}

func (s *Stage) drawClip(screen *ebiten.Image, c *Clip, parent Matrix, parentColor ColorTransform) {
	world := parent.Mul(c.matrix)
	worldColor := parentColor.Mul(c.colorTransform)

	if len(c.drawing.commands) > 0 {
		s.drawPath(screen, &c.drawing, world, worldColor)
	}

	for _, child := range c.children {
		s.drawClip(screen, child, world, worldColor)
	}
}

// drawPath tessellates a clip's accumulated path in world pixel space and
// submits filled and stroked triangles.
func (s *Stage) drawPath(screen *ebiten.Image, d *PathState, world Matrix, worldColor ColorTransform) {
	var path vector.Path
	for _, cmd := range d.commands {
		anchor := world.Apply(cmd.Anchor)
		ax := float32(anchor.X.Pixels())
		ay := float32(anchor.Y.Pixels())
		switch cmd.Kind {
		case DrawMoveTo:
			path.MoveTo(ax, ay)
		case DrawLineTo:
			path.LineTo(ax, ay)
		case DrawCurveTo:
			control := world.Apply(cmd.Control)
			path.QuadTo(float32(control.X.Pixels()), float32(control.Y.Pixels()), ax, ay)
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	white := ensureWhitePixel()

	if d.fill != nil {
		base := len(s.render.verts)
		s.render.verts, s.render.inds = path.AppendVerticesAndIndicesForFilling(s.render.verts, s.render.inds)
		colorFillVertices(s.render.verts[base:], d.fill, world, worldColor)
		screen.DrawTriangles(s.render.verts, s.render.inds, white, op)
		s.render.verts = s.render.verts[:0]
		s.render.inds = s.render.inds[:0]
	}

	if d.line != nil {
		sop := strokeOptions(d.line, world)
		base := len(s.render.verts)
		s.render.verts, s.render.inds = path.AppendVerticesAndIndicesForStroke(s.render.verts, s.render.inds, sop)
		tintVertices(s.render.verts[base:], worldColor.ApplyColor(d.line.Color))
		screen.DrawTriangles(s.render.verts, s.render.inds, white, op)
		s.render.verts = s.render.verts[:0]
		s.render.inds = s.render.inds[:0]
	}
}

// strokeOptions converts a line style to tessellation options. Hairline
// and sub-pixel widths draw at one pixel; scalable strokes follow the
// world matrix's axis scale.
func strokeOptions(line *LineStyle, world Matrix) *vector.StrokeOptions {
	width := line.Width.Pixels()
	if line.AllowScaleX || line.AllowScaleY {
		sx, sy := world.ScaleFactors()
		switch {
		case line.AllowScaleX && line.AllowScaleY:
			width *= (sx + sy) / 2
		case line.AllowScaleX:
			width *= sx
		default:
			width *= sy
		}
	}
	if width < 1 {
		width = 1
	}

	op := &vector.StrokeOptions{Width: float32(width)}
	switch line.StartCap {
	case CapNone:
		op.LineCap = vector.LineCapButt
	case CapSquare:
		op.LineCap = vector.LineCapSquare
	default:
		op.LineCap = vector.LineCapRound
	}
	switch line.Join {
	case JoinBevel:
		op.LineJoin = vector.LineJoinBevel
	case JoinMiter:
		op.LineJoin = vector.LineJoinMiter
		op.MiterLimit = float32(line.MiterLimit)
	default:
		op.LineJoin = vector.LineJoinRound
	}
	return op
}

// colorFillVertices assigns per-vertex colors for a fill. Solid fills tint
// every vertex; gradient fills are approximated by sampling the gradient
// at each vertex position, which is exact for linear gradients over
// triangles aligned with the ramp and close enough elsewhere.
func colorFillVertices(verts []ebiten.Vertex, fill *FillStyle, world Matrix, worldColor ColorTransform) {
	if fill.Kind == FillSolid {
		tintVertices(verts, worldColor.ApplyColor(fill.Color))
		return
	}
	inv := world.Mul(fill.Gradient.Matrix).Invert()
	for i := range verts {
		local := inv.Apply(PointFromPixels(float64(verts[i].DstX), float64(verts[i].DstY)))
		c := worldColor.ApplyColor(fill.Gradient.ColorAt(local, fill.Kind, fill.FocalPoint))
		verts[i].ColorR = float32(c.R) / 255
		verts[i].ColorG = float32(c.G) / 255
		verts[i].ColorB = float32(c.B) / 255
		verts[i].ColorA = float32(c.A) / 255
	}
}

func tintVertices(verts []ebiten.Vertex, c Color) {
	r := float32(c.R) / 255
	g := float32(c.G) / 255
	b := float32(c.B) / 255
	a := float32(c.A) / 255
	for i := range verts {
		verts[i].ColorR = r
		verts[i].ColorG = g
		verts[i].ColorB = b
		verts[i].ColorA = a
	}
}
