package ruffle

// Bounds is an axis-aligned box in twips. The zero value is invalid (empty);
// an invalid box unions and intersects as if it had no extent.
type Bounds struct {
	XMin, YMin Twips
	XMax, YMax Twips
	Valid      bool
}

// NewBounds returns a valid box spanning the given corners.
func NewBounds(xMin, yMin, xMax, yMax Twips) Bounds {
	return Bounds{XMin: xMin, YMin: yMin, XMax: xMax, YMax: yMax, Valid: true}
}

// EncompassPoint grows the box to include the point.
func (b *Bounds) EncompassPoint(p Point) {
	if !b.Valid {
		*b = Bounds{XMin: p.X, YMin: p.Y, XMax: p.X, YMax: p.Y, Valid: true}
		return
	}
	if p.X < b.XMin {
		b.XMin = p.X
	}
	if p.X > b.XMax {
		b.XMax = p.X
	}
	if p.Y < b.YMin {
		b.YMin = p.Y
	}
	if p.Y > b.YMax {
		b.YMax = p.Y
	}
}

// Union grows the box to include another box.
func (b *Bounds) Union(other Bounds) {
	if !other.Valid {
		return
	}
	b.EncompassPoint(Point{other.XMin, other.YMin})
	b.EncompassPoint(Point{other.XMax, other.YMax})
}

// Transform applies an affine matrix to the box by transforming its four
// corners and re-boxing them. This is intentionally looser than re-deriving
// a tight box from transformed geometry; it reproduces the legacy bounding
// boxes the scripting surface exposes.
func (b Bounds) Transform(m Matrix) Bounds {
	if !b.Valid {
		return b
	}
	var out Bounds
	out.EncompassPoint(m.Apply(Point{b.XMin, b.YMin}))
	out.EncompassPoint(m.Apply(Point{b.XMax, b.YMin}))
	out.EncompassPoint(m.Apply(Point{b.XMin, b.YMax}))
	out.EncompassPoint(m.Apply(Point{b.XMax, b.YMax}))
	return out
}

// Contains reports whether the point lies inside the box. Points on the
// edge are inside.
func (b Bounds) Contains(p Point) bool {
	return b.Valid &&
		p.X >= b.XMin && p.X <= b.XMax &&
		p.Y >= b.YMin && p.Y <= b.YMax
}

// Intersects reports whether b and other overlap. Boxes sharing only an
// edge are considered intersecting.
func (b Bounds) Intersects(other Bounds) bool {
	return b.Valid && other.Valid &&
		b.XMin <= other.XMax && b.XMax >= other.XMin &&
		b.YMin <= other.YMax && b.YMax >= other.YMin
}
