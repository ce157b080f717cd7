package ruffle

import "math"

// Matrix is a 2D affine transform. The linear part is kept in float64 and
// the translation in twips, matching how the scene description stores it.
//
//	| A  C  TX |
//	| B  D  TY |
//	| 0  0   1 |
type Matrix struct {
	A, B, C, D float64
	TX, TY     Twips
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m * n, the transform that applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		TX: Twips(m.A*float64(n.TX)+m.C*float64(n.TY)) + m.TX,
		TY: Twips(m.B*float64(n.TX)+m.D*float64(n.TY)) + m.TY,
	}
}

// Invert computes the inverse transform.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m.A*m.D - m.C*m.B
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix()
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	return Matrix{
		A: a, B: b, C: c, D: d,
		TX: Twips(-(a*float64(m.TX) + c*float64(m.TY))),
		TY: Twips(-(b*float64(m.TX) + d*float64(m.TY))),
	}
}

// Apply transforms a point by this matrix.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: Twips(m.A*float64(p.X)+m.C*float64(p.Y)) + m.TX,
		Y: Twips(m.B*float64(p.X)+m.D*float64(p.Y)) + m.TY,
	}
}

// ColorTransform scales and offsets the color channels of a clip and its
// subtree. Multipliers are unit-scaled; offsets are added after scaling in
// 8-bit channel space.
type ColorTransform struct {
	RMul, GMul, BMul, AMul float64
	RAdd, GAdd, BAdd, AAdd int16
}

// IdentityColorTransform returns the color transform that leaves colors
// unchanged.
func IdentityColorTransform() ColorTransform {
	return ColorTransform{RMul: 1, GMul: 1, BMul: 1, AMul: 1}
}

// Mul composes two color transforms: applying the result equals applying
// n first, then ct.
func (ct ColorTransform) Mul(n ColorTransform) ColorTransform {
	return ColorTransform{
		RMul: ct.RMul * n.RMul,
		GMul: ct.GMul * n.GMul,
		BMul: ct.BMul * n.BMul,
		AMul: ct.AMul * n.AMul,
		RAdd: clampAdd(ct.RAdd, int16(ct.RMul*float64(n.RAdd))),
		GAdd: clampAdd(ct.GAdd, int16(ct.GMul*float64(n.GAdd))),
		BAdd: clampAdd(ct.BAdd, int16(ct.BMul*float64(n.BAdd))),
		AAdd: clampAdd(ct.AAdd, int16(ct.AMul*float64(n.AAdd))),
	}
}

// ApplyColor runs a color through the transform, clamping each channel to
// the 8-bit range.
func (ct ColorTransform) ApplyColor(c Color) Color {
	return Color{
		R: clampChannel(float64(c.R)*ct.RMul + float64(ct.RAdd)),
		G: clampChannel(float64(c.G)*ct.GMul + float64(ct.GAdd)),
		B: clampChannel(float64(c.B)*ct.BMul + float64(ct.BAdd)),
		A: clampChannel(float64(c.A)*ct.AMul + float64(ct.AAdd)),
	}
}

func clampAdd(a, b int16) int16 {
	sum := int32(a) + int32(b)
	if sum > math.MaxInt16 {
		return math.MaxInt16
	}
	if sum < math.MinInt16 {
		return math.MinInt16
	}
	return int16(sum)
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// ScaleFactors returns the lengths of the matrix's transformed x and y
// basis vectors.
func (m Matrix) ScaleFactors() (sx, sy float64) {
	return math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)
}
