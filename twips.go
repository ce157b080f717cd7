package ruffle

// Twips is the fixed-point sub-pixel unit used for all distances in the
// display tree: 1/20 of a logical pixel. Scripted values are pixels; they
// are converted at the script-facing boundary and stored as twips.
type Twips int32

// TwipsPerPixel is the number of twips in one logical pixel.
const TwipsPerPixel = 20

// TwipsFromPixels converts a pixel value to twips, truncating toward zero.
func TwipsFromPixels(pixels float64) Twips {
	return Twips(int64(pixels * TwipsPerPixel))
}

// Pixels converts this twips value back to logical pixels.
func (t Twips) Pixels() float64 {
	return float64(t) / TwipsPerPixel
}

// Point is a 2D point in twips.
type Point struct {
	X, Y Twips
}

// PointFromPixels converts a pixel-space point to twips.
func PointFromPixels(x, y float64) Point {
	return Point{TwipsFromPixels(x), TwipsFromPixels(y)}
}

// Color is an 8-bit RGBA color as stored in shape and line styles.
type Color struct {
	R, G, B, A uint8
}

// ColorFromRGB unpacks a 0xRRGGBB integer and pairs it with an alpha byte.
func ColorFromRGB(rgb uint32, alpha uint8) Color {
	return Color{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: alpha,
	}
}
