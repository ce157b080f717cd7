package ruffle

// Depth is the z-order key for siblings inside a clip. Script-facing calls
// use an unbiased depth; the tree stores a biased one so that dynamically
// created children occupy a separate range from author-placed children.
type Depth = int32

const (
	// DepthBias is the offset between script depth and internal depth for
	// dynamically created children. Timeline-placed children are stored at
	// their file depth minus this bias, so they occupy the negative range
	// and script depth 0 sits above all of them.
	DepthBias Depth = 16384

	// MaxDepth is the highest internal depth usable by the dynamic API:
	// 2^31 - 16777220. The derivation of this value is not documented in
	// the legacy player; it is preserved as-is.
	MaxDepth Depth = 2_130_706_428

	// removeUpperBound is the exclusive upper bound of the biased depth
	// range inside which removal is allowed. Another opaque legacy value.
	removeUpperBound Depth = 2_130_706_416
)

// depthFromScript biases a script depth into the internal namespace.
// The addition wraps at the 32-bit boundary rather than faulting.
func depthFromScript(d int32) Depth {
	return d + DepthBias
}

// depthToScript unbiases an internal depth back into the script namespace.
func depthToScript(d Depth) int32 {
	return d - DepthBias
}

// validDynamicDepth reports whether an internal depth is acceptable for a
// dynamic attach or duplicate. Out-of-range depths make the whole
// operation a silent no-op.
func validDynamicDepth(d Depth) bool {
	return d >= 0 && d <= MaxDepth
}

// removableDepth reports whether a biased depth falls inside the range the
// dynamic API may remove. The asymmetric upper bound matches the legacy
// player exactly.
func removableDepth(d Depth) bool {
	return d >= DepthBias && d < removeUpperBound
}
