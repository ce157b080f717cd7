package ruffle

import (
	"math"
	"sort"
)

// clipIDCounter is a plain counter; tree mutation is single-threaded,
// owned by one logical execution thread.
var clipIDCounter uint32

func nextClipID() uint32 {
	clipIDCounter++
	return clipIDCounter
}

// Clip is a node in the display tree: a renderable, scriptable object with
// a depth-ordered child collection, a local transform, per-node drawing
// state, and a timeline cursor.
//
// The tree exclusively owns its clips through parent→child edges; Parent
// is a non-owning back-reference. Children are kept in ascending internal
// depth order, and no two children share a depth at any observable
// instant.
type Clip struct {
	// Identity (stable across the clip's life)
	id   uint32
	name string

	// Hierarchy
	parent   *Clip
	children []*Clip // ascending internal depth
	depth    Depth

	// Transform
	matrix         Matrix
	colorTransform ColorTransform

	// Content this clip was instantiated from; nil for dynamically
	// created empty clips.
	content *ContentDef

	// Timeline cursor (timeline.go)
	currentFrame uint16
	totalFrames  uint16
	labels       map[string]uint16
	playing      bool

	// Drawing state (drawing.go)
	drawing PathState

	// Script-facing object, created lazily.
	object *Object

	// Load progress, updated by the load manager.
	loadedBytes uint32

	removed bool
}

// newClip creates a detached clip. A nil content produces an empty
// container with a single-frame timeline.
func newClip(content *ContentDef, name string) *Clip {
	c := &Clip{
		id:             nextClipID(),
		name:           name,
		matrix:         IdentityMatrix(),
		colorTransform: IdentityColorTransform(),
		content:        content,
		totalFrames:    1,
		playing:        true,
	}
	if content != nil {
		if content.FrameCount > 0 {
			c.totalFrames = content.FrameCount
		}
		if len(content.Labels) > 0 {
			c.labels = make(map[string]uint16, len(content.Labels))
			for k, v := range content.Labels {
				c.labels[k] = v
			}
		}
	}
	return c
}

// --- Identity and basic state ---

// ID returns the clip's instance identity.
func (c *Clip) ID() uint32 { return c.id }

// Name returns the clip's instance name.
func (c *Clip) Name() string { return c.name }

// SetName sets the clip's instance name.
func (c *Clip) SetName(name string) { c.name = name }

// Parent returns the clip's parent, or nil for the root.
func (c *Clip) Parent() *Clip { return c.parent }

// Depth returns the clip's internal (biased) depth among its siblings.
func (c *Clip) Depth() Depth { return c.depth }

// Matrix returns the clip's local transform.
func (c *Clip) Matrix() Matrix { return c.matrix }

// SetMatrix sets the clip's local transform.
func (c *Clip) SetMatrix(m Matrix) { c.matrix = m }

// ColorTransform returns the clip's color transform.
func (c *Clip) ColorTransform() ColorTransform { return c.colorTransform }

// SetColorTransform sets the clip's color transform.
func (c *Clip) SetColorTransform(ct ColorTransform) { c.colorTransform = ct }

// Content returns the content definition this clip was instantiated from,
// or nil for dynamically created empty clips.
func (c *Clip) Content() *ContentDef { return c.content }

// Removed reports whether the clip has been detached from the tree.
// Pending load continuations check this at apply time.
func (c *Clip) Removed() bool { return c.removed }

// Object returns the clip's script-facing object, creating it on first
// use. The object holds the back-reference the dispatch layer downcasts
// through.
func (c *Clip) Object() *Object {
	if c.object == nil {
		c.object = NewObject()
		c.object.clip = c
	}
	return c.object
}

// --- Pixel-space transform accessors ---
//
// Scripted property access (_x, _y, _alpha) and the drag/tween helpers go
// through these; they convert at the twips boundary.

// X returns the clip's local x translation in pixels.
func (c *Clip) X() float64 { return c.matrix.TX.Pixels() }

// SetX sets the clip's local x translation in pixels.
func (c *Clip) SetX(x float64) { c.matrix.TX = TwipsFromPixels(x) }

// Y returns the clip's local y translation in pixels.
func (c *Clip) Y() float64 { return c.matrix.TY.Pixels() }

// SetY sets the clip's local y translation in pixels.
func (c *Clip) SetY(y float64) { c.matrix.TY = TwipsFromPixels(y) }

// Alpha returns the clip's alpha multiplier as a percentage.
func (c *Clip) Alpha() float64 { return c.colorTransform.AMul * 100 }

// SetAlpha sets the clip's alpha multiplier as a percentage.
func (c *Clip) SetAlpha(pct float64) { c.colorTransform.AMul = pct / 100 }

// setScaleX rescales the matrix's x basis vector to length v, keeping its
// direction. A degenerate basis resets to the x axis.
func (c *Clip) setScaleX(v float64) {
	length := math.Hypot(c.matrix.A, c.matrix.B)
	if length == 0 {
		c.matrix.A, c.matrix.B = v, 0
		return
	}
	c.matrix.A *= v / length
	c.matrix.B *= v / length
}

// setScaleY rescales the matrix's y basis vector to length v, keeping its
// direction. A degenerate basis resets to the y axis.
func (c *Clip) setScaleY(v float64) {
	length := math.Hypot(c.matrix.C, c.matrix.D)
	if length == 0 {
		c.matrix.C, c.matrix.D = 0, v
		return
	}
	c.matrix.C *= v / length
	c.matrix.D *= v / length
}

// --- Tree structure ---

// Children returns the child list in ascending internal depth order.
// The returned slice MUST NOT be mutated by the caller.
func (c *Clip) Children() []*Clip {
	return c.children
}

// NumChildren returns the number of children.
func (c *Clip) NumChildren() int {
	return len(c.children)
}

// ChildAtDepth returns the child with the given internal depth, or nil.
func (c *Clip) ChildAtDepth(depth Depth) *Clip {
	i := sort.Search(len(c.children), func(i int) bool {
		return c.children[i].depth >= depth
	})
	if i < len(c.children) && c.children[i].depth == depth {
		return c.children[i]
	}
	return nil
}

// ChildByName returns the first child with the given name, or nil.
func (c *Clip) ChildByName(name string) *Clip {
	for _, child := range c.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// HighestDepth returns the largest internal depth among the children.
// ok is false if the clip has no children.
func (c *Clip) HighestDepth() (depth Depth, ok bool) {
	if len(c.children) == 0 {
		return 0, false
	}
	return c.children[len(c.children)-1].depth, true
}

// Root walks the parent chain to the tree's root.
func (c *Clip) Root() *Clip {
	n := c
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Path returns the clip's dotted target path. The root is "_level0".
func (c *Clip) Path() string {
	if c.parent == nil {
		return "_level0"
	}
	return c.parent.Path() + "." + c.name
}

// addChildAtDepth attaches child at the given internal depth. A sibling
// already occupying that depth is displaced by overwrite: it is removed
// from the tree. If child already has a parent it is detached first.
func (c *Clip) addChildAtDepth(child *Clip, depth Depth) {
	if existing := c.ChildAtDepth(depth); existing != nil && existing != child {
		c.removeChild(existing)
	}
	if child.parent != nil {
		child.parent.removeChildPtr(child)
	}
	child.parent = c
	child.depth = depth
	child.removed = false
	i := sort.Search(len(c.children), func(i int) bool {
		return c.children[i].depth >= depth
	})
	c.children = append(c.children, nil)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = child
}

// removeChild detaches child from this clip and marks it removed.
// No-op if child's parent is not this clip.
func (c *Clip) removeChild(child *Clip) {
	if child.parent != c {
		return
	}
	c.removeChildPtr(child)
	child.parent = nil
	child.removed = true
}

// removeChildPtr splices child out of c.children without touching
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (c *Clip) removeChildPtr(child *Clip) {
	for i, ch := range c.children {
		if ch == child {
			copy(c.children[i:], c.children[i+1:])
			c.children[len(c.children)-1] = nil
			c.children = c.children[:len(c.children)-1]
			return
		}
	}
}

// swapChildToDepth moves child to the given internal depth. If another
// sibling occupies that depth the two exchange depths; unrelated siblings
// are untouched.
func (c *Clip) swapChildToDepth(child *Clip, depth Depth) {
	if child.parent != c {
		return
	}
	if occupant := c.ChildAtDepth(depth); occupant != nil && occupant != child {
		occupant.depth = child.depth
	}
	child.depth = depth
	sort.SliceStable(c.children, func(i, j int) bool {
		return c.children[i].depth < c.children[j].depth
	})
}

// --- Coordinate spaces ---

// LocalToGlobalMatrix composes the clip's full ancestor-chain transform,
// root-relative. The root's own transform is included: root-relative is
// not a fixed global frame.
func (c *Clip) LocalToGlobalMatrix() Matrix {
	m := c.matrix
	for p := c.parent; p != nil; p = p.parent {
		m = p.matrix.Mul(m)
	}
	return m
}

// GlobalToLocalMatrix is the inverse of LocalToGlobalMatrix.
func (c *Clip) GlobalToLocalMatrix() Matrix {
	return c.LocalToGlobalMatrix().Invert()
}

// LocalToGlobal transforms a point from this clip's space to root space.
func (c *Clip) LocalToGlobal(p Point) Point {
	return c.LocalToGlobalMatrix().Apply(p)
}

// GlobalToLocal transforms a point from root space to this clip's space.
func (c *Clip) GlobalToLocal(p Point) Point {
	return c.GlobalToLocalMatrix().Apply(p)
}

// --- Bounds and hit testing ---

// SelfBounds returns the clip's own extent in its local space: the content
// it was instantiated from plus anything drawn through the path builder.
func (c *Clip) SelfBounds() Bounds {
	var b Bounds
	if c.content != nil {
		b.Union(c.content.Bounds)
	}
	b.Union(c.drawing.bounds)
	return b
}

// BoundsLocal returns the clip's extent in its own space, including
// children transformed by their local matrices.
func (c *Clip) BoundsLocal() Bounds {
	b := c.SelfBounds()
	for _, child := range c.children {
		b.Union(child.BoundsLocal().Transform(child.matrix))
	}
	return b
}

// WorldBounds returns the clip's extent in root space.
func (c *Clip) WorldBounds() Bounds {
	return c.BoundsLocal().Transform(c.LocalToGlobalMatrix())
}

// HitTestPoint reports whether a root-space point falls inside the clip's
// bounding box. Shape-accurate testing is not performed.
func (c *Clip) HitTestPoint(p Point) bool {
	return c.WorldBounds().Contains(p)
}

// --- Unload ---

// unload detaches the clip's dynamic content: children removed, drawing
// cleared, timeline reset to an empty single frame, content handle
// emptied.
func (c *Clip) unload() {
	for len(c.children) > 0 {
		c.removeChild(c.children[len(c.children)-1])
	}
	c.drawing.Clear()
	c.content = nil
	c.currentFrame = 0
	c.totalFrames = 1
	c.labels = nil
	c.playing = true
	c.loadedBytes = 0
}
