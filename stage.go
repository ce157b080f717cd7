package ruffle

import "github.com/hajimehoshi/ebiten/v2"

// Stage owns the display tree, the drag session, and the load manager.
// All scripted operations and the frame tick run on one logical execution
// thread that owns the tree for the duration of a mutation; loads are the
// only asynchronous element and re-enter through Update.
type Stage struct {
	root    *Clip
	drag    *DragSession
	loads   *LoadManager
	pointer Point // in root-relative space
	debug   bool
	render  renderState
}

// NewStage creates a stage with an empty root clip. The root has no
// parent and is never removable.
func NewStage() *Stage {
	return &Stage{
		root:  newClip(nil, "_level0"),
		loads: NewLoadManager(),
	}
}

// Root returns the stage's root clip.
func (s *Stage) Root() *Clip {
	return s.root
}

// Loads returns the stage's load manager.
func (s *Stage) Loads() *LoadManager {
	return s.loads
}

// SetPointer positions the pointer in root-relative pixel coordinates.
// The drag session follows it on the next update.
func (s *Stage) SetPointer(x, y float64) {
	s.pointer = PointFromPixels(x, y)
}

// SetDebugMode enables per-frame debug logging of the stage tick.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update runs one frame tick: completed load effects re-enter the tree
// first, then every playing timeline advances one frame, then the drag
// session follows the pointer.
func (s *Stage) Update() {
	s.loads.ApplyCompleted()
	runFrameTree(s.root)
	s.updateDrag()
	if s.debug {
		logger().Debug("stage tick",
			"frame", s.root.CurrentFrame(),
			"children", s.root.NumChildren(),
			"dragging", s.drag != nil)
	}
}

// Game adapts a Stage to the ebiten game loop, feeding it the cursor
// position each frame. Script drivers hook in through OnUpdate, which
// runs after the stage tick.
type Game struct {
	Stage    *Stage
	OnUpdate func() error
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	x, y := ebiten.CursorPosition()
	g.Stage.SetPointer(float64(x), float64(y))
	g.Stage.Update()
	if g.OnUpdate != nil {
		return g.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Stage.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
