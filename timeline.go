package ruffle

// Timeline control. Each clip carries a 1-based frame cursor and a
// Playing/Stopped flag; the stage's frame tick advances playing clips.

// Playing reports whether the clip's timeline is advancing.
func (c *Clip) Playing() bool { return c.playing }

// CurrentFrame returns the 1-based frame cursor, or 0 before the first
// frame tick.
func (c *Clip) CurrentFrame() uint16 { return c.currentFrame }

// TotalFrames returns the timeline length in frames.
func (c *Clip) TotalFrames() uint16 { return c.totalFrames }

// FrameLabel resolves a label to its 1-based frame number.
func (c *Clip) FrameLabel(label string) (uint16, bool) {
	frame, ok := c.labels[label]
	return frame, ok
}

// Play puts the timeline in the Playing state.
func (c *Clip) Play() {
	c.playing = true
}

// Stop puts the timeline in the Stopped state.
func (c *Clip) Stop() {
	c.playing = false
}

// GotoFrame moves the cursor to the given 1-based frame and sets the
// play state from stop. Frames past the end clamp to the last frame;
// frame 0 clamps to 1.
func (c *Clip) GotoFrame(frame uint16, stop bool) {
	if frame < 1 {
		frame = 1
	}
	if c.totalFrames > 0 && frame > c.totalFrames {
		frame = c.totalFrames
	}
	c.currentFrame = frame
	c.playing = !stop
}

// NextFrame moves the cursor forward one frame and forces Stopped.
// At the last frame the cursor stays put.
func (c *Clip) NextFrame() {
	if c.currentFrame < c.totalFrames {
		c.GotoFrame(c.currentFrame+1, true)
	} else {
		c.playing = false
	}
}

// PrevFrame moves the cursor back one frame and forces Stopped.
// At the first frame the cursor stays put.
func (c *Clip) PrevFrame() {
	if c.currentFrame > 1 {
		c.GotoFrame(c.currentFrame-1, true)
	} else {
		c.playing = false
	}
}

// RunFrame advances the clip through one frame tick: a playing cursor
// moves forward, looping back to frame 1 past the end. A newly attached
// clip observes frame 1 synchronously because the mutator runs one tick
// immediately after instantiation.
func (c *Clip) RunFrame() {
	if c.currentFrame == 0 {
		c.currentFrame = 1
		return
	}
	if !c.playing {
		return
	}
	if c.currentFrame < c.totalFrames {
		c.currentFrame++
	} else if c.totalFrames > 1 {
		c.currentFrame = 1
	}
}

// runFrameTree ticks c and its whole subtree in depth order.
func runFrameTree(c *Clip) {
	c.RunFrame()
	for _, child := range c.children {
		runFrameTree(child)
	}
}
