package ruffle

import "testing"

func multiFrameClip(frames uint16) *Clip {
	return newClip(&ContentDef{
		Kind:       ContentSprite,
		FrameCount: frames,
	}, "clip")
}

func TestRunFrameFirstTick(t *testing.T) {
	c := multiFrameClip(5)
	if c.CurrentFrame() != 0 {
		t.Fatalf("fresh clip at frame %d, want 0", c.CurrentFrame())
	}
	c.RunFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("first tick landed on %d, want 1", c.CurrentFrame())
	}
}

func TestRunFrameAdvancesAndLoops(t *testing.T) {
	c := multiFrameClip(3)
	for i := 0; i < 3; i++ {
		c.RunFrame()
	}
	if c.CurrentFrame() != 3 {
		t.Fatalf("at frame %d after 3 ticks, want 3", c.CurrentFrame())
	}
	c.RunFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("loop landed on %d, want 1", c.CurrentFrame())
	}
}

func TestRunFrameSingleFrameDoesNotLoop(t *testing.T) {
	c := multiFrameClip(1)
	c.RunFrame()
	c.RunFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("single-frame clip at %d, want 1", c.CurrentFrame())
	}
}

func TestRunFrameStoppedHolds(t *testing.T) {
	c := multiFrameClip(5)
	c.RunFrame()
	c.Stop()
	c.RunFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("stopped clip advanced to %d", c.CurrentFrame())
	}
	c.Play()
	c.RunFrame()
	if c.CurrentFrame() != 2 {
		t.Errorf("resumed clip at %d, want 2", c.CurrentFrame())
	}
}

func TestGotoFrameClamps(t *testing.T) {
	c := multiFrameClip(5)
	c.GotoFrame(99, true)
	if c.CurrentFrame() != 5 {
		t.Errorf("past-end goto landed on %d, want 5", c.CurrentFrame())
	}
	if c.Playing() {
		t.Error("gotoAndStop left the clip playing")
	}
	c.GotoFrame(0, false)
	if c.CurrentFrame() != 1 {
		t.Errorf("frame-0 goto landed on %d, want 1", c.CurrentFrame())
	}
	if !c.Playing() {
		t.Error("gotoAndPlay left the clip stopped")
	}
}

func TestNextPrevFrameStopAtEnds(t *testing.T) {
	c := multiFrameClip(2)
	c.RunFrame()

	c.NextFrame()
	if c.CurrentFrame() != 2 || c.Playing() {
		t.Errorf("nextFrame: frame %d playing %v, want 2 stopped", c.CurrentFrame(), c.Playing())
	}
	c.NextFrame()
	if c.CurrentFrame() != 2 {
		t.Errorf("nextFrame at end moved to %d", c.CurrentFrame())
	}

	c.PrevFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("prevFrame: frame %d, want 1", c.CurrentFrame())
	}
	c.PrevFrame()
	if c.CurrentFrame() != 1 {
		t.Errorf("prevFrame at start moved to %d", c.CurrentFrame())
	}
}

func TestRunFrameTreeTicksChildren(t *testing.T) {
	root := newTestClip("_level0")
	child := multiFrameClip(4)
	root.addChildAtDepth(child, 1)
	child.RunFrame()

	runFrameTree(root)
	runFrameTree(root)
	if child.CurrentFrame() != 3 {
		t.Errorf("child at frame %d, want 3", child.CurrentFrame())
	}
}
