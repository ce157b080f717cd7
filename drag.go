package ruffle

// DragSession is the single process-wide record of which clip currently
// follows pointer input. At most one session exists per stage; starting a
// new one discards the old one unconditionally, and stopping clears it
// regardless of which clip asks.
type DragSession struct {
	clip       *Clip
	lockCenter bool
	constraint *Bounds // in the dragged clip's parent space, nil = unconstrained
	offset     Point   // grab offset from the clip's position to the pointer
}

// Clip returns the dragged clip.
func (d *DragSession) Clip() *Clip { return d.clip }

// StartDrag begins a drag session for the given clip, replacing any prior
// session. With lockCenter the clip's position snaps to the pointer;
// otherwise the grab offset at start time is preserved. A non-nil
// constraint confines the clip's position, in its parent's space.
func (s *Stage) StartDrag(clip *Clip, lockCenter bool, constraint *Bounds) {
	d := &DragSession{clip: clip, lockCenter: lockCenter, constraint: constraint}
	if !lockCenter {
		local := s.pointerInParent(clip)
		d.offset = Point{local.X - clip.matrix.TX, local.Y - clip.matrix.TY}
	}
	s.drag = d
}

// StopDrag clears the active drag session. It is not clip-scoped: any
// caller stops whatever drag is active.
func (s *Stage) StopDrag() {
	s.drag = nil
}

// Drag returns the active drag session, or nil.
func (s *Stage) Drag() *DragSession { return s.drag }

// pointerInParent converts the stage pointer into clip's parent space.
func (s *Stage) pointerInParent(clip *Clip) Point {
	if clip.parent == nil {
		return s.pointer
	}
	return clip.parent.GlobalToLocal(s.pointer)
}

// updateDrag moves the dragged clip to follow the pointer. The session is
// dropped when its clip has been removed from the tree in the interim.
func (s *Stage) updateDrag() {
	d := s.drag
	if d == nil {
		return
	}
	if d.clip.removed {
		s.drag = nil
		return
	}
	pos := s.pointerInParent(d.clip)
	if !d.lockCenter {
		pos.X -= d.offset.X
		pos.Y -= d.offset.Y
	}
	if r := d.constraint; r != nil && r.Valid {
		if pos.X < r.XMin {
			pos.X = r.XMin
		}
		if pos.X > r.XMax {
			pos.X = r.XMax
		}
		if pos.Y < r.YMin {
			pos.Y = r.YMin
		}
		if pos.Y > r.YMax {
			pos.Y = r.YMax
		}
	}
	d.clip.matrix.TX = pos.X
	d.clip.matrix.TY = pos.Y
}
