package annotation

// BoxCapture tracks the rectangle being dragged. The zero value is idle and usable.
type BoxCapture struct {
	active  bool
	anchor  Point
	current Point
}

// Begin anchors a new candidate at p, discarding any unfinished one.
func (c *BoxCapture) Begin(p Point) {
	c.active = true
	c.anchor = p
	c.current = p
}

// Update moves the opposite corner. Ignored while idle.
func (c *BoxCapture) Update(p Point) {
	if !c.active {
		return
	}
	c.current = p
}

// Finalize closes the drag at p and returns the normalized box.
// ok is false when no drag was in progress.
func (c *BoxCapture) Finalize(p Point) (r Rectangle, ok bool) {
	if !c.active {
		return Rectangle{}, false
	}
	r = NormalizeRect(c.anchor, p)
	c.Cancel()
	return r, true
}

// Candidate returns the in-progress box for rubber-band feedback.
func (c *BoxCapture) Candidate() (Rectangle, bool) {
	if !c.active {
		return Rectangle{}, false
	}
	return NormalizeRect(c.anchor, c.current), true
}

// Active reports whether a drag is in progress.
func (c *BoxCapture) Active() bool { return c.active }

// Cancel drops the in-progress candidate.
func (c *BoxCapture) Cancel() { *c = BoxCapture{} }
