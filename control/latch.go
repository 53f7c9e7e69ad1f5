package control

// Latch turns a level (e.g. whether a button is held down) into an edge, so an
// action happens once per press rather than once per frame.
type Latch struct {
	val bool
}

// Run returns true only if v is true and was false last time.
func (l *Latch) Run(v bool) bool {
	r := v && !l.val
	l.val = v
	return r
}
