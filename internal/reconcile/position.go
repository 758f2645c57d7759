package reconcile

// VisualIndex maps a chronological index to its slot in the reverse-rendered
// view, clamped to [0, n-1]. The oldest item (logical 0) sits at the
// bottom-most slot n-1, the newest at slot 0.
func VisualIndex(logical, n int) int {
	if n <= 0 {
		return 0
	}
	v := n - 1 - logical
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}

// VisualInsertSlot maps the chronological position of an incoming item to
// the slot it will occupy, computed against the pre-insertion length: the
// view has not grown yet when the insert command is issued, so appending to
// a list of n (logical n) lands at slot 0.
func VisualInsertSlot(logical, n int) int {
	if v := n - logical; v > 0 {
		return v
	}
	return 0
}
