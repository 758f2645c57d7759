package reconcile

// OpKind tags an EditOp.
type OpKind int

const (
	OpInsert OpKind = iota
	OpRemove
	OpChange
	// OpMove is never produced by Diff; it exists so the Driver can reject
	// scripts from sources that do detect moves.
	OpMove
)

// EditOp is one step of the edit script between two snapshots. Pos is a
// position in the old snapshot: for Remove and Change it names the affected
// item, for Insert it is the anchor, the old index the new item lands in
// front of (len(old) for an append). NewItem is set for Insert and Change,
// OldItem for Remove and Change.
type EditOp struct {
	Kind    OpKind
	Pos     int
	OldItem Item
	NewItem Item
}

// Diff computes the edit script turning old into new. Items are matched
// across snapshots by identity; a matched pair with unequal content becomes
// a Change. The script is ordered front to back; the Driver walks it back
// to front, so an applied op never shifts the target slot of one still
// pending. Reordering between snapshots is not representable and yields a
// script that fails the round-trip; producers must not reorder.
//
// The matched prefix and suffix are trimmed first, so the usual deltas
// (appends, prepends, single edits) cost linear time. The remaining window
// goes through an LCS table, quadratic in the window size.
func Diff(old, new []Item) []EditOp {
	lo := 0
	for lo < len(old) && lo < len(new) && old[lo].ID() == new[lo].ID() {
		lo++
	}
	oldHi, newHi := len(old), len(new)
	for oldHi > lo && newHi > lo && old[oldHi-1].ID() == new[newHi-1].ID() {
		oldHi--
		newHi--
	}

	var ops []EditOp
	for i := 0; i < lo; i++ {
		if !old[i].Equal(new[i]) {
			ops = append(ops, EditOp{Kind: OpChange, Pos: i, OldItem: old[i], NewItem: new[i]})
		}
	}

	ops = append(ops, diffWindow(old[lo:oldHi], new[lo:newHi], lo)...)

	for i := 0; oldHi+i < len(old); i++ {
		if !old[oldHi+i].Equal(new[newHi+i]) {
			ops = append(ops, EditOp{Kind: OpChange, Pos: oldHi + i, OldItem: old[oldHi+i], NewItem: new[newHi+i]})
		}
	}
	return ops
}

// diffWindow runs the LCS alignment over the untrimmed middle window. base
// is the window's offset into the old snapshot.
func diffWindow(old, new []Item, base int) []EditOp {
	m, n := len(old), len(new)
	if m == 0 && n == 0 {
		return nil
	}

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if old[i-1].ID() == new[j-1].ID() {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	// Backtrack from the end; ops come out back to front.
	var rev []EditOp
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && old[i-1].ID() == new[j-1].ID():
			if !old[i-1].Equal(new[j-1]) {
				rev = append(rev, EditOp{Kind: OpChange, Pos: base + i - 1, OldItem: old[i-1], NewItem: new[j-1]})
			}
			i--
			j--
		case j > 0 && (i == 0 || table[i][j-1] >= table[i-1][j]):
			rev = append(rev, EditOp{Kind: OpInsert, Pos: base + i, NewItem: new[j-1]})
			j--
		default:
			rev = append(rev, EditOp{Kind: OpRemove, Pos: base + i - 1, OldItem: old[i-1]})
			i--
		}
	}

	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}
	return rev
}
