package reconcile

// Direction classifies a scroll notification relative to the live edge.
type Direction int

const (
	// DirToEdge is movement toward the newest content.
	DirToEdge Direction = iota
	// DirAway is movement into history, away from the live edge.
	DirAway
)

// Tracker decides whether an insertion may pull the view to the live edge.
// A reader browsing history must not be yanked to the newest message by a
// remote insert, but the author of a message always sees it appear.
type Tracker struct {
	surface ScrollSurface
	local   string
	away    bool
}

// NewTracker creates a tracker resting at the live edge.
func NewTracker(surface ScrollSurface, localUser string) *Tracker {
	return &Tracker{surface: surface, local: localUser}
}

// NotifyScroll records a scroll notification from the surface. Resting at
// the live edge clears the flag regardless of direction.
func (t *Tracker) NotifyScroll(dir Direction) {
	if t.atEdge() {
		t.away = false
		return
	}
	if dir == DirAway {
		t.away = true
	}
}

// NoteInsert updates the flag for an insertion by the given sender. A local
// send always re-arms the live edge, as does a remote insert arriving while
// the view already rests there.
func (t *Tracker) NoteInsert(senderID string) {
	if senderID == t.local {
		t.away = false
		return
	}
	if t.away && t.atEdge() {
		t.away = false
	}
}

// AwayFromEdge reports whether the user has scrolled into history. While
// true, inserts must preserve the current offset instead of revealing at
// the live edge.
func (t *Tracker) AwayFromEdge() bool { return t.away }

func (t *Tracker) atEdge() bool {
	return t.surface.Offset() >= t.surface.MaxExtent()
}
