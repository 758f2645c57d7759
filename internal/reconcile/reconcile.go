// Package reconcile turns coarse mutations of an ordered message list into
// a minimal sequence of per-item insert/remove animation commands against a
// reverse-rendered list view (visual slot 0 = newest message).
//
// The package is a pure library: the authoritative list, the animated list
// primitive and the scrollable surface are injected as interfaces, and all
// position arithmetic is synchronous. Events must be delivered one at a
// time, in arrival order; the bubbletea update loop provides exactly that.
package reconcile

import (
	"errors"
	"time"
)

// Item is one entry in the feed. Items are owned by the list controller;
// the reconciler only holds snapshot references and never mutates them.
type Item interface {
	// ID identifies the same logical message across snapshots.
	ID() string
	// SenderID names the author, compared against the local user to decide
	// whether an insertion may reveal at the live edge.
	SenderID() string
	// Equal reports content equality with another snapshot of an item.
	Equal(other Item) bool
}

// Controller owns the authoritative ordered list, oldest first.
type Controller interface {
	Items() []Item
}

// ItemRenderer builds the terminal representation of an item. progress is
// the animation progress in [0, 1]; removing is true while the item
// animates out.
type ItemRenderer func(item Item, progress float64, removing bool) string

// RemovalRenderer renders an outgoing item for the duration of its removal
// animation. The item is captured in the closure because the authoritative
// list no longer contains it by the time the animation runs.
type RemovalRenderer func(progress float64) string

// AnimatedList is the rendering primitive driven by the reconciler. Both
// calls are fire-and-forget commands: the reconciler only guarantees they
// are issued in the right order with the right target slot; the primitive
// serializes structural mutations against its own in-flight animations.
type AnimatedList interface {
	InsertAt(visual int, d time.Duration)
	RemoveAt(visual int, render RemovalRenderer, d time.Duration)
}

// ScrollSurface exposes the metrics of the scrollable view hosting the
// list. Offset equal to MaxExtent means the view rests at the live edge.
type ScrollSurface interface {
	Offset() int
	MaxExtent() int
}

// EventKind tags a ChangeEvent.
type EventKind int

const (
	EventNone EventKind = iota
	EventInsert
	EventRemove
	EventReplace
)

// ChangeEvent describes one mutation of the authoritative list. Insert and
// Remove always carry both Index and Item; that is a contract with the
// producer, not a runtime condition. Replace carries neither and triggers a
// full-snapshot diff.
type ChangeEvent struct {
	Kind  EventKind
	Index int
	Item  Item
}

var (
	// ErrContract reports an event that breaks the producer contract:
	// missing item, index outside the retained snapshot, or an item whose
	// identity does not match the snapshot at its index.
	ErrContract = errors.New("reconcile: change event violates producer contract")

	// ErrMoveUnsupported reports a Move edit op. Reordering is out of
	// scope; a move must surface loudly instead of animating best-effort.
	ErrMoveUnsupported = errors.New("reconcile: move ops are not supported")
)
