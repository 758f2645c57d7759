package reconcile

import (
	"fmt"
	"time"
)

// Default animation durations, used when Options leaves them zero.
const (
	DefaultInsertDuration = 220 * time.Millisecond
	DefaultRemoveDuration = 180 * time.Millisecond
)

// Options holds the collaborators and tuning for a Driver. Controller,
// List and Scroll are required; Trace is optional and receives one line per
// issued command.
type Options struct {
	Controller Controller
	List       AnimatedList
	Scroll     ScrollSurface
	LocalUser  string
	Renderer   ItemRenderer

	InsertDuration time.Duration
	RemoveDuration time.Duration
	Trace          func(format string, args ...any)
}

// Driver consumes ChangeEvents and issues ordered insert/remove commands to
// the animated list. It retains exactly one snapshot, the last reconciled
// list, replaced after each successful event. Apply must not be called
// concurrently: the retained snapshot is read-then-written by every event,
// and interleaving two reconciliations would corrupt the logical-to-visual
// mapping.
type Driver struct {
	opts    Options
	tracker *Tracker
	snap    []Item
}

// New creates a driver seeded from the controller's current list.
func New(opts Options) *Driver {
	if opts.InsertDuration <= 0 {
		opts.InsertDuration = DefaultInsertDuration
	}
	if opts.RemoveDuration <= 0 {
		opts.RemoveDuration = DefaultRemoveDuration
	}
	return &Driver{
		opts:    opts,
		tracker: NewTracker(opts.Scroll, opts.LocalUser),
		snap:    snapshot(opts.Controller.Items()),
	}
}

// Tracker exposes the scroll intent tracker so the hosting view can feed it
// scroll notifications and read the autoscroll decision.
func (d *Driver) Tracker() *Tracker { return d.tracker }

// Snapshot returns a copy of the last reconciled list.
func (d *Driver) Snapshot() []Item { return snapshot(d.snap) }

// Apply reconciles one change event. A non-nil error means the visual list
// can no longer be trusted to match the authoritative one; callers should
// fail fast rather than continue with a silently inconsistent view.
func (d *Driver) Apply(ev ChangeEvent) error {
	switch ev.Kind {
	case EventNone:
		return nil
	case EventInsert:
		return d.applyInsert(ev)
	case EventRemove:
		return d.applyRemove(ev)
	case EventReplace:
		return d.applyReplace()
	}
	return fmt.Errorf("%w: unknown event kind %d", ErrContract, ev.Kind)
}

func (d *Driver) applyInsert(ev ChangeEvent) error {
	if ev.Item == nil {
		return fmt.Errorf("%w: insert event without item", ErrContract)
	}
	if ev.Index < 0 || ev.Index > len(d.snap) {
		return fmt.Errorf("%w: insert index %d against snapshot of %d", ErrContract, ev.Index, len(d.snap))
	}
	d.tracker.NoteInsert(ev.Item.SenderID())
	d.insert(ev.Index, len(d.snap))
	d.snap = snapshot(d.opts.Controller.Items())
	return nil
}

func (d *Driver) applyRemove(ev ChangeEvent) error {
	if ev.Item == nil {
		return fmt.Errorf("%w: remove event without item", ErrContract)
	}
	if ev.Index < 0 || ev.Index >= len(d.snap) {
		return fmt.Errorf("%w: remove index %d against snapshot of %d", ErrContract, ev.Index, len(d.snap))
	}
	if got := d.snap[ev.Index].ID(); got != ev.Item.ID() {
		return fmt.Errorf("%w: remove of %q at index %d, snapshot holds %q", ErrContract, ev.Item.ID(), ev.Index, got)
	}
	d.remove(ev.Index, len(d.snap), ev.Item)
	d.snap = snapshot(d.opts.Controller.Items())
	return nil
}

func (d *Driver) applyReplace() error {
	next := snapshot(d.opts.Controller.Items())
	if err := d.applyScript(Diff(d.snap, next), len(d.snap)); err != nil {
		return err
	}
	d.snap = next
	return nil
}

// applyScript walks the edit script back to front: applying positions high
// to low means no op can shift the target slot of one still pending. cur is
// the list length before the script, tracked as each command takes effect.
func (d *Driver) applyScript(ops []EditOp, cur int) error {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		switch op.Kind {
		case OpInsert:
			d.insert(op.Pos, cur)
			cur++
		case OpRemove:
			d.remove(op.Pos, cur, op.OldItem)
			cur--
		case OpChange:
			// No native replace animation exists: retire the old item,
			// then insert the new one as two independently-timed commands.
			d.remove(op.Pos, cur, op.OldItem)
			cur--
			d.insert(op.Pos, cur)
			cur++
		case OpMove:
			return fmt.Errorf("%w: item %q", ErrMoveUnsupported, op.OldItem.ID())
		}
	}
	return nil
}

func (d *Driver) insert(pos, length int) {
	v := VisualInsertSlot(pos, length)
	d.trace("insert logical %d -> visual %d (len %d)", pos, v, length)
	d.opts.List.InsertAt(v, d.opts.InsertDuration)
}

func (d *Driver) remove(pos, length int, it Item) {
	v := VisualIndex(pos, length)
	d.trace("remove %q logical %d -> visual %d (len %d)", it.ID(), pos, v, length)
	d.opts.List.RemoveAt(v, d.removal(it), d.opts.RemoveDuration)
}

// removal captures the outgoing item so the primitive can keep rendering it
// for the duration of the removal animation.
func (d *Driver) removal(it Item) RemovalRenderer {
	render := d.opts.Renderer
	if render == nil {
		return func(float64) string { return "" }
	}
	return func(progress float64) string {
		return render(it, progress, true)
	}
}

func (d *Driver) trace(format string, args ...any) {
	if d.opts.Trace != nil {
		d.opts.Trace(format, args...)
	}
}

func snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
