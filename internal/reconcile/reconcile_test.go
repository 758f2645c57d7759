package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// testItem is a minimal Item for exercising the reconciler.
type testItem struct {
	id     string
	sender string
	body   string
}

func (t testItem) ID() string       { return t.id }
func (t testItem) SenderID() string { return t.sender }
func (t testItem) Equal(other Item) bool {
	o, ok := other.(testItem)
	return ok && t.id == o.id && t.body == o.body
}

// items builds a list from "id" or "id:body" specs; body defaults to id.
func items(specs ...string) []Item {
	out := make([]Item, len(specs))
	for i, s := range specs {
		id, body, ok := strings.Cut(s, ":")
		if !ok {
			body = id
		}
		out[i] = testItem{id: id, sender: "remote", body: body}
	}
	return out
}

func ids(list []Item) string {
	parts := make([]string, len(list))
	for i, it := range list {
		parts[i] = it.ID()
	}
	return strings.Join(parts, ",")
}

// fakeController serves a settable item list.
type fakeController struct{ list []Item }

func (c *fakeController) Items() []Item { return c.list }

// fakeSurface is a scroll surface with settable metrics.
type fakeSurface struct{ offset, max int }

func (s *fakeSurface) Offset() int    { return s.offset }
func (s *fakeSurface) MaxExtent() int { return s.max }

// fakeList plays the animated-list primitive: it applies each command to a
// visual slice (slot 0 = newest) and records the command log. Inserted
// slots hold the hole marker until resolved, mirroring the real primitive's
// lazy item lookup; removed slots are checked against the item the driver
// meant to retire, via the removal renderer.
type fakeList struct {
	slots []string
	calls []string
	errs  []string
}

const hole = "_"

func newFakeList(old []Item) *fakeList {
	f := &fakeList{}
	for i := len(old) - 1; i >= 0; i-- {
		f.slots = append(f.slots, old[i].ID())
	}
	return f
}

func (f *fakeList) InsertAt(v int, _ time.Duration) {
	f.calls = append(f.calls, fmt.Sprintf("insert@%d", v))
	if v < 0 || v > len(f.slots) {
		f.errs = append(f.errs, fmt.Sprintf("insert slot %d outside [0,%d]", v, len(f.slots)))
		return
	}
	f.slots = append(f.slots[:v], append([]string{hole}, f.slots[v:]...)...)
}

func (f *fakeList) RemoveAt(v int, render RemovalRenderer, _ time.Duration) {
	f.calls = append(f.calls, fmt.Sprintf("remove@%d", v))
	if v < 0 || v >= len(f.slots) {
		f.errs = append(f.errs, fmt.Sprintf("remove slot %d outside [0,%d)", v, len(f.slots)))
		return
	}
	if want := render(0); f.slots[v] != want {
		f.errs = append(f.errs, fmt.Sprintf("remove slot %d holds %q, driver meant %q", v, f.slots[v], want))
	}
	f.slots = append(f.slots[:v], f.slots[v+1:]...)
}

// check verifies the visual slice matches the expected list once holes are
// resolved positionally, the way the primitive resolves live slots.
func (f *fakeList) check(want []Item) error {
	if len(f.errs) > 0 {
		return fmt.Errorf("%s", strings.Join(f.errs, "; "))
	}
	if len(f.slots) != len(want) {
		return fmt.Errorf("ended with %d slots, want %d (%v)", len(f.slots), len(want), f.slots)
	}
	for v, got := range f.slots {
		expect := want[len(want)-1-v].ID()
		if got != hole && got != expect {
			return fmt.Errorf("slot %d holds %q, want %q (%v)", v, got, expect, f.slots)
		}
	}
	return nil
}

// renderID is an ItemRenderer that exposes the item identity, letting the
// fake list verify which item a removal command targeted.
func renderID(it Item, _ float64, _ bool) string { return it.ID() }
