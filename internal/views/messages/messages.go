// Package messages implements the animated message feed: a reverse-rendered
// list (visual slot 0 = newest) whose insertions and removals animate on a
// spring clock, independently of the authoritative list that drives them.
//
// The reconcile driver addresses live slots only. A slot being removed stays
// in the layout until its collapse settles, so the package keeps its own
// bookkeeping to translate live visual indices to layout positions; that
// translation is what keeps overlapping animations from corrupting each
// other's targets.
package messages

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/ripple-chat/tui/internal/reconcile"
)

const (
	fps       = 60
	settleEps = 0.001
)

const frameInterval = time.Second / fps

// Source resolves the item at a live visual slot (0 = newest). It reads the
// authoritative list, so by the time a frame renders, the list already
// reflects every command issued so far.
type Source func(visual int) reconcile.Item

// FrameMsg advances in-flight animations.
type FrameMsg time.Time

// Frame schedules the next animation frame.
func Frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// slot is one layout entry. pos is the animation progress in [0, 1]: a slot
// grows toward 1 while revealing and collapses toward 0 while removing.
type slot struct {
	removing bool
	render   reconcile.RemovalRenderer // set while removing
	spring   harmonica.Spring
	pos, vel float64
	target   float64
}

func (s *slot) settled() bool {
	return math.Abs(s.pos-s.target) < settleEps && math.Abs(s.vel) < settleEps
}

// Model is the animated feed view. It implements reconcile.AnimatedList.
type Model struct {
	slots   []*slot // layout order: index 0 = newest
	source  Source
	render  reconcile.ItemRenderer
	running bool
}

// New creates an empty feed backed by the given item source and renderer.
func New(source Source, render reconcile.ItemRenderer) *Model {
	return &Model{source: source, render: render}
}

// InsertAt implements reconcile.AnimatedList: a new slot appears at the
// given live visual position and grows in.
func (m *Model) InsertAt(visual int, d time.Duration) {
	idx := m.layoutIndex(visual)
	s := &slot{spring: springFor(d), target: 1}
	m.slots = append(m.slots, nil)
	copy(m.slots[idx+1:], m.slots[idx:])
	m.slots[idx] = s
}

// RemoveAt implements reconcile.AnimatedList: the slot at the given live
// visual position collapses, rendering through the supplied removal
// renderer until it settles. Out-of-range positions clamp to the nearest
// live slot; with no live slots the command is dropped.
func (m *Model) RemoveAt(visual int, render reconcile.RemovalRenderer, d time.Duration) {
	idx, ok := m.liveSlot(visual)
	if !ok {
		return
	}
	s := m.slots[idx]
	s.removing = true
	s.render = render
	s.spring = springFor(d)
	s.target = 0
}

// Update advances animations on FrameMsg, returning the command that keeps
// the clock running while anything is in flight.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(FrameMsg); !ok {
		return nil
	}
	m.step()
	if m.Animating() {
		return Frame()
	}
	m.running = false
	return nil
}

// StartClock returns a Frame command unless the clock already runs or
// nothing animates.
func (m *Model) StartClock() tea.Cmd {
	if m.running || !m.Animating() {
		return nil
	}
	m.running = true
	return Frame()
}

// Animating reports whether any slot is still in flight.
func (m *Model) Animating() bool {
	for _, s := range m.slots {
		if !s.settled() {
			return true
		}
	}
	return false
}

// LiveCount returns the number of slots the driver can address.
func (m *Model) LiveCount() int {
	n := 0
	for _, s := range m.slots {
		if !s.removing {
			n++
		}
	}
	return n
}

// View renders the feed, oldest at the top. In-flight slots are clipped to
// their current progress.
func (m *Model) View() string {
	var b strings.Builder
	live := m.LiveCount()
	seen := 0
	for i := len(m.slots) - 1; i >= 0; i-- {
		s := m.slots[i]
		var content string
		if s.removing {
			content = s.render(s.pos)
		} else {
			seen++
			it := m.source(live - seen)
			if it == nil {
				continue
			}
			content = m.render(it, s.pos, false)
		}
		content = reveal(content, s.pos)
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(content)
	}
	return b.String()
}

func (m *Model) step() {
	kept := m.slots[:0]
	for _, s := range m.slots {
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
		if s.settled() {
			s.pos, s.vel = s.target, 0
			if s.removing {
				continue // collapse finished, slot leaves the layout
			}
		}
		kept = append(kept, s)
	}
	m.slots = kept
}

// layoutIndex maps a live visual position to a layout index for insertion.
// Positions at or past the live count append after the last slot.
func (m *Model) layoutIndex(visual int) int {
	if visual < 0 {
		visual = 0
	}
	live := 0
	for i, s := range m.slots {
		if s.removing {
			continue
		}
		if live == visual {
			return i
		}
		live++
	}
	return len(m.slots)
}

// liveSlot maps a live visual position to the layout index of that slot,
// clamping into range.
func (m *Model) liveSlot(visual int) (int, bool) {
	last := -1
	live := 0
	for i, s := range m.slots {
		if s.removing {
			continue
		}
		if live == visual {
			return i, true
		}
		last = i
		live++
	}
	if last == -1 {
		return 0, false
	}
	return last, true
}

// reveal clips content to the share of lines the animation has reached.
func reveal(content string, progress float64) string {
	if progress >= 1-settleEps {
		return content
	}
	if progress <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	n := int(progress*float64(len(lines)) + 0.5)
	if n <= 0 {
		return ""
	}
	if n >= len(lines) {
		return content
	}
	return strings.Join(lines[:n], "\n")
}

// springFor sizes a critically damped spring so the animation settles on
// the order of the requested duration.
func springFor(d time.Duration) harmonica.Spring {
	if d <= 0 {
		d = reconcile.DefaultInsertDuration
	}
	return harmonica.NewSpring(harmonica.FPS(fps), 2*math.Pi/d.Seconds(), 1.0)
}
