// Package drag turns a press, drag, release gesture over grid cells into a
// committed time range on one resource and day.
package drag

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// NoDay is the day index used by views without a day axis.
const NoDay = -1

type State int

const (
	Idle State = iota
	Anchored
	Extending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Anchored:
		return "anchored"
	case Extending:
		return "extending"
	default:
		return "unknown"
	}
}

// Key is the column a gesture is pinned to.
type Key struct {
	ResourceID   string
	ResourceKind resource.Kind
	DayIndex     int
}

// Selection is the active gesture.
type Selection struct {
	Key     Key
	Anchor  timeslot.Slot
	Current timeslot.Slot
}

// Bounds returns the inclusive slot range covered by the selection.
func (s Selection) Bounds() (low, high timeslot.Slot) {
	low, high = s.Anchor, s.Current
	if low > high {
		low, high = high, low
	}
	return low, high
}

// Commit is the booking-creation request emitted on release. StartAt and EndAt
// are StartTime and EndTime placed on Date.
type Commit struct {
	Date         time.Time
	StartTime    timeslot.Clock
	EndTime      timeslot.Clock
	StartAt      time.Time
	EndAt        time.Time
	ResourceID   string
	ResourceKind resource.Kind
	DayIndex     int
}

// Guard reports whether a cell refuses to start a gesture.
type Guard func(slot timeslot.Slot, key Key) bool

// Controller holds at most one gesture. It is not safe for concurrent use.
type Controller struct {
	slots   *timeslot.Index
	blocked Guard
	state   State
	sel     Selection
}

// New returns an idle controller. A nil guard accepts every cell.
func New(slots *timeslot.Index, blocked Guard) *Controller {
	if blocked == nil {
		blocked = func(timeslot.Slot, Key) bool { return false }
	}
	return &Controller{slots: slots, blocked: blocked}
}

func (c *Controller) State() State { return c.state }

// Selection returns the active gesture, if any.
func (c *Controller) Selection() (Selection, bool) {
	if c.state == Idle {
		return Selection{}, false
	}
	return c.sel, true
}

// PointerDown anchors a new gesture. It is rejected on blocked or out-of-range cells.
// A gesture left open by a missing release is replaced.
func (c *Controller) PointerDown(slot timeslot.Slot, key Key) bool {
	if !c.slots.Valid(slot) || c.blocked(slot, key) {
		return false
	}
	c.sel = Selection{Key: key, Anchor: slot, Current: slot}
	c.state = Anchored
	return true
}

// PointerEnter extends the gesture when key matches the anchored column exactly.
func (c *Controller) PointerEnter(slot timeslot.Slot, key Key) bool {
	if c.state == Idle || key != c.sel.Key || !c.slots.Valid(slot) {
		return false
	}
	c.sel.Current = slot
	c.state = Extending
	return true
}

// PointerUp ends the gesture. When one was active it returns the selected range,
// with the end one slot past the highest selected slot.
func (c *Controller) PointerUp(date time.Time) (Commit, bool) {
	if c.state == Idle {
		return Commit{}, false
	}
	sel := c.sel
	c.reset()

	low, high := sel.Bounds()
	return Commit{
		Date:         c.slots.Midnight(date),
		StartTime:    c.slots.TimeOf(low),
		EndTime:      c.slots.TimeOf(high + 1),
		StartAt:      c.slots.At(date, low),
		EndAt:        c.slots.At(date, high+1),
		ResourceID:   sel.Key.ResourceID,
		ResourceKind: sel.Key.ResourceKind,
		DayIndex:     sel.Key.DayIndex,
	}, true
}

// Escape drops the gesture without emitting anything.
func (c *Controller) Escape() {
	c.reset()
}

// InRange reports whether slot is highlighted by the active gesture.
func (c *Controller) InRange(slot timeslot.Slot, key Key) bool {
	if c.state == Idle || key != c.sel.Key {
		return false
	}
	low, high := c.sel.Bounds()
	return slot >= low && slot <= high
}

func (c *Controller) reset() {
	c.state = Idle
	c.sel = Selection{}
}
