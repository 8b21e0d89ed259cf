package unavailability

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// Oracle answers whether a resource is bookable at a slot. It is built from a
// read-only snapshot of periods and is never mutated afterwards.
type Oracle struct {
	slots      *timeslot.Index
	byResource map[resource.Key][]Period
}

// NewOracle indexes periods by resource. Input order is preserved per resource
// and decides which period At reports when several overlap.
func NewOracle(slots *timeslot.Index, periods []Period) *Oracle {
	byResource := make(map[resource.Key][]Period)
	for _, p := range periods {
		byResource[p.Key()] = append(byResource[p.Key()], p)
	}
	return &Oracle{slots: slots, byResource: byResource}
}

// IsUnavailable reports whether any period of the resource covers the slot's clock time on date.
func (o *Oracle) IsUnavailable(resourceID string, kind resource.Kind, slot timeslot.Slot, date time.Time) bool {
	_, ok := o.At(resourceID, kind, slot, date)
	return ok
}

// At returns the first matching period in input order.
func (o *Oracle) At(resourceID string, kind resource.Kind, slot timeslot.Slot, date time.Time) (Period, bool) {
	if !o.slots.Valid(slot) {
		return Period{}, false
	}
	at := o.slots.At(date, slot)
	for _, p := range o.byResource[resource.Key{ID: resourceID, Kind: kind}] {
		if p.Contains(at) {
			return p, true
		}
	}
	return Period{}, false
}

// AllAt returns every matching period in input order.
func (o *Oracle) AllAt(resourceID string, kind resource.Kind, slot timeslot.Slot, date time.Time) []Period {
	if !o.slots.Valid(slot) {
		return nil
	}
	at := o.slots.At(date, slot)
	var out []Period
	for _, p := range o.byResource[resource.Key{ID: resourceID, Kind: kind}] {
		if p.Contains(at) {
			out = append(out, p)
		}
	}
	return out
}

// Periods returns the periods registered for a resource.
func (o *Oracle) Periods(key resource.Key) []Period {
	return o.byResource[key]
}
