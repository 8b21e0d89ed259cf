package booking

import "sort"

// MarkConflicts sets HasConflict on every non-cancelled booking that overlaps another
// non-cancelled booking sharing its aircraft or instructor. Cancelled bookings are
// always cleared.
func MarkConflicts(bookings []*Booking) {
	active := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		b.HasConflict = false
		if b.Status != StatusCancelled {
			active = append(active, b)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime.Before(active[j].StartTime)
	})

	// Sweep: once a later booking starts at or after b ends, nothing further can overlap b.
	for i, b := range active {
		for _, o := range active[i+1:] {
			if !o.StartTime.Before(b.EndTime) {
				break
			}
			if sharesResource(b, o) && overlaps(b, o) {
				b.HasConflict = true
				o.HasConflict = true
			}
		}
	}
}

func overlaps(a, b *Booking) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}

func sharesResource(a, b *Booking) bool {
	if a.AircraftID == b.AircraftID {
		return true
	}
	return a.InstructorID != nil && b.InstructorID != nil && *a.InstructorID == *b.InstructorID
}
