package unavailability

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

// Pattern is the render hint for a blocked cell.
type Pattern string

const (
	PatternDiagonal Pattern = "diagonal"
	PatternSolid    Pattern = "solid"
)

// Period is a half-open interval [StartTime, EndTime) during which a resource cannot be booked.
type Period struct {
	ID           string
	ResourceID   string
	ResourceKind resource.Kind
	StartTime    time.Time
	EndTime      time.Time
	Reason       string
	Pattern      Pattern
}

// Key returns the resource the period blocks.
func (p Period) Key() resource.Key {
	return resource.Key{ID: p.ResourceID, Kind: p.ResourceKind}
}

// Contains reports whether t falls inside [StartTime, EndTime).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.StartTime) && t.Before(p.EndTime)
}

// Overlaps reports whether the period intersects [from, to).
func (p Period) Overlaps(from, to time.Time) bool {
	return p.StartTime.Before(to) && from.Before(p.EndTime)
}
