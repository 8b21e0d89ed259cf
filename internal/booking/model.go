package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/apperror"
	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "aircraft or instructor already booked for this time")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrResourceNotFound = apperror.New(http.StatusNotFound, "aircraft or instructor not found")
	ErrStartTimePast    = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidInput     = apperror.New(http.StatusBadRequest, "invalid input parameters")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a status coming from user input.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Booking is a flight lesson occupying one aircraft and optionally one instructor.
// HasConflict is computed by MarkConflicts and only drives rendering.
type Booking struct {
	ID           string
	AircraftID   string
	InstructorID *string
	StudentName  string
	StartTime    time.Time
	EndTime      time.Time
	Status       Status
	HasConflict  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// DurationHours is the booked duration in fractional hours. Negative spans count as negative.
func (b *Booking) DurationHours() float64 {
	return b.Duration().Hours()
}

// Occupies reports whether the booking uses the given resource.
func (b *Booking) Occupies(resourceID string, kind resource.Kind) bool {
	switch kind {
	case resource.KindAircraft:
		return b.AircraftID == resourceID
	case resource.KindInstructor:
		return b.InstructorID != nil && *b.InstructorID == resourceID
	default:
		return false
	}
}

type Filter struct {
	AircraftID   string
	InstructorID string
	Status       string
	StartTime    *time.Time // bookings ending after this time
	EndTime      *time.Time // bookings starting before this time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
