package resource

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "resource not found")
	ErrInvalidKind = apperror.New(http.StatusBadRequest, "resource kind must be aircraft or instructor")
)

// Kind distinguishes the two interchangeable resource families shown on the grid.
type Kind string

const (
	KindAircraft   Kind = "aircraft"
	KindInstructor Kind = "instructor"
)

// ParseKind validates a kind coming from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAircraft, KindInstructor:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

// Status is the operational status shown next to a resource name.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusInactive    Status = "inactive"
)

// Resource is a bookable aircraft or instructor. It is read-only to the scheduler.
type Resource struct {
	ID        string
	Kind      Kind
	Name      string
	Status    Status
	CreatedAt time.Time
}

// Key returns the identity used to match bookings and unavailability.
func (r *Resource) Key() Key {
	return Key{ID: r.ID, Kind: r.Kind}
}

// Key identifies a resource across both kinds. IDs are only unique within a kind.
type Key struct {
	ID   string
	Kind Kind
}

// Filter defines parameters for listing resources.
type Filter struct {
	Kind      Kind
	IDs       []string
	Status    Status
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
