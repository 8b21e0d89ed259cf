package http

import (
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/booking"
	"github.com/nekogravitycat/flight-schedule-grid/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	AircraftID   string     `form:"aircraft_id" binding:"omitempty,uuid"`
	InstructorID string     `form:"instructor_id" binding:"omitempty,uuid"`
	Status       string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	From         *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To           *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy       string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type BookingResponse struct {
	ID           string    `json:"id"`
	AircraftID   string    `json:"aircraft_id"`
	InstructorID *string   `json:"instructor_id"`
	StudentName  string    `json:"student_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	HasConflict  bool      `json:"has_conflict"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		AircraftID:   b.AircraftID,
		InstructorID: b.InstructorID,
		StudentName:  b.StudentName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(b.Status),
		HasConflict:  b.HasConflict,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	AircraftID   string    `json:"aircraft_id" binding:"required,uuid"`
	InstructorID *string   `json:"instructor_id" binding:"omitempty,uuid"`
	StudentName  string    `json:"student_name" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.EndTime.After(r.StartTime) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}
