package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

type CreateRequest struct {
	AircraftID   string
	InstructorID *string
	StudentName  string
	StartTime    time.Time
	EndTime      time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	// List returns the bookings matching filter with HasConflict recomputed over the result.
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo       Repository
	resService resource.Service
	now        func() time.Time
}

func NewService(repo Repository, resService resource.Service) Service {
	return &service{
		repo:       repo,
		resService: resService,
		now:        time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate Input
	if req.AircraftID == "" || strings.TrimSpace(req.StudentName) == "" {
		return nil, ErrInvalidInput
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.StartTime.Before(s.now()) {
		return nil, ErrStartTimePast
	}

	// 2. Validate Resources Exist
	if err := s.checkResource(ctx, resource.KindAircraft, req.AircraftID); err != nil {
		return nil, err
	}
	if req.InstructorID != nil {
		if err := s.checkResource(ctx, resource.KindInstructor, *req.InstructorID); err != nil {
			return nil, err
		}
	}

	// 3. Check for Overlaps
	hasOverlap, err := s.repo.HasOverlap(ctx, req.AircraftID, req.InstructorID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	// 4. Create Booking
	b := &Booking{
		AircraftID:   req.AircraftID,
		InstructorID: req.InstructorID,
		StudentName:  strings.TrimSpace(req.StudentName),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) checkResource(ctx context.Context, kind resource.Kind, id string) error {
	if _, err := s.resService.GetByID(ctx, kind, id); err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	bookings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	MarkConflicts(bookings)
	return bookings, total, nil
}
