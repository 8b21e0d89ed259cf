package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/grid"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// Registry holds live sessions. Sessions do not expire; clients delete them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create builds a grid for view and registers it under a fresh id.
func (r *Registry) Create(ownerID string, view View, slots *timeslot.Index, snap grid.Snapshot, now time.Time) *Session {
	rec := &recorder{}
	s := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		View:      view,
		CreatedAt: now,
		grid:      grid.New(slots, view.Mode, view.Date, snap, rec),
		rec:       rec,
		now:       now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("grid session created",
		zap.String("session_id", s.ID),
		zap.String("owner_id", ownerID),
		zap.String("mode", string(view.Mode)),
		zap.Time("date", view.Date),
	)
	return s
}

// Get returns the session when it exists and belongs to ownerID.
func (r *Registry) Get(id, ownerID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.OwnerID != ownerID {
		return nil, ErrPermissionDenied
	}
	return s, nil
}

func (r *Registry) Delete(id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.OwnerID != ownerID {
		return ErrPermissionDenied
	}
	delete(r.sessions, id)
	r.logger.Info("grid session deleted", zap.String("session_id", id))
	return nil
}

// RefreshNow moves every session's current-time indicator and returns how many were updated.
func (r *Registry) RefreshNow(now time.Time) int {
	r.mu.RLock()
	list := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	r.mu.RUnlock()

	for _, s := range list {
		s.SetNow(now)
	}
	return len(list)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
