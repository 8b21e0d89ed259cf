package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/flight-schedule-grid/internal/session"
	"github.com/nekogravitycat/flight-schedule-grid/internal/telemetry"
	"github.com/nekogravitycat/flight-schedule-grid/internal/timeslot"
)

// NowTicker periodically moves the current-time line of every live grid session.
type NowTicker struct {
	registry *session.Registry
	slots    *timeslot.Index
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
	stopChan chan struct{}
	done     chan struct{}
}

func NewNowTicker(registry *session.Registry, slots *timeslot.Index, interval time.Duration, logger *zap.Logger) *NowTicker {
	return &NowTicker{
		registry: registry,
		slots:    slots,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the ticker in the background until ctx ends or Stop is called.
func (t *NowTicker) Start(ctx context.Context) {
	t.logger.Info("starting now ticker", zap.Duration("interval", t.interval))
	go t.run(ctx)
}

// Stop halts the ticker and waits for it to exit.
func (t *NowTicker) Stop() {
	t.logger.Info("stopping now ticker")
	close(t.stopChan)
	<-t.done
}

func (t *NowTicker) run(ctx context.Context) {
	defer close(t.done)

	t.tick()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.tick()
		case <-t.stopChan:
			return
		case <-ctx.Done():
			t.logger.Info("now ticker cancelled")
			return
		}
	}
}

func (t *NowTicker) tick() {
	now := t.now()
	refreshed := t.registry.RefreshNow(now)
	telemetry.CurrentSlot.Set(float64(t.slots.SlotOf(now)))
	telemetry.GridSessionsActive.Set(float64(refreshed))
	t.logger.Debug("refreshed grid sessions", zap.Int("sessions", refreshed), zap.Time("now", now))
}
