package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/truefeedback/truefeedback/internal/feedback/store"
)

// DefaultPendingRetention is how long an unverified account is kept after its
// verification code expires before housekeeping reclaims the username.
const DefaultPendingRetention = 7 * 24 * time.Hour

// HousekeepingService periodically removes stale unverified accounts so
// abandoned registrations don't squat usernames and emails forever.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the housekeeping worker. Interval defaults
// to 1 hour, retention to 7 days.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultPendingRetention
	}

	return &HousekeepingService{
		Store:     st,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop() to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop shuts down the worker, blocking until any in-progress cleanup ends.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.Retention)

	if err := s.Store.Accounts().DeleteExpiredUnverified(ctx, cutoff); err != nil {
		s.Logger.Error("failed to delete stale unverified accounts", "error", err)
		return
	}
	s.Logger.Debug("deleted stale unverified accounts", "cutoff", cutoff)
}
