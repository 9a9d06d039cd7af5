package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
)

// HousekeepingService periodically deletes OTP records past their TTL.
// Expiry is enforced at read time regardless; this only bounds table growth.
type HousekeepingService struct {
	OTPs     *OTPService
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(otps *OTPService, m *metrics.Metrics, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		OTPs:     otps,
		Metrics:  m,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background. Call Stop to end it.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup performs one pass and returns how many records were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.OTPs.PurgeExpired(ctx)
	if err != nil {
		s.Logger.Error("failed to delete expired otps", "error", err)
		return 0
	}
	s.Metrics.OTPsPurged(n)
	s.Logger.Debug("housekeeping cleanup completed", "otps_deleted", n)
	return n
}
