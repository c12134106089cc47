// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/pkg/locker"
)

// SyncLockKey guards the feed sync across instances.
const SyncLockKey = "sync:feeds:lock"

// SyncScheduler periodically imports the upstream feeds. The lock makes sure only
// one instance runs a sync per interval.
type SyncScheduler struct {
	syncService *service.SyncService
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	locker      locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SyncConfig holds sync scheduler configuration.
type SyncConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewSyncScheduler creates a new SyncScheduler.
func NewSyncScheduler(
	syncSvc *service.SyncService,
	cfg SyncConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *SyncScheduler {
	return &SyncScheduler{
		syncService: syncSvc,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		logger:      logger,
		locker:      locker,
	}
}

// Start begins the background loop.
func (s *SyncScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting sync scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop cancels any running sync and waits for the loop to exit.
func (s *SyncScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.logger.Info("stopping sync scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.RunOnce(s.ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(s.ctx)
		}
	}
}

// RunOnce performs one locked sync and reports whether it ran.
//
// The lock TTL is the interval (cooldown model). After a clean sync the lock is
// kept until it expires so no other instance repeats the work; after any feed
// failure it is released right away so the next tick anywhere can retry.
func (s *SyncScheduler) RunOnce(ctx context.Context) bool {
	acquired, err := s.locker.Acquire(ctx, SyncLockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire sync lock", zap.Error(err))
		return false
	}
	if !acquired {
		s.logger.Debug("another instance is running sync, skipping")
		return false
	}

	syncCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := s.syncService.SyncAll(syncCtx)
	synced, failed := service.Summarize(results)

	for _, r := range results {
		if r.Error != nil {
			s.logger.Warn("feed sync failed",
				zap.String("feed", r.Feed),
				zap.Error(r.Error),
			)
		}
	}

	if failed > 0 {
		if err := s.locker.Release(ctx, SyncLockKey); err != nil {
			s.logger.Error("failed to release sync lock", zap.Error(err))
		}
		s.logger.Info("sync completed with errors, lock released for retry",
			zap.Int("total_synced", synced),
			zap.Int("feeds_failed", failed),
		)
		return true
	}

	s.logger.Info("sync completed, lock held for cooldown",
		zap.Int("total_synced", synced),
		zap.Duration("cooldown", s.interval),
	)
	return true
}
