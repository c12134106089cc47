package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
)

// SyncService imports the static catalog from upstream feeds.
type SyncService struct {
	listings domain.ListingRepository
	feeds    []domain.FeedProvider
	logger   *zap.Logger
}

// NewSyncService creates a new SyncService.
func NewSyncService(listings domain.ListingRepository, feeds []domain.FeedProvider, logger *zap.Logger) *SyncService {
	return &SyncService{
		listings: listings,
		feeds:    feeds,
		logger:   logger,
	}
}

// SyncResult holds the result of syncing one feed.
type SyncResult struct {
	Feed     string
	Count    int
	Duration time.Duration
	Error    error
}

// SyncAll synchronizes every feed concurrently. Partial failures are allowed;
// results keep the registration order of the feeds.
func (s *SyncService) SyncAll(ctx context.Context) []SyncResult {
	results := make([]SyncResult, len(s.feeds))
	var wg sync.WaitGroup

	s.logger.Info("starting sync from all feeds",
		zap.Int("feed_count", len(s.feeds)),
	)

	for i, feed := range s.feeds {
		wg.Add(1)
		go func(idx int, f domain.FeedProvider) {
			defer wg.Done()
			results[idx] = s.syncFeed(ctx, f)
		}(i, feed)
	}

	wg.Wait()

	totalSynced, failed := Summarize(results)
	s.logger.Info("sync completed",
		zap.Int("total_synced", totalSynced),
		zap.Int("feeds_failed", failed),
	)

	return results
}

// SyncFeed synchronizes a single feed by name.
func (s *SyncService) SyncFeed(ctx context.Context, name string) (*SyncResult, error) {
	for _, f := range s.feeds {
		if f.Name() == name {
			result := s.syncFeed(ctx, f)
			return &result, result.Error
		}
	}
	return nil, domain.NotFound("unknown feed: " + name).WithOp("sync.SyncFeed")
}

// FeedNames returns the names of all registered feeds.
func (s *SyncService) FeedNames() []string {
	names := make([]string, len(s.feeds))
	for i, f := range s.feeds {
		names[i] = f.Name()
	}
	return names
}

// FeedHealth checks every feed and returns the error per feed name (nil when healthy).
func (s *SyncService) FeedHealth(ctx context.Context) map[string]error {
	health := make(map[string]error, len(s.feeds))
	for _, f := range s.feeds {
		health[f.Name()] = f.HealthCheck(ctx)
	}
	return health
}

// syncFeed fetches and upserts listings from a single feed.
func (s *SyncService) syncFeed(ctx context.Context, feed domain.FeedProvider) SyncResult {
	start := time.Now()
	result := SyncResult{Feed: feed.Name()}

	s.logger.Debug("syncing feed", zap.String("feed", feed.Name()))

	listings, err := feed.Fetch(ctx)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		s.logger.Warn("feed fetch failed",
			zap.String("feed", feed.Name()),
			zap.Error(err),
		)
		return result
	}

	if len(listings) > 0 {
		if err := s.listings.UpsertFeed(ctx, listings); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			s.logger.Error("feed upsert failed",
				zap.String("feed", feed.Name()),
				zap.Error(err),
			)
			return result
		}
	}

	result.Count = len(listings)
	result.Duration = time.Since(start)

	s.logger.Info("feed sync completed",
		zap.String("feed", feed.Name()),
		zap.Int("count", result.Count),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// Summarize returns the number of synced listings and failed feeds.
func Summarize(results []SyncResult) (synced, failed int) {
	for _, r := range results {
		if r.Error != nil {
			failed++
		} else {
			synced += r.Count
		}
	}
	return synced, failed
}
