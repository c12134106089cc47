// Package registry builds the configured catalog feed clients.
package registry

import (
	"go.uber.org/zap"

	"storefront-catalog-service/internal/config"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/provider"
	"storefront-catalog-service/internal/infra/provider/catalogfeed"
	"storefront-catalog-service/internal/infra/provider/partnerfeed"
)

// NewFeeds creates a client for every enabled feed, in a fixed order (catalog, partner).
func NewFeeds(cfg config.FeedsConfig, logger *zap.Logger) []domain.FeedProvider {
	feeds := make([]domain.FeedProvider, 0, 2)

	if cfg.Catalog.Enabled {
		feeds = append(feeds, catalogfeed.New(clientConfig(cfg.Catalog), logger.Named(catalogfeed.Name)))
	}
	if cfg.Partner.Enabled {
		feeds = append(feeds, partnerfeed.New(clientConfig(cfg.Partner), logger.Named(partnerfeed.Name)))
	}

	return feeds
}

func clientConfig(ep config.FeedEndpoint) provider.ClientConfig {
	return provider.ClientConfig{
		BaseURL: ep.BaseURL,
		Timeout: ep.Timeout,
		Retry: provider.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: provider.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
	}
}
