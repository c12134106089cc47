// Package catalogfeed implements the JSON catalog feed client.
package catalogfeed

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/provider"
)

// Name is the feed identifier and the Source of imported listings.
const Name = "catalog"

// Endpoint is the path of the product list.
const Endpoint = "/api/products"

// Client implements domain.FeedProvider for the catalog feed (JSON).
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new catalog feed client.
func New(cfg provider.ClientConfig, logger *zap.Logger) *Client {
	return &Client{
		client: provider.NewRestyClient(cfg),
		cb:     provider.NewCircuitBreaker[*resty.Response](Name, cfg.CB, logger),
		logger: logger,
	}
}

// Name returns the feed identifier.
func (c *Client) Name() string {
	return Name
}

// Fetch retrieves every product and normalizes it into a listing.
// Products without an ID or title are skipped.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Listing, error) {
	resp, err := provider.Get(ctx, Name, c.client, c.cb, Endpoint, func(r *resty.Request) {
		r.SetResult(&Response{})
	})
	if err != nil {
		c.logger.Warn("catalog feed fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from %s feed: %w", Name, err)
	}

	result, ok := resp.Result().(*Response)
	if !ok {
		return nil, fmt.Errorf("parsing %s feed: unexpected body", Name)
	}

	listings := make([]*domain.Listing, 0, len(result.Products))
	skipped := 0
	for _, p := range result.Products {
		listing := p.ToDomain(Name)
		if p.ID == 0 || listing.Title == "" {
			skipped++
			continue
		}
		listings = append(listings, listing)
	}

	c.logger.Info("catalog feed fetch completed",
		zap.Int("count", len(listings)),
		zap.Int("skipped", skipped),
	)

	return listings, nil
}

// HealthCheck verifies the feed is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	return provider.HealthCheck(ctx, c.client)
}

var _ domain.FeedProvider = (*Client)(nil)
