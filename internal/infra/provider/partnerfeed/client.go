// Package partnerfeed implements the XML partner feed client.
package partnerfeed

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/infra/provider"
)

// Name is the feed identifier and the Source of imported listings.
const Name = "partner"

// Endpoint is the path of the XML feed.
const Endpoint = "/feed"

// Client implements domain.FeedProvider for the partner feed (XML).
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new partner feed client.
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

// Fetch retrieves the feed and normalizes every entry into a listing.
// Entries without a ref or headline are skipped.
func (c *Client) Fetch(ctx context.Context) ([]*domain.Listing, error) {
	resp, err := provider.Get(ctx, Name, c.client, c.cb, Endpoint, func(r *resty.Request) {
		r.SetHeader("Accept", "application/xml")
	})
	if err != nil {
		c.logger.Warn("partner feed fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching from %s feed: %w", Name, err)
	}

	var feed Feed
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parsing %s feed XML: %w", Name, err)
	}

	listings := make([]*domain.Listing, 0, len(feed.Listings.Items))
	skipped := 0
	for _, item := range feed.Listings.Items {
		listing := item.ToDomain(Name)
		if listing.ExternalID == "" || listing.Title == "" {
			skipped++
			continue
		}
		listings = append(listings, listing)
	}

	c.logger.Info("partner feed fetch completed",
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
