// Package service provides application use cases.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
)

// CatalogService serves the public catalog. Only approved listings are visible.
type CatalogService struct {
	listings domain.ListingRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(listings domain.ListingRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		listings: listings,
		logger:   logger,
	}
}

// Browse runs a catalog query over the approved snapshot.
func (s *CatalogService) Browse(ctx context.Context, spec domain.QuerySpec) (*domain.QueryResult, error) {
	s.logger.Debug("browsing catalog",
		zap.String("q", spec.SearchTerm),
		zap.String("category", spec.Category),
		zap.String("location", spec.Location),
		zap.String("sort", string(spec.SortKey)),
		zap.Int("page", spec.Page),
		zap.Int("page_size", spec.PageSize),
	)

	approved, err := s.listings.List(ctx, domain.ListingFilter{Status: domain.ListingStatusApproved})
	if err != nil {
		s.logger.Error("loading approved listings failed", zap.Error(err))
		return nil, fmt.Errorf("loading approved listings: %w", err)
	}

	result, err := domain.Query(approved, spec)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("browse completed",
		zap.Int("total", result.TotalCount),
		zap.Int("count", len(result.Items)),
		zap.Int("page", result.Page),
	)

	return result, nil
}

// Get returns an approved listing by ID. Pending and rejected listings are reported as not found.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("get listing failed", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("getting listing: %w", err)
	}
	if listing == nil || !listing.IsApproved() {
		return nil, domain.NotFound("listing not found").WithOp("catalog.Get")
	}
	return listing, nil
}
