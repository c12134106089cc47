package service

import (
	"context"
	"fmt"

	"storefront-catalog-service/internal/domain"
)

// AdminService aggregates storefront statistics.
type AdminService struct {
	users    domain.UserRepository
	listings domain.ListingRepository
	payments domain.PaymentRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(users domain.UserRepository, listings domain.ListingRepository, payments domain.PaymentRepository) *AdminService {
	return &AdminService{
		users:    users,
		listings: listings,
		payments: payments,
	}
}

// SystemStats counts users, listings by status and recorded revenue.
func (s *AdminService) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	byStatus, err := s.listings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting listings: %w", err)
	}

	payments, revenue, err := s.payments.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing payments: %w", err)
	}

	stats := &domain.SystemStats{
		TotalUsers:    users,
		PendingPosts:  byStatus[domain.ListingStatusPending],
		ApprovedPosts: byStatus[domain.ListingStatusApproved],
		RejectedPosts: byStatus[domain.ListingStatusRejected],
		TotalRevenue:  revenue,
		TotalPayments: payments,
	}
	for _, n := range byStatus {
		stats.TotalPosts += n
	}

	return stats, nil
}
