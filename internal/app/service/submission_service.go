package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/pkg/phone"
)

// SubmissionInput is a contact request about a listing.
type SubmissionInput struct {
	ListingID string
	Name      string
	Email     string
	Phone     string
	Message   string
}

// SubmissionService stores contact requests.
type SubmissionService struct {
	submissions domain.SubmissionRepository
	logger      *zap.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(submissions domain.SubmissionRepository, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		logger:      logger,
	}
}

// Submit records a contact request from actor.
func (s *SubmissionService) Submit(ctx context.Context, actor *domain.User, in SubmissionInput) (*domain.Submission, error) {
	const op = "submission.Submit"
	if err := requireActor(actor, op); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, domain.InvalidArgument("message is required").WithOp(op)
	}

	// contact details default to the account's own
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = actor.Name
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = actor.Email
	}

	sub := &domain.Submission{
		ID:        uuid.NewString(),
		UserID:    actor.ID,
		ListingID: strings.TrimSpace(in.ListingID),
		Name:      name,
		Email:     email,
		Phone:     phone.NormalizeE164(in.Phone),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Error("store submission failed", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, fmt.Errorf("storing submission: %w", err)
	}

	s.logger.Info("contact submission received",
		zap.String("submission_id", sub.ID),
		zap.String("listing_id", sub.ListingID),
	)

	return sub, nil
}

// Mine returns the actor's submissions.
func (s *SubmissionService) Mine(ctx context.Context, actor *domain.User) ([]*domain.Submission, error) {
	if err := requireActor(actor, "submission.Mine"); err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	return subs, nil
}
