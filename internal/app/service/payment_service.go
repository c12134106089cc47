package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
)

const txnAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// PaymentInput describes a payment to record.
type PaymentInput struct {
	Amount      float64
	Currency    string
	Method      domain.PaymentMethod
	ListingID   string
	Description string
	Details     map[string]string
}

// PaymentService records payments. No money is moved.
type PaymentService struct {
	payments domain.PaymentRepository
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments domain.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		logger:   logger,
	}
}

// Process records a completed payment for actor.
func (s *PaymentService) Process(ctx context.Context, actor *domain.User, in PaymentInput) (*domain.Payment, error) {
	const op = "payment.Process"
	if err := requireActor(actor, op); err != nil {
		return nil, err
	}
	if !in.Method.IsValid() {
		return nil, domain.InvalidArgument("payment method must be one of: card upi wallet").WithOp(op)
	}
	if in.Amount <= 0 {
		return nil, domain.InvalidArgument("amount must be positive").WithOp(op)
	}

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	now := time.Now().UTC()
	txn, err := newTransactionID(now)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:            uuid.NewString(),
		UserID:        actor.ID,
		ListingID:     strings.TrimSpace(in.ListingID),
		Amount:        in.Amount,
		Currency:      currency,
		Method:        in.Method,
		Status:        domain.PaymentStatusCompleted,
		TransactionID: txn,
		Description:   strings.TrimSpace(in.Description),
		Details:       in.Details,
		CreatedAt:     now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		s.logger.Error("record payment failed", zap.String("user_id", actor.ID), zap.Error(err))
		return nil, fmt.Errorf("recording payment: %w", err)
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("user_id", actor.ID),
		zap.Float64("amount", payment.Amount),
		zap.String("method", string(payment.Method)),
	)

	return payment, nil
}

// History returns actor's payments, newest first, narrowed by filter.
func (s *PaymentService) History(ctx context.Context, actor *domain.User, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	if err := requireActor(actor, "payment.History"); err != nil {
		return nil, err
	}

	all, err := s.payments.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	out := make([]*domain.Payment, 0, len(all))
	for _, p := range all {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// newTransactionID returns TXN<unix millis><9 uppercase alphanumerics>.
func newTransactionID(now time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString("TXN")
	sb.WriteString(fmt.Sprint(now.UnixMilli()))

	limit := big.NewInt(int64(len(txnAlphabet)))
	for range 9 {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating transaction id: %w", err)
		}
		sb.WriteByte(txnAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
