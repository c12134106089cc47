package domain

import "time"

// PaymentMethod is the instrument used for a payment.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// IsValid reports whether m is a supported method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

// PaymentStatus is the recorded outcome of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// DefaultCurrency is used when a payment does not specify one.
const DefaultCurrency = "INR"

// Payment is a record of a payment made by a user. No money actually moves.
type Payment struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	ListingID     string            `json:"listing_id,omitempty"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Method        PaymentMethod     `json:"method"`
	Status        PaymentStatus     `json:"status"`
	TransactionID string            `json:"transaction_id"`
	Description   string            `json:"description,omitempty"`
	Details       map[string]string `json:"details,omitempty"` // last4, upi id, wallet type
	CreatedAt     time.Time         `json:"created_at"`
}

// PaymentFilter narrows a payment history listing. Empty fields match everything.
type PaymentFilter struct {
	Status PaymentStatus
	Method PaymentMethod
}

// Matches reports whether p passes the filter.
func (f PaymentFilter) Matches(p *Payment) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Method != "" && p.Method != f.Method {
		return false
	}
	return true
}
