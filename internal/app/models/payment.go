package models

import "time"

// PaymentStatus tracks a payment through its lifecycle
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// IsValid reports whether the status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment records a subscription payment made by a user
type Payment struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"userId" db:"user_id"`
	Amount    float64       `json:"amount" db:"amount"`
	Currency  string        `json:"currency" db:"currency"`
	Method    string        `json:"method" db:"method"`
	Status    PaymentStatus `json:"status" db:"status"`
	Reference string        `json:"reference" db:"reference"`
	PaidAt    *time.Time    `json:"paidAt,omitempty" db:"paid_at"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`
}
