package dto

import (
	"time"

	"github.com/yigit/uniportal/internal/app/models"
)

// PaymentRequest records or edits a payment
type PaymentRequest struct {
	UserID    int64                `json:"userId" binding:"required,min=1"`
	Amount    float64              `json:"amount" binding:"min=0"`
	Currency  string               `json:"currency" binding:"omitempty,len=3"`
	Method    string               `json:"method" binding:"max=32"`
	Status    models.PaymentStatus `json:"status" binding:"required,paymentstatus"`
	Reference string               `json:"reference" binding:"max=128"`
	PaidAt    string               `json:"paidAt" example:"2024-01-10"`
}

// PaymentResponse is the public view of a payment
type PaymentResponse struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"userId"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Method    string               `json:"method"`
	Status    models.PaymentStatus `json:"status"`
	Reference string               `json:"reference"`
	PaidAt    *time.Time           `json:"paidAt,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewPaymentResponse converts a payment record
func NewPaymentResponse(p *models.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    p.Method,
		Status:    p.Status,
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

// PaymentListResponse is one page of payments
type PaymentListResponse struct {
	Payments   []*PaymentResponse `json:"payments"`
	Pagination PaginationInfo     `json:"pagination"`
}
