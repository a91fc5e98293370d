package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// DefaultCurrency applies to payments recorded without a currency
const DefaultCurrency = "DZD"

// PaymentService defines payment bookkeeping operations
type PaymentService interface {
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*models.Payment, error)
	ListUserPayments(ctx context.Context, userID int64) ([]*models.Payment, error)
	CreatePayment(ctx context.Context, req *dto.PaymentRequest) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id int64, req *dto.PaymentRequest) (*models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

type paymentServiceImpl struct {
	paymentRepo repositories.Repository[models.Payment]
	userRepo    repositories.UserRepository
	location    *time.Location
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo repositories.Repository[models.Payment], userRepo repositories.UserRepository, location *time.Location) PaymentService {
	return &paymentServiceImpl{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		location:    location,
	}
}

func (s *paymentServiceImpl) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*models.Payment, error) {
	payments, err := s.paymentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving payments: %w", err)
	}
	return domain.Filter(payments, filter.Matches), nil
}

func (s *paymentServiceImpl) ListUserPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	payments, err := s.paymentRepo.GetByParent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving payments: %w", err)
	}
	return payments, nil
}

func (s *paymentServiceImpl) apply(ctx context.Context, p *models.Payment, req *dto.PaymentRequest) error {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}
	if !req.Status.IsValid() {
		return apperrors.NewValidationError("status", "unknown payment status")
	}

	p.UserID = req.UserID
	p.Amount = req.Amount
	p.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	p.Method = strings.TrimSpace(req.Method)
	p.Status = req.Status
	p.Reference = strings.TrimSpace(req.Reference)
	p.PaidAt = helpers.ParseOptionalDate(req.PaidAt, s.location)
	return nil
}

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *dto.PaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{}
	if err := s.apply(ctx, payment, req); err != nil {
		return nil, err
	}
	id, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("error creating payment: %w", err)
	}
	payment.ID = id
	return payment, nil
}

func (s *paymentServiceImpl) UpdatePayment(ctx context.Context, id int64, req *dto.PaymentRequest) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error retrieving payment: %w", err)
	}
	if err := s.apply(ctx, payment, req); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("error updating payment: %w", err)
	}
	return payment, nil
}

func (s *paymentServiceImpl) DeletePayment(ctx context.Context, id int64) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrPaymentNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return fmt.Errorf("error deleting payment: %w", err)
	}
	return nil
}
