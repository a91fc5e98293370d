package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/middleware"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// PaymentController handles payment records
type PaymentController struct {
	paymentService services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

func paymentResponses(payments []*models.Payment) []*dto.PaymentResponse {
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return out
}

// ListMyPayments returns the caller's payments
// @Summary List own payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PaymentResponse} "Payments"
// @Router /payments [get]
func (c *PaymentController) ListMyPayments(ctx *gin.Context) {
	payments, err := c.paymentService.ListUserPayments(ctx.Request.Context(), auth.SessionFrom(ctx).UserID())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, paymentResponses(payments))
}

// ListPayments lists payments of every user
// @Summary List payments (admin)
// @Tags admin-payments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status" Enums(pending, paid, failed, refunded)
// @Param userId query int false "User ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaymentListResponse} "Payments"
// @Router /admin/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	filter := domain.PaymentFilter{
		Status: models.PaymentStatus(ctx.Query("status")),
		UserID: helpers.QueryInt64(ctx, "userId"),
	}
	payments, err := c.paymentService.ListPayments(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	page, info := domain.Paginate(payments, helpers.ParsePageRequest(ctx))
	respondOK(ctx, dto.PaymentListResponse{Payments: paymentResponses(page), Pagination: helpers.NewPaginationInfo(info)})
}

// CreatePayment records a payment
// @Summary Create a payment (admin)
// @Tags admin-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment created"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/payments [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.PaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	payment, err := c.paymentService.CreatePayment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, dto.NewPaymentResponse(payment))
}

// UpdatePayment edits a payment
// @Summary Update a payment (admin)
// @Tags admin-payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param request body dto.PaymentRequest true "Payment"
// @Success 200 {object} dto.APIResponse{data=dto.PaymentResponse} "Payment updated"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /admin/payments/{id} [put]
func (c *PaymentController) UpdatePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	payment, err := c.paymentService.UpdatePayment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewPaymentResponse(payment))
}

// DeletePayment deletes a payment
// @Summary Delete a payment (admin)
// @Tags admin-payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Payment deleted"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Router /admin/payments/{id} [delete]
func (c *PaymentController) DeletePayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.paymentService.DeletePayment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.SuccessResponse{Message: "Payment deleted"})
}
