package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/auth"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/middleware"
)

// SettingsController handles the exam settings and the solution gate
type SettingsController struct {
	settingsService services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

func newExamSettingsResponse(s *models.ExamSettings) dto.ExamSettingsResponse {
	if s == nil {
		return dto.ExamSettingsResponse{}
	}
	target, updated := s.TargetDate, s.UpdatedAt
	resp := dto.ExamSettingsResponse{
		TargetDate:   &target,
		Enabled:      s.Enabled,
		AcademicYear: s.AcademicYear,
		UpdatedBy:    s.UpdatedBy,
	}
	if !updated.IsZero() {
		resp.UpdatedAt = &updated
	}
	return resp
}

// GetGate returns whether solutions are visible right now
// @Summary Solution gate
// @Description Solutions unlock once the exam date is reached or when the gate is disabled
// @Tags settings
// @Produce json
// @Success 200 {object} dto.APIResponse{data=domain.Gate} "Gate"
// @Router /exam-settings/gate [get]
func (c *SettingsController) GetGate(ctx *gin.Context) {
	respondOK(ctx, c.settingsService.Gate(ctx.Request.Context()))
}

// GetExamSettings returns the stored exam settings
// @Summary Get exam settings (admin)
// @Tags admin-settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ExamSettingsResponse} "Exam settings"
// @Router /admin/exam-settings [get]
func (c *SettingsController) GetExamSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetExamSettings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, newExamSettingsResponse(settings))
}

// SaveExamSettings replaces the exam settings
// @Summary Save exam settings (admin)
// @Tags admin-settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExamSettingsRequest true "Exam settings"
// @Success 200 {object} dto.APIResponse{data=dto.ExamSettingsResponse} "Exam settings saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Router /admin/exam-settings [put]
func (c *SettingsController) SaveExamSettings(ctx *gin.Context) {
	var req dto.ExamSettingsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	settings, err := c.settingsService.SaveExamSettings(ctx.Request.Context(), auth.SessionFrom(ctx).UserID(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, newExamSettingsResponse(settings))
}
