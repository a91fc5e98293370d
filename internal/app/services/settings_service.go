package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// SettingsService manages the exam settings and evaluates the solution gate
type SettingsService interface {
	// GetExamSettings returns nil without error when no settings were saved yet
	GetExamSettings(ctx context.Context) (*models.ExamSettings, error)
	SaveExamSettings(ctx context.Context, actorID int64, req *dto.ExamSettingsRequest) (*models.ExamSettings, error)
	// Gate never fails; a settings read error leaves solutions unlocked
	Gate(ctx context.Context) domain.Gate
}

type settingsServiceImpl struct {
	repo     repositories.SettingsRepository
	location *time.Location
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repositories.SettingsRepository, location *time.Location, logger zerolog.Logger) SettingsService {
	if location == nil {
		location = time.UTC
	}
	return &settingsServiceImpl{
		repo:     repo,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *settingsServiceImpl) GetExamSettings(ctx context.Context) (*models.ExamSettings, error) {
	settings, err := s.repo.GetExamSettings(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving exam settings: %w", err)
	}
	settings.TargetDate = settings.TargetDate.In(s.location)
	return settings, nil
}

func (s *settingsServiceImpl) SaveExamSettings(ctx context.Context, actorID int64, req *dto.ExamSettingsRequest) (*models.ExamSettings, error) {
	target, ok := helpers.ParseDate(req.TargetDate, s.location)
	if !ok {
		return nil, apperrors.NewValidationError("targetDate", "targetDate is not a valid date")
	}

	settings := &models.ExamSettings{
		TargetDate:   target,
		Enabled:      req.Enabled,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
		UpdatedBy:    actorID,
	}
	if err := s.repo.SaveExamSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error saving exam settings: %w", err)
	}

	s.logger.Info().
		Int64("actorID", actorID).
		Time("targetDate", target).
		Bool("enabled", req.Enabled).
		Msg("Exam settings updated")
	return settings, nil
}

func (s *settingsServiceImpl) Gate(ctx context.Context) domain.Gate {
	settings, err := s.GetExamSettings(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Exam settings unavailable, solutions unlocked")
	}
	return domain.EvaluateGate(settings, err, s.now())
}
