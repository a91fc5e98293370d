package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/uniportal/internal/app/models"
	appRepos "github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/config"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/auth"
)

// DefaultExamLead is how far ahead of the first start the default exam date is placed
const DefaultExamLead = 30 * 24 * time.Hour

// CreateDefaultData creates the admin account and the exam settings row if they don't exist.
// Errors are collected so one failure does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, admin config.AdminConfig, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (admin account, exam settings)...")
	var finalErr error

	if err := createAdmin(ctx, repos.Users, admin, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := createExamSettings(ctx, repos.Settings, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func createAdmin(ctx context.Context, users appRepos.UserRepository, admin config.AdminConfig, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		lgr.Info().Msg("No admin credentials configured, skipping admin creation")
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound, apperrors.ErrResourceNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	hashedPassword, err := auth.HashPassword(admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	now := time.Now()
	adminID, err := users.Create(ctx, &appModels.User{
		Email:       email,
		Password:    hashedPassword,
		DisplayName: admin.DisplayName,
		Role:        appModels.RoleAdmin,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}

// createExamSettings saves a disabled gate so the admin form has a row to edit
func createExamSettings(ctx context.Context, settings appRepos.SettingsRepository, lgr zerolog.Logger) error {
	_, err := settings.GetExamSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		lgr.Error().Err(err).Msg("Error reading exam settings")
		return err
	}

	now := time.Now()
	if err := settings.SaveExamSettings(ctx, &appModels.ExamSettings{
		TargetDate: now.Add(DefaultExamLead),
		Enabled:    false,
		UpdatedAt:  now,
	}); err != nil {
		lgr.Error().Err(err).Msg("Error creating default exam settings")
		return err
	}
	lgr.Info().Msg("Default exam settings created")
	return nil
}
