package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/logger"
)

const examSettingsKey = "exam"

// SettingsRepository reads and writes the exam settings singleton
type SettingsRepository interface {
	// GetExamSettings returns apperrors.ErrResourceNotFound when the row was never saved
	GetExamSettings(ctx context.Context) (*models.ExamSettings, error)
	SaveExamSettings(ctx context.Context, settings *models.ExamSettings) error
}

type postgresSettingsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresSettingsRepository creates a settings repository over the settings table
func NewPostgresSettingsRepository(db *pgxpool.Pool) SettingsRepository {
	return &postgresSettingsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *postgresSettingsRepository) GetExamSettings(ctx context.Context) (*models.ExamSettings, error) {
	sql, args, err := r.sb.Select("target_date", "enabled", "academic_year", "updated_by", "updated_at").
		From("settings").
		Where(squirrel.Eq{"key": examSettingsKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build settings query: %w", err)
	}

	var (
		s         models.ExamSettings
		target    *time.Time
		updatedBy *int64
	)
	err = r.db.QueryRow(ctx, sql, args...).Scan(&target, &s.Enabled, &s.AcademicYear, &updatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Msg("Error reading exam settings")
		return nil, fmt.Errorf("error reading exam settings: %w", err)
	}
	if target != nil {
		s.TargetDate = *target
	}
	if updatedBy != nil {
		s.UpdatedBy = *updatedBy
	}
	return &s, nil
}

func (r *postgresSettingsRepository) SaveExamSettings(ctx context.Context, s *models.ExamSettings) error {
	var target *time.Time
	if !s.TargetDate.IsZero() {
		target = &s.TargetDate
	}
	var updatedBy *int64
	if s.UpdatedBy != 0 {
		updatedBy = &s.UpdatedBy
	}

	sql, args, err := r.sb.Insert("settings").
		Columns("key", "target_date", "enabled", "academic_year", "updated_by", "updated_at").
		Values(examSettingsKey, target, s.Enabled, s.AcademicYear, updatedBy, squirrel.Expr("NOW()")).
		Suffix(`ON CONFLICT (key) DO UPDATE SET target_date = EXCLUDED.target_date, enabled = EXCLUDED.enabled,
			academic_year = EXCLUDED.academic_year, updated_by = EXCLUDED.updated_by, updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build settings upsert: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error saving exam settings")
		return fmt.Errorf("error saving exam settings: %w", err)
	}
	return nil
}

// MemorySettingsRepository keeps the exam settings in process memory
type MemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *models.ExamSettings
	// ReadErr, when set, is returned by every read; tests use it to exercise fail-open paths
	ReadErr error
}

// NewMemorySettingsRepository creates an in-memory settings repository
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

func (r *MemorySettingsRepository) GetExamSettings(_ context.Context) (*models.ExamSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}
	if r.settings == nil {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *r.settings
	return &cp, nil
}

func (r *MemorySettingsRepository) SaveExamSettings(_ context.Context, s *models.ExamSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.UpdatedAt = time.Now()
	cp := *s
	r.settings = &cp
	return nil
}
