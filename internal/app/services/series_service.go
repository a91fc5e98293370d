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

// DefaultTitleLanguage is used when a series request names no language
const DefaultTitleLanguage = "fr"

// SeriesService manages the TD, TP and exam series of a course
type SeriesService interface {
	// ListSeries returns the series of a course; an empty type lists every type
	ListSeries(ctx context.Context, courseID int64, seriesType models.SeriesType) ([]*models.Series, error)
	GetSeries(ctx context.Context, id int64) (*models.Series, error)
	CreateSeries(ctx context.Context, req *dto.SeriesRequest) (*models.Series, error)
	UpdateSeries(ctx context.Context, id int64, req *dto.SeriesRequest) (*models.Series, error)
	DeleteSeries(ctx context.Context, id int64) error
	// ClearSeries removes the course's series of one type, or all of them for an empty type
	ClearSeries(ctx context.Context, courseID int64, seriesType models.SeriesType) (int64, error)
	GenerateTitle(req *dto.TitleRequest) string
}

type seriesServiceImpl struct {
	repos    *repositories.Repositories
	location *time.Location
	logger   zerolog.Logger
}

// NewSeriesService creates a new series service
func NewSeriesService(repos *repositories.Repositories, location *time.Location, logger zerolog.Logger) SeriesService {
	return &seriesServiceImpl{
		repos:    repos,
		location: location,
		logger:   logger,
	}
}

// ViewSeries renders series for a caller; solutions stay hidden while the gate is locked unless admin
func ViewSeries(series []*models.Series, gate domain.Gate, isAdmin bool) []*dto.SeriesResponse {
	locked := !gate.SolutionsUnlocked && !isAdmin
	out := make([]*dto.SeriesResponse, 0, len(series))
	for _, s := range series {
		out = append(out, dto.NewSeriesResponse(s, locked))
	}
	return out
}

func (s *seriesServiceImpl) ListSeries(ctx context.Context, courseID int64, seriesType models.SeriesType) ([]*models.Series, error) {
	if _, err := requireCourse(ctx, s.repos.Courses, courseID); err != nil {
		return nil, err
	}
	all, err := s.repos.Series.GetByParent(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving series: %w", err)
	}
	if seriesType == "" {
		return all, nil
	}
	return domain.Filter(all, func(item *models.Series) bool { return item.Type == seriesType }), nil
}

func (s *seriesServiceImpl) GetSeries(ctx context.Context, id int64) (*models.Series, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid series ID", apperrors.ErrValidationFailed)
	}
	series, err := s.repos.Series.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSeriesNotFound) {
			return nil, apperrors.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("error retrieving series: %w", err)
	}
	return series, nil
}

func (s *seriesServiceImpl) GenerateTitle(req *dto.TitleRequest) string {
	seriesType, _ := models.ParseSeriesType(string(req.Type))
	lang := req.Language
	if lang == "" {
		lang = DefaultTitleLanguage
	}
	return domain.GenerateSeriesTitle(domain.TitleInput{
		Type:         seriesType,
		Language:     lang,
		Number:       req.Number,
		ChapterTitle: strings.TrimSpace(req.ChapterTitle),
		AcademicYear: req.AcademicYear,
	})
}

// applySeries copies the request onto item; the type is canonicalised
func (s *seriesServiceImpl) applySeries(item *models.Series, req *dto.SeriesRequest) error {
	seriesType, ok := models.ParseSeriesType(string(req.Type))
	if !ok {
		return apperrors.NewValidationError("type", "type must be TD, TP or Exam")
	}
	item.CourseID = req.CourseID
	item.Type = seriesType
	item.Title = strings.TrimSpace(req.Title)
	item.DocumentLink = strings.TrimSpace(req.DocumentLink)
	item.SolutionLink = strings.TrimSpace(req.SolutionLink)
	item.HasSolution = item.SolutionLink != ""
	item.Date = helpers.ParseOptionalDate(req.Date, s.location)
	return nil
}

// nextNumber allocates the next free number in the (course, type) sequence
func (s *seriesServiceImpl) nextNumber(ctx context.Context, courseID int64, seriesType models.SeriesType) (int, error) {
	existing, err := s.ListSeries(ctx, courseID, seriesType)
	if err != nil {
		return 0, err
	}
	taken := make(map[int64]bool, len(existing))
	for _, e := range existing {
		taken[int64(e.Number)] = true
	}
	n, err := allocateNumber(ctx, s.repos.Counters, repositories.SeriesCounterKey(courseID, seriesType), taken)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *seriesServiceImpl) CreateSeries(ctx context.Context, req *dto.SeriesRequest) (*models.Series, error) {
	course, err := requireCourse(ctx, s.repos.Courses, req.CourseID)
	if err != nil {
		return nil, err
	}

	item := &models.Series{Number: req.Number}
	if err := s.applySeries(item, req); err != nil {
		return nil, err
	}

	if item.Number <= 0 {
		n, err := s.nextNumber(ctx, item.CourseID, item.Type)
		if err != nil {
			return nil, err
		}
		item.Number = n
	}

	if item.Title == "" {
		item.Title = s.GenerateTitle(&dto.TitleRequest{
			Type:         item.Type,
			Language:     req.Language,
			Number:       item.Number,
			ChapterTitle: req.ChapterTitle,
			AcademicYear: course.AcademicYear,
		})
	}

	id, err := s.repos.Series.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating series: %w", err)
	}
	item.ID = id

	if err := syncCourseFlags(ctx, s.repos, req.CourseID); err != nil {
		return nil, fmt.Errorf("error updating course flags: %w", err)
	}
	s.logger.Info().Int64("courseID", req.CourseID).Int64("seriesID", id).Str("type", string(item.Type)).Int("number", item.Number).Msg("Series created")
	return item, nil
}

func (s *seriesServiceImpl) UpdateSeries(ctx context.Context, id int64, req *dto.SeriesRequest) (*models.Series, error) {
	item, err := s.GetSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	previousCourse, previousType, previousTitle := item.CourseID, item.Type, item.Title
	if req.CourseID != previousCourse {
		if _, err := requireCourse(ctx, s.repos.Courses, req.CourseID); err != nil {
			return nil, err
		}
	}

	if err := s.applySeries(item, req); err != nil {
		return nil, err
	}
	switch {
	case req.Number > 0:
		item.Number = req.Number
	case item.Type != previousType || item.CourseID != previousCourse:
		// the old number belongs to another sequence
		n, err := s.nextNumber(ctx, item.CourseID, item.Type)
		if err != nil {
			return nil, err
		}
		item.Number = n
	}
	if item.Title == "" {
		item.Title = previousTitle
	}
	if err := s.repos.Series.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("error updating series: %w", err)
	}

	courses := []int64{item.CourseID}
	if previousCourse != item.CourseID {
		courses = append(courses, previousCourse)
	}
	for _, courseID := range courses {
		if err := syncCourseFlags(ctx, s.repos, courseID); err != nil {
			return nil, fmt.Errorf("error updating course flags: %w", err)
		}
	}
	return item, nil
}

func (s *seriesServiceImpl) DeleteSeries(ctx context.Context, id int64) error {
	item, err := s.GetSeries(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Series.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting series: %w", err)
	}
	return syncCourseFlags(ctx, s.repos, item.CourseID)
}

func (s *seriesServiceImpl) ClearSeries(ctx context.Context, courseID int64, seriesType models.SeriesType) (int64, error) {
	var deleted int64
	if seriesType == "" {
		if _, err := requireCourse(ctx, s.repos.Courses, courseID); err != nil {
			return 0, err
		}
		n, err := s.repos.Series.DeleteByParent(ctx, courseID)
		if err != nil {
			return 0, fmt.Errorf("error clearing series: %w", err)
		}
		deleted = n
	} else {
		items, err := s.ListSeries(ctx, courseID, seriesType)
		if err != nil {
			return 0, err
		}
		for _, item := range items {
			if err := s.repos.Series.Delete(ctx, item.ID); err != nil {
				return deleted, fmt.Errorf("error clearing series: %w", err)
			}
			deleted++
		}
	}

	if err := syncCourseFlags(ctx, s.repos, courseID); err != nil {
		return deleted, fmt.Errorf("error updating course flags: %w", err)
	}
	s.logger.Info().Int64("courseID", courseID).Str("type", string(seriesType)).Int64("deleted", deleted).Msg("Series cleared")
	return deleted, nil
}
