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
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// ChapterService manages the chapters (cours) of a course
type ChapterService interface {
	ListChapters(ctx context.Context, courseID int64) ([]*models.Resource, error)
	GetChapter(ctx context.Context, id int64) (*models.Resource, error)
	CreateChapter(ctx context.Context, req *dto.ChapterRequest) (*models.Resource, error)
	UpdateChapter(ctx context.Context, id int64, req *dto.ChapterRequest) (*models.Resource, error)
	DeleteChapter(ctx context.Context, id int64) error
	// ClearChapters removes every chapter of the course
	ClearChapters(ctx context.Context, courseID int64) (int64, error)
}

type chapterServiceImpl struct {
	repos    *repositories.Repositories
	location *time.Location
	logger   zerolog.Logger
}

// NewChapterService creates a new chapter service
func NewChapterService(repos *repositories.Repositories, location *time.Location, logger zerolog.Logger) ChapterService {
	return &chapterServiceImpl{
		repos:    repos,
		location: location,
		logger:   logger,
	}
}

func (s *chapterServiceImpl) ListChapters(ctx context.Context, courseID int64) ([]*models.Resource, error) {
	if _, err := requireCourse(ctx, s.repos.Courses, courseID); err != nil {
		return nil, err
	}
	chapters, err := s.repos.Chapters.GetByParent(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chapters: %w", err)
	}
	return chapters, nil
}

func (s *chapterServiceImpl) GetChapter(ctx context.Context, id int64) (*models.Resource, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid chapter ID", apperrors.ErrValidationFailed)
	}
	chapter, err := s.repos.Chapters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrChapterNotFound) {
			return nil, apperrors.ErrChapterNotFound
		}
		return nil, fmt.Errorf("error retrieving chapter: %w", err)
	}
	return chapter, nil
}

// chapterNumbers returns the numbers already used in the course
func (s *chapterServiceImpl) chapterNumbers(ctx context.Context, courseID int64) (map[int64]bool, error) {
	chapters, err := s.repos.Chapters.GetByParent(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chapters: %w", err)
	}
	taken := make(map[int64]bool, len(chapters))
	for _, ch := range chapters {
		taken[int64(ch.ChapterNumber)] = true
	}
	return taken, nil
}

func (s *chapterServiceImpl) applyChapter(ch *models.Resource, req *dto.ChapterRequest) {
	ch.CourseID = req.CourseID
	ch.Title = strings.TrimSpace(req.Title)
	ch.Description = strings.TrimSpace(req.Description)
	ch.DocumentLink = strings.TrimSpace(req.DocumentLink)
	ch.Date = helpers.ParseOptionalDate(req.Date, s.location)
}

func (s *chapterServiceImpl) CreateChapter(ctx context.Context, req *dto.ChapterRequest) (*models.Resource, error) {
	if _, err := requireCourse(ctx, s.repos.Courses, req.CourseID); err != nil {
		return nil, err
	}

	chapter := &models.Resource{ChapterNumber: req.ChapterNumber}
	s.applyChapter(chapter, req)

	if chapter.ChapterNumber <= 0 {
		taken, err := s.chapterNumbers(ctx, req.CourseID)
		if err != nil {
			return nil, err
		}
		n, err := allocateNumber(ctx, s.repos.Counters, repositories.ChapterCounterKey(req.CourseID), taken)
		if err != nil {
			return nil, err
		}
		chapter.ChapterNumber = int(n)
	}

	id, err := s.repos.Chapters.Create(ctx, chapter)
	if err != nil {
		return nil, fmt.Errorf("error creating chapter: %w", err)
	}
	chapter.ID = id

	if err := syncCourseFlags(ctx, s.repos, req.CourseID); err != nil {
		return nil, fmt.Errorf("error updating course flags: %w", err)
	}
	s.logger.Info().Int64("courseID", req.CourseID).Int64("chapterID", id).Int("number", chapter.ChapterNumber).Msg("Chapter created")
	return chapter, nil
}

func (s *chapterServiceImpl) UpdateChapter(ctx context.Context, id int64, req *dto.ChapterRequest) (*models.Resource, error) {
	chapter, err := s.GetChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	previousCourse := chapter.CourseID
	if req.CourseID != previousCourse {
		if _, err := requireCourse(ctx, s.repos.Courses, req.CourseID); err != nil {
			return nil, err
		}
	}

	s.applyChapter(chapter, req)
	if req.ChapterNumber > 0 {
		chapter.ChapterNumber = req.ChapterNumber
	}
	if err := s.repos.Chapters.Update(ctx, chapter); err != nil {
		return nil, fmt.Errorf("error updating chapter: %w", err)
	}

	if previousCourse != chapter.CourseID {
		for _, courseID := range []int64{previousCourse, chapter.CourseID} {
			if err := syncCourseFlags(ctx, s.repos, courseID); err != nil {
				return nil, fmt.Errorf("error updating course flags: %w", err)
			}
		}
	}
	return chapter, nil
}

func (s *chapterServiceImpl) DeleteChapter(ctx context.Context, id int64) error {
	chapter, err := s.GetChapter(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Chapters.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting chapter: %w", err)
	}
	return syncCourseFlags(ctx, s.repos, chapter.CourseID)
}

func (s *chapterServiceImpl) ClearChapters(ctx context.Context, courseID int64) (int64, error) {
	if _, err := requireCourse(ctx, s.repos.Courses, courseID); err != nil {
		return 0, err
	}
	n, err := s.repos.Chapters.DeleteByParent(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("error clearing chapters: %w", err)
	}
	if err := syncCourseFlags(ctx, s.repos, courseID); err != nil {
		return 0, fmt.Errorf("error updating course flags: %w", err)
	}

	s.logger.Info().Int64("courseID", courseID).Int64("deleted", n).Msg("Chapters cleared")
	return n, nil
}
