package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/validation"
)

// CourseQuery selects, orders and pages courses
type CourseQuery struct {
	Filter domain.CourseFilter
	Sort   domain.CourseSortKey
	Page   domain.PageRequest
}

// CourseService defines the course catalog operations
type CourseService interface {
	// FindCourses filters and sorts the whole catalog
	FindCourses(ctx context.Context, filter domain.CourseFilter, sortKey domain.CourseSortKey) ([]*models.Course, error)
	ListCourses(ctx context.Context, q CourseQuery) ([]*models.Course, domain.PageInfo, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (*models.Course, error)
	// DeleteCourse removes the course with its chapters and series
	DeleteCourse(ctx context.Context, id int64) error
	// NextCode allocates the next free <PREFIX><NNN> code
	NextCode(ctx context.Context, prefix string) (string, error)
}

type courseServiceImpl struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(repos *repositories.Repositories, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		repos:  repos,
		logger: logger,
	}
}

func (s *courseServiceImpl) FindCourses(ctx context.Context, filter domain.CourseFilter, sortKey domain.CourseSortKey) ([]*models.Course, error) {
	courses, err := s.repos.Courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return domain.SortCourses(domain.FilterCourses(courses, filter), sortKey), nil
}

func (s *courseServiceImpl) ListCourses(ctx context.Context, q CourseQuery) ([]*models.Course, domain.PageInfo, error) {
	courses, err := s.FindCourses(ctx, q.Filter, q.Sort)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}
	page, info := domain.Paginate(courses, q.Page)
	return page, info, nil
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return requireCourse(ctx, s.repos.Courses, id)
}

// applyCourse copies the request onto c and validates the result
func applyCourse(c *models.Course, req *dto.CourseRequest) error {
	c.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	c.Name = strings.TrimSpace(req.Name)
	c.Professor = strings.TrimSpace(req.Professor)
	c.Level = req.Level
	c.Semester = req.Semester
	c.AcademicYear = strings.TrimSpace(req.AcademicYear)
	c.Status = req.Status
	if c.Status == "" {
		c.Status = models.CourseStatusActive
	}
	c.Credits = req.Credits
	c.Description = strings.TrimSpace(req.Description)

	if c.Code != "" && !validation.CompiledPatterns.CourseCode.MatchString(c.Code) {
		return apperrors.NewValidationError("code", "code must be 2-6 letters followed by 3 digits")
	}
	if !c.Level.IsValid() {
		return apperrors.NewValidationError("level", "unknown level")
	}
	if !domain.IsAcademicYear(c.AcademicYear) {
		return apperrors.NewValidationError("academicYear", "academicYear must look like 2023-2024")
	}
	return nil
}

func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{}
	if err := applyCourse(course, req); err != nil {
		return nil, err
	}

	if course.Code == "" {
		if strings.TrimSpace(req.CodePrefix) == "" {
			return nil, apperrors.NewValidationError("code", "either code or codePrefix is required")
		}
		code, err := s.NextCode(ctx, req.CodePrefix)
		if err != nil {
			return nil, err
		}
		course.Code = code
	}

	id, err := s.repos.Courses.Create(ctx, course)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseCodeExists) {
			return nil, apperrors.ErrCourseCodeExists
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	course.ID = id

	s.logger.Info().Int64("courseID", id).Str("code", course.Code).Msg("Course created")
	return course, nil
}

func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) (*models.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	previousCode := course.Code
	if err := applyCourse(course, req); err != nil {
		return nil, err
	}
	if course.Code == "" {
		course.Code = previousCode
	}

	if err := s.repos.Courses.Update(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseCodeExists) {
			return nil, apperrors.ErrCourseCodeExists
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}

	chapters, err := s.repos.Chapters.DeleteByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting chapters: %w", err)
	}
	series, err := s.repos.Series.DeleteByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting series: %w", err)
	}
	if err := s.repos.Courses.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Int64("chapters", chapters).Int64("series", series).Msg("Course deleted")
	return nil
}

func (s *courseServiceImpl) NextCode(ctx context.Context, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !validation.CompiledPatterns.CodePrefix.MatchString(prefix) {
		return "", apperrors.NewValidationError("prefix", "prefix must be 2-6 letters")
	}

	courses, err := s.repos.Courses.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("error retrieving courses: %w", err)
	}
	taken := make(map[int64]bool)
	for _, c := range courses {
		rest, ok := strings.CutPrefix(strings.ToUpper(c.Code), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.ParseInt(rest, 10, 64); err == nil && n > 0 {
			taken[n] = true
		}
	}

	n, err := allocateNumber(ctx, s.repos.Counters, repositories.CourseCounterKey(prefix), taken)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, n), nil
}
