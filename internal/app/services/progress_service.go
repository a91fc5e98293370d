package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

// progressDocument is the stored shape of courseProgress:<userId>
type progressDocument map[int64]models.CourseProgress

// ProgressService tracks which chapters and series a user has opened
type ProgressService interface {
	// All returns the stored progress of every course; read failures yield an empty map
	All(ctx context.Context, userID int64) map[int64]models.CourseProgress
	ListProgress(ctx context.Context, userID int64) []dto.ProgressResponse
	// Reconcile refreshes the course totals from its current content and prunes deleted ids
	Reconcile(ctx context.Context, userID, courseID int64) (models.CourseProgress, error)
	// MarkViewed adds an item of the course to the viewed set; repeats are no-ops
	MarkViewed(ctx context.Context, userID, courseID int64, kind models.ContentKind, itemID int64) (*dto.ProgressResponse, error)
}

type progressServiceImpl struct {
	chapters repositories.Repository[models.Resource]
	series   repositories.Repository[models.Series]
	state    kvstore.Store
	logger   zerolog.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	chapters repositories.Repository[models.Resource],
	series repositories.Repository[models.Series],
	state kvstore.Store,
	logger zerolog.Logger,
) ProgressService {
	return &progressServiceImpl{
		chapters: chapters,
		series:   series,
		state:    state,
		logger:   logger,
	}
}

func (s *progressServiceImpl) load(ctx context.Context, userID int64) (progressDocument, error) {
	doc := progressDocument{}
	if _, err := s.state.Load(ctx, kvstore.ProgressKey(userID), &doc); err != nil {
		if !errors.Is(err, kvstore.ErrCorrupt) {
			return nil, err
		}
		// the next save replaces the unreadable blob
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Discarding unreadable progress")
		return progressDocument{}, nil
	}
	if doc == nil {
		doc = progressDocument{}
	}
	return doc, nil
}

func (s *progressServiceImpl) save(ctx context.Context, userID int64, doc progressDocument) error {
	if err := s.state.Save(ctx, kvstore.ProgressKey(userID), doc); err != nil {
		return fmt.Errorf("error saving progress: %w", err)
	}
	return nil
}

func (s *progressServiceImpl) All(ctx context.Context, userID int64) map[int64]models.CourseProgress {
	doc, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to read progress, treating as empty")
		return map[int64]models.CourseProgress{}
	}
	return doc
}

func (s *progressServiceImpl) ListProgress(ctx context.Context, userID int64) []dto.ProgressResponse {
	doc := s.All(ctx, userID)
	out := make([]dto.ProgressResponse, 0, len(doc))
	for courseID, p := range doc {
		domain.Normalize(&p)
		out = append(out, dto.ProgressResponse{CourseID: courseID, Percentage: domain.Percentage(p), Progress: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}

// update loads the document, reconciles one course against content, applies fn and saves
func (s *progressServiceImpl) update(ctx context.Context, userID, courseID int64, content domain.CourseContent, fn func(p *models.CourseProgress)) (models.CourseProgress, error) {
	doc, err := s.load(ctx, userID)
	if err != nil {
		return models.CourseProgress{}, fmt.Errorf("error loading progress: %w", err)
	}

	p := doc[courseID]
	before := cloneProgress(p)
	pruned := domain.Reconcile(&p, content)
	if fn != nil {
		fn(&p)
	}
	domain.Normalize(&p)

	if pruned > 0 {
		s.logger.Debug().Int64("userID", userID).Int64("courseID", courseID).Int("pruned", pruned).Msg("Pruned viewed ids of deleted items")
	}
	if !sameProgress(before, p) {
		doc[courseID] = p
		if err := s.save(ctx, userID, doc); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (s *progressServiceImpl) Reconcile(ctx context.Context, userID, courseID int64) (models.CourseProgress, error) {
	content, err := loadContent(ctx, s.chapters, s.series, courseID)
	if err != nil {
		return models.CourseProgress{}, err
	}
	return s.update(ctx, userID, courseID, content, nil)
}

func (s *progressServiceImpl) MarkViewed(ctx context.Context, userID, courseID int64, kind models.ContentKind, itemID int64) (*dto.ProgressResponse, error) {
	content, err := loadContent(ctx, s.chapters, s.series, courseID)
	if err != nil {
		return nil, err
	}
	if !content.Contains(kind, itemID) {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("%s %d not found in course %d", kind, itemID, courseID))
	}

	p, err := s.update(ctx, userID, courseID, content, func(p *models.CourseProgress) {
		domain.MarkViewed(p, kind, itemID)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProgressResponse{CourseID: courseID, Percentage: domain.Percentage(p), Progress: p}, nil
}

func cloneProgress(p models.CourseProgress) models.CourseProgress {
	p.ViewedChapters = append([]int64(nil), p.ViewedChapters...)
	p.ViewedTD = append([]int64(nil), p.ViewedTD...)
	p.ViewedTP = append([]int64(nil), p.ViewedTP...)
	p.ViewedExams = append([]int64(nil), p.ViewedExams...)
	return p
}

func sameProgress(a, b models.CourseProgress) bool {
	if a.TotalChapters != b.TotalChapters || a.TotalTD != b.TotalTD || a.TotalTP != b.TotalTP || a.TotalExams != b.TotalExams {
		return false
	}
	return sameIDs(a.ViewedChapters, b.ViewedChapters) && sameIDs(a.ViewedTD, b.ViewedTD) &&
		sameIDs(a.ViewedTP, b.ViewedTP) && sameIDs(a.ViewedExams, b.ViewedExams)
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
