package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

// BookmarkService keeps the set of courses a user bookmarked
type BookmarkService interface {
	// Set returns the bookmarked course ids; read failures yield an empty set
	Set(ctx context.Context, userID int64) map[int64]bool
	List(ctx context.Context, userID int64) []int64
	Add(ctx context.Context, userID, courseID int64) ([]int64, error)
	Remove(ctx context.Context, userID, courseID int64) ([]int64, error)
}

type bookmarkServiceImpl struct {
	courses repositories.Repository[models.Course]
	state   kvstore.Store
	logger  zerolog.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(courses repositories.Repository[models.Course], state kvstore.Store, logger zerolog.Logger) BookmarkService {
	return &bookmarkServiceImpl{
		courses: courses,
		state:   state,
		logger:  logger,
	}
}

func (s *bookmarkServiceImpl) load(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if _, err := s.state.Load(ctx, kvstore.BookmarksKey(userID), &ids); err != nil {
		if !errors.Is(err, kvstore.ErrCorrupt) {
			return nil, err
		}
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Discarding unreadable bookmarks")
		return nil, nil
	}
	return ids, nil
}

func (s *bookmarkServiceImpl) Set(ctx context.Context, userID int64) map[int64]bool {
	ids := s.List(ctx, userID)
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *bookmarkServiceImpl) List(ctx context.Context, userID int64) []int64 {
	ids, err := s.load(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to read bookmarks, treating as empty")
		return []int64{}
	}
	return normalizeIDs(ids)
}

func (s *bookmarkServiceImpl) Add(ctx context.Context, userID, courseID int64) ([]int64, error) {
	if _, err := requireCourse(ctx, s.courses, courseID); err != nil {
		return nil, err
	}
	return s.modify(ctx, userID, func(set map[int64]bool) { set[courseID] = true })
}

func (s *bookmarkServiceImpl) Remove(ctx context.Context, userID, courseID int64) ([]int64, error) {
	return s.modify(ctx, userID, func(set map[int64]bool) { delete(set, courseID) })
}

func (s *bookmarkServiceImpl) modify(ctx context.Context, userID int64, fn func(set map[int64]bool)) ([]int64, error) {
	ids, err := s.load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading bookmarks: %w", err)
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	fn(set)

	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	out = normalizeIDs(out)
	if err := s.state.Save(ctx, kvstore.BookmarksKey(userID), out); err != nil {
		return nil, fmt.Errorf("error saving bookmarks: %w", err)
	}
	return out, nil
}

// normalizeIDs returns the sorted distinct ids, never nil
func normalizeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
