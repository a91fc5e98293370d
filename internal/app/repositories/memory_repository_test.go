package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(CourseTable)

	c := &models.Course{Code: "INF201", Name: "Logique"}
	id, err := repo.Create(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &models.Course{Code: "INF101", Name: "Algo"})
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "INF101", all[0].Code)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Name = "mutated"
	again, _ := repo.GetByID(ctx, id)
	assert.Equal(t, "Logique", again.Name, "stored rows must be copies")

	created := again.CreatedAt
	again.Name = "Logique mathématique"
	require.NoError(t, repo.Update(ctx, again))
	updated, _ := repo.GetByID(ctx, id)
	assert.Equal(t, "Logique mathématique", updated.Name)
	assert.Equal(t, created, updated.CreatedAt)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), apperrors.ErrCourseNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Course{ID: 999}), apperrors.ErrCourseNotFound)
}

func TestMemoryRepositoryUniqueCode(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(CourseTable)
	_, err := repo.Create(ctx, &models.Course{Code: "INF101"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Course{Code: "inf101"})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestMemoryRepositoryParent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(SeriesTable)
	for _, s := range []*models.Series{
		{CourseID: 1, Type: models.SeriesExam, Number: 1},
		{CourseID: 1, Type: models.SeriesTD, Number: 2},
		{CourseID: 1, Type: models.SeriesTD, Number: 1},
		{CourseID: 2, Type: models.SeriesTP, Number: 1},
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	list, err := repo.GetByParent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, models.SeriesTD, list[0].Type)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, models.SeriesExam, list[2].Type)

	n, err := repo.DeleteByParent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	rest, _ := repo.GetAll(ctx)
	assert.Len(t, rest, 1)

	_, err = NewMemoryRepository(CourseTable).GetByParent(ctx, 1)
	assert.Error(t, err)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	_, err := repo.Create(ctx, &models.User{Email: "Amina@uni.dz", Role: models.RoleStudent})
	require.NoError(t, err)

	u, err := repo.GetByEmail(ctx, "amina@UNI.dz")
	require.NoError(t, err)
	assert.Equal(t, "Amina@uni.dz", u.Email)

	_, err = repo.Create(ctx, &models.User{Email: "amina@uni.dz"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastLogin(ctx, u.ID, at))
	u, _ = repo.GetByID(ctx, u.ID)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, at, *u.LastLoginAt)

	_, err = repo.GetByEmail(ctx, "nobody@uni.dz")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestMemoryCounterMonotonic(t *testing.T) {
	ctx := context.Background()
	counters := NewMemoryCounterRepository()

	var wg sync.WaitGroup
	seen := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := counters.NextSequence(ctx, ChapterCounterKey(3))
			assert.NoError(t, err)
			seen <- v
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[int64]bool{}
	for v := range seen {
		unique[v] = true
	}
	assert.Len(t, unique, 50)

	v, err := counters.NextSequence(ctx, SeriesCounterKey(3, models.SeriesTD))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = counters.NextSequence(cancelled, CourseCounterKey("inf"))
	assert.ErrorIs(t, err, apperrors.ErrSequenceUnavailable)
	assert.Equal(t, "course:INF", CourseCounterKey("inf"))
}

func TestMemoryTokenRepository(t *testing.T) {
	ctx := context.Background()
	tokens := NewMemoryTokenRepository()
	require.NoError(t, tokens.CreateToken(ctx, "t1", 5, time.Now().Add(time.Hour)))
	require.NoError(t, tokens.CreateToken(ctx, "t2", 5, time.Now().Add(-time.Hour)))

	uid, err := tokens.GetTokenByValue(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), uid)

	_, err = tokens.GetTokenByValue(ctx, "t2")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	require.NoError(t, tokens.RevokeAllUserTokens(ctx, 5))
	_, err = tokens.GetTokenByValue(ctx, "t1")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	n, err := tokens.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = tokens.GetTokenByValue(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestMemorySettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySettingsRepository()
	_, err := repo.GetExamSettings(ctx)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	target := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveExamSettings(ctx, &models.ExamSettings{TargetDate: target, Enabled: true}))
	s, err := repo.GetExamSettings(ctx)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, target, s.TargetDate)
}
