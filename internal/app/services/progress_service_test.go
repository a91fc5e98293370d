package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

func TestMarkViewedComputesPercentage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	first := env.chapter(t, c.ID, "Intro")
	env.chapter(t, c.ID, "Suite")
	td := env.series(t, c.ID, models.SeriesTD, "")
	env.series(t, c.ID, models.SeriesTD, "")

	resp, err := env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Percentage)
	assert.Equal(t, 2, resp.Progress.TotalChapters)
	assert.Equal(t, 2, resp.Progress.TotalTD)

	// repeats are no-ops
	resp, err = env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID}, resp.Progress.ViewedChapters)

	resp, err = env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindTD, td.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Percentage)

	list := env.svc.Progress.ListProgress(ctx, 7)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].CourseID)
	assert.Equal(t, 50, list[0].Percentage)
}

func TestMarkViewedRejectsForeignItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	other := env.course(t, "INF102")
	foreign := env.chapter(t, other.ID, "Elsewhere")
	td := env.series(t, c.ID, models.SeriesTD, "")

	_, err := env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, foreign.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// a TD id is not a TP
	_, err = env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindTP, td.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestReconcilePrunesDeletedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	first := env.chapter(t, c.ID, "Intro")
	second := env.chapter(t, c.ID, "Suite")

	_, err := env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, first.ID)
	require.NoError(t, err)
	_, err = env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, second.ID)
	require.NoError(t, err)

	require.NoError(t, env.svc.Chapters.DeleteChapter(ctx, first.ID))
	env.chapter(t, c.ID, "Nouveau")

	p, err := env.svc.Progress.Reconcile(ctx, 7, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID}, p.ViewedChapters)
	assert.Equal(t, 2, p.TotalChapters)

	stored := env.svc.Progress.All(ctx, 7)[c.ID]
	assert.Equal(t, []int64{second.ID}, stored.ViewedChapters)
}

func TestProgressReadsLegacyBlob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	ch := env.chapter(t, c.ID, "Intro")

	legacy := []byte(`{"` + strconv.FormatInt(c.ID, 10) + `":{"viewedChapters":["` + strconv.FormatInt(ch.ID, 10) + `"],"totalChapters":1}}`)
	require.True(t, kvstore.PutRaw(env.state, kvstore.ProgressKey(7), legacy))

	p, err := env.svc.Progress.Reconcile(ctx, 7, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{ch.ID}, p.ViewedChapters)
}

func TestProgressFailsOpenOnUnreadableState(t *testing.T) {
	env := newTestEnv(t)
	require.True(t, kvstore.PutRaw(env.state, kvstore.ProgressKey(7), []byte("not json")))

	assert.Empty(t, env.svc.Progress.All(context.Background(), 7))
	assert.Empty(t, env.svc.Progress.ListProgress(context.Background(), 7))
}

func TestMarkViewedReplacesUnreadableState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	first := env.chapter(t, c.ID, "Intro")
	second := env.chapter(t, c.ID, "Suite")

	for _, blob := range []string{"not json", `{"abc123":{"viewedChapters":["x"],"totalChapters":1}}`} {
		require.True(t, kvstore.PutRaw(env.state, kvstore.ProgressKey(7), []byte(blob)))

		resp, err := env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, first.ID)
		require.NoError(t, err, blob)
		assert.Equal(t, []int64{first.ID}, resp.Progress.ViewedChapters)

		resp, err = env.svc.Progress.MarkViewed(ctx, 7, c.ID, models.KindChapter, second.ID)
		require.NoError(t, err, blob)
		assert.Equal(t, 100, resp.Percentage)
		assert.Len(t, env.svc.Progress.All(ctx, 7), 1)
	}
}

func TestBookmarkAddReplacesUnreadableState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.course(t, "INF101")
	b := env.course(t, "INF102")
	require.True(t, kvstore.PutRaw(env.state, kvstore.BookmarksKey(7), []byte("garbage")))

	ids, err := env.svc.Bookmarks.Add(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, ids)

	ids, err = env.svc.Bookmarks.Add(ctx, 7, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)
}

func TestBookmarks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.course(t, "INF101")
	b := env.course(t, "INF102")

	_, err := env.svc.Bookmarks.Add(ctx, 7, 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = env.svc.Bookmarks.Add(ctx, 7, b.ID)
	require.NoError(t, err)
	ids, err := env.svc.Bookmarks.Add(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)

	ids, err = env.svc.Bookmarks.Add(ctx, 7, a.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	ids, err = env.svc.Bookmarks.Remove(ctx, 7, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, ids)
	assert.True(t, env.svc.Bookmarks.Set(ctx, 7)[a.ID])
	assert.Empty(t, env.svc.Bookmarks.List(ctx, 8))
}

func TestGateFollowsExamSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	settings := env.svc.Settings.(*settingsServiceImpl)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	settings.now = func() time.Time { return now }

	// never saved
	assert.True(t, settings.Gate(ctx).SolutionsUnlocked)

	_, err := settings.SaveExamSettings(ctx, 1, &dto.ExamSettingsRequest{TargetDate: "2024-06-01T09:00", Enabled: true})
	require.NoError(t, err)
	gate := settings.Gate(ctx)
	assert.False(t, gate.SolutionsUnlocked)
	assert.Equal(t, "01/06/2024 09:00", gate.UnlockDate)

	now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, settings.Gate(ctx).SolutionsUnlocked)

	_, err = settings.SaveExamSettings(ctx, 1, &dto.ExamSettingsRequest{TargetDate: "2099-01-01T00:00", Enabled: false})
	require.NoError(t, err)
	assert.True(t, settings.Gate(ctx).SolutionsUnlocked)

	_, err = settings.SaveExamSettings(ctx, 1, &dto.ExamSettingsRequest{TargetDate: "tomorrow"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGateFailsOpenOnReadError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Settings.SaveExamSettings(ctx, 1, &dto.ExamSettingsRequest{TargetDate: "2099-01-01T00:00", Enabled: true})
	require.NoError(t, err)
	require.False(t, env.svc.Settings.Gate(ctx).SolutionsUnlocked)

	env.repos.Settings.(*repositories.MemorySettingsRepository).ReadErr = assert.AnError
	assert.True(t, env.svc.Settings.Gate(ctx).SolutionsUnlocked)
}
