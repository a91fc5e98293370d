package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/domain"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

func TestCreateCourseNormalizesCode(t *testing.T) {
	env := newTestEnv(t)

	c := env.course(t, " inf101 ")
	assert.Equal(t, "INF101", c.Code)
	assert.Equal(t, models.CourseStatusActive, c.Status)

	_, err := env.svc.Courses.CreateCourse(context.Background(), courseRequest("INF101"))
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestCreateCourseRejectsInvalidFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := courseRequest("")
	_, err := env.svc.Courses.CreateCourse(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = courseRequest("INFO1")
	_, err = env.svc.Courses.CreateCourse(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = courseRequest("INF101")
	req.AcademicYear = "2024-2023"
	_, err = env.svc.Courses.CreateCourse(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestNextCodeSkipsTakenNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.course(t, "INF001")
	env.course(t, "INF002")

	code, err := env.svc.Courses.NextCode(ctx, "inf")
	require.NoError(t, err)
	assert.Equal(t, "INF003", code)

	code, err = env.svc.Courses.NextCode(ctx, "INF")
	require.NoError(t, err)
	assert.Equal(t, "INF004", code)

	_, err = env.svc.Courses.NextCode(ctx, "I1")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateCourseFromPrefix(t *testing.T) {
	env := newTestEnv(t)

	req := courseRequest("")
	req.CodePrefix = "math"
	c, err := env.svc.Courses.CreateCourse(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "MATH001", c.Code)
}

func TestUpdateCourseKeepsCodeWhenBlank(t *testing.T) {
	env := newTestEnv(t)
	c := env.course(t, "PHY201")

	req := courseRequest("")
	req.Name = "Mécanique"
	updated, err := env.svc.Courses.UpdateCourse(context.Background(), c.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "PHY201", updated.Code)
	assert.Equal(t, "Mécanique", updated.Name)

	_, err = env.svc.Courses.UpdateCourse(context.Background(), 999, req)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeleteCourseRemovesContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	other := env.course(t, "INF102")
	env.chapter(t, c.ID, "Intro")
	env.series(t, c.ID, models.SeriesTD, "")
	kept := env.chapter(t, other.ID, "Kept")

	require.NoError(t, env.svc.Courses.DeleteCourse(ctx, c.ID))

	_, err := env.svc.Courses.GetCourse(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	series, err := env.repos.Series.GetByParent(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, series)
	chapters, err := env.repos.Chapters.GetByParent(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, kept.ID, chapters[0].ID)
}

func TestListCoursesFiltersSortsAndPages(t *testing.T) {
	env := newTestEnv(t)
	for _, code := range []string{"INF103", "INF101", "MATH101", "INF102"} {
		env.course(t, code)
	}

	courses, info, err := env.svc.Courses.ListCourses(context.Background(), CourseQuery{
		Filter: domain.CourseFilter{Search: "inf"},
		Sort:   domain.SortByCode,
		Page:   domain.PageRequest{Page: 2, Size: 2},
	})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "INF103", courses[0].Code)
	assert.Equal(t, 3, info.TotalItems)
	assert.Equal(t, 2, info.TotalPages)
}

func TestChapterNumbersAndCourseFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	assert.False(t, c.HasCours)

	first := env.chapter(t, c.ID, "Intro")
	second := env.chapter(t, c.ID, "Suite")
	assert.Equal(t, 1, first.ChapterNumber)
	assert.Equal(t, 2, second.ChapterNumber)
	assert.True(t, env.reloadCourse(t, c.ID).HasCours)

	n, err := env.svc.Chapters.ClearChapters(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.False(t, env.reloadCourse(t, c.ID).HasCours)

	_, err = env.svc.Chapters.CreateChapter(ctx, &dto.ChapterRequest{CourseID: 999, Title: "x"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestChapterExplicitNumberIsSkippedByCounter(t *testing.T) {
	env := newTestEnv(t)
	c := env.course(t, "INF101")

	_, err := env.svc.Chapters.CreateChapter(context.Background(), &dto.ChapterRequest{CourseID: c.ID, ChapterNumber: 1, Title: "Manual"})
	require.NoError(t, err)

	auto := env.chapter(t, c.ID, "Auto")
	assert.Equal(t, 2, auto.ChapterNumber)
}

func TestSeriesNumbersTitlesAndFlags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")

	td, err := env.svc.Series.CreateSeries(ctx, &dto.SeriesRequest{
		CourseID:     c.ID,
		Type:         models.SeriesTD,
		ChapterTitle: "Logique",
		SolutionLink: "https://drive.google.com/file/d/sol/view",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, td.Number)
	assert.Equal(t, "TD1 : Logique : 2023-2024", td.Title)
	assert.True(t, td.HasSolution)

	exam := env.series(t, c.ID, models.SeriesExam, "")
	assert.Equal(t, 1, exam.Number)
	assert.Equal(t, "Examen1 : 2023-2024", exam.Title)
	assert.False(t, exam.HasSolution)

	course := env.reloadCourse(t, c.ID)
	assert.True(t, course.HasTD)
	assert.True(t, course.HasExam)
	assert.False(t, course.HasTP)

	tds, err := env.svc.Series.ListSeries(ctx, c.ID, models.SeriesTD)
	require.NoError(t, err)
	assert.Len(t, tds, 1)

	require.NoError(t, env.svc.Series.DeleteSeries(ctx, td.ID))
	assert.False(t, env.reloadCourse(t, c.ID).HasTD)
}

func TestUpdateSeriesTypeRenumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.course(t, "INF101")
	env.series(t, c.ID, models.SeriesTD, "")
	second := env.series(t, c.ID, models.SeriesTD, "")
	tp := env.series(t, c.ID, models.SeriesTP, "")
	require.Equal(t, 2, second.Number)
	require.Equal(t, 1, tp.Number)

	moved, err := env.svc.Series.UpdateSeries(ctx, second.ID, &dto.SeriesRequest{CourseID: c.ID, Type: models.SeriesTP})
	require.NoError(t, err)
	assert.Equal(t, models.SeriesTP, moved.Type)
	assert.Equal(t, 2, moved.Number)

	// same type keeps the number
	kept, err := env.svc.Series.UpdateSeries(ctx, tp.ID, &dto.SeriesRequest{CourseID: c.ID, Type: models.SeriesTP, Title: "TP1 bis"})
	require.NoError(t, err)
	assert.Equal(t, 1, kept.Number)

	course := env.reloadCourse(t, c.ID)
	assert.True(t, course.HasTD)
	assert.True(t, course.HasTP)
}

func TestViewSeriesHidesLockedSolutions(t *testing.T) {
	series := []*models.Series{
		{ID: 1, Type: models.SeriesTD, SolutionLink: "https://example.com/sol.pdf", HasSolution: true},
		{ID: 2, Type: models.SeriesTD},
	}
	locked := domain.Gate{SolutionsUnlocked: false, Enabled: true}

	student := ViewSeries(series, locked, false)
	assert.Empty(t, student[0].SolutionLink)
	assert.True(t, student[0].SolutionLocked)
	assert.True(t, student[0].HasSolution)
	assert.False(t, student[1].SolutionLocked)

	admin := ViewSeries(series, locked, true)
	assert.Equal(t, "https://example.com/sol.pdf", admin[0].SolutionLink)
	assert.False(t, admin[0].SolutionLocked)

	open := ViewSeries(series, domain.Gate{SolutionsUnlocked: true}, false)
	assert.Equal(t, "https://example.com/sol.pdf", open[0].SolutionLink)
}
