package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/app/repositories"
	"github.com/yigit/uniportal/internal/pkg/auth"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
)

type testEnv struct {
	svc   *Services
	repos *repositories.Repositories
	state kvstore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repos := repositories.NewMemoryRepositories()
	state := kvstore.NewMemoryStore(nil)
	jwt := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "uniportal.test",
	})
	svc := NewServices(Dependencies{
		Repos:    repos,
		State:    state,
		JWT:      jwt,
		Location: time.UTC,
		Logger:   zerolog.Nop(),
	})
	return &testEnv{svc: svc, repos: repos, state: state}
}

func courseRequest(code string) *dto.CourseRequest {
	return &dto.CourseRequest{
		Code:         code,
		Name:         "Analyse " + code,
		Professor:    "Dr. Benali",
		Level:        models.LevelL1,
		Semester:     1,
		AcademicYear: "2023-2024",
		Credits:      6,
	}
}

func (e *testEnv) course(t *testing.T, code string) *models.Course {
	t.Helper()
	c, err := e.svc.Courses.CreateCourse(context.Background(), courseRequest(code))
	require.NoError(t, err)
	return c
}

func (e *testEnv) chapter(t *testing.T, courseID int64, title string) *models.Resource {
	t.Helper()
	ch, err := e.svc.Chapters.CreateChapter(context.Background(), &dto.ChapterRequest{
		CourseID:     courseID,
		Title:        title,
		DocumentLink: "https://drive.google.com/file/d/abc/view",
	})
	require.NoError(t, err)
	return ch
}

func (e *testEnv) series(t *testing.T, courseID int64, seriesType models.SeriesType, solution string) *models.Series {
	t.Helper()
	s, err := e.svc.Series.CreateSeries(context.Background(), &dto.SeriesRequest{
		CourseID:     courseID,
		Type:         seriesType,
		DocumentLink: "https://drive.google.com/file/d/series/view",
		SolutionLink: solution,
	})
	require.NoError(t, err)
	return s
}

func (e *testEnv) reloadCourse(t *testing.T, id int64) *models.Course {
	t.Helper()
	c, err := e.repos.Courses.GetByID(context.Background(), id)
	require.NoError(t, err)
	return c
}
