package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/migrations"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

// testPool connects to TEST_POSTGRES_DSN and applies the migrations; the test is skipped without it.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, m.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))
	_, err = pool.Exec(ctx, "TRUNCATE courses, users, counters, settings, user_state RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return pool
}

func TestPostgresCourseAndChapters(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	course := &models.Course{Code: "INF101", Name: "Algo", Level: models.LevelL1, Semester: 1,
		AcademicYear: "2023-2024", Status: models.CourseStatusActive}
	id, err := repos.Courses.Create(ctx, course)
	require.NoError(t, err)

	_, err = repos.Courses.Create(ctx, &models.Course{Code: "INF101", Name: "dup", Level: models.LevelL1,
		Semester: 1, AcademicYear: "2023-2024", Status: models.CourseStatusActive})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	for n := 1; n <= 2; n++ {
		_, err := repos.Chapters.Create(ctx, &models.Resource{CourseID: id, ChapterNumber: n, Title: "ch"})
		require.NoError(t, err)
	}
	chapters, err := repos.Chapters.GetByParent(ctx, id)
	require.NoError(t, err)
	assert.Len(t, chapters, 2)

	require.NoError(t, repos.Courses.Delete(ctx, id))
	chapters, err = repos.Chapters.GetByParent(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestPostgresCounter(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	counters := NewPostgresCounterRepository(pool)

	first, err := counters.NextSequence(ctx, ChapterCounterKey(1))
	require.NoError(t, err)
	second, err := counters.NextSequence(ctx, ChapterCounterKey(1))
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}
