package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniportal/internal/app/models"
)

func TestIntersects(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"2022-2023", "2023-2024", false},
		{"2023-2024", "2023-2024", true},
		{"2020-2023", "2021-2022", true},
		{"2021-2022", "2020-2023", true},
		{"2019-2020", "2023-2024", false},
		{"garbage", "2023-2024", false},
		{"2024-2023", "2023-2024", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Intersects(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}

func TestCurrentAcademicYear(t *testing.T) {
	assert.Equal(t, "2023-2024", CurrentAcademicYear(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-2025", CurrentAcademicYear(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPercentage(t *testing.T) {
	p := models.CourseProgress{TotalChapters: 4, ViewedChapters: []int64{1, 2}}
	assert.Equal(t, 50, Percentage(p))

	assert.Equal(t, 0, Percentage(models.CourseProgress{}))
	assert.Equal(t, 0, Percentage(models.CourseProgress{ViewedTD: []int64{9}}))

	over := models.CourseProgress{TotalTD: 1, ViewedTD: []int64{1, 2, 3}}
	assert.Equal(t, 100, Percentage(over))

	third := models.CourseProgress{TotalChapters: 3, ViewedChapters: []int64{1}}
	assert.Equal(t, 33, Percentage(third))
}

func TestMarkViewedIdempotent(t *testing.T) {
	p := models.CourseProgress{TotalChapters: 4}
	assert.True(t, MarkViewed(&p, models.KindChapter, 7))
	before := Percentage(p)
	assert.False(t, MarkViewed(&p, models.KindChapter, 7))
	assert.Equal(t, before, Percentage(p))
	assert.Len(t, p.ViewedChapters, 1)
	assert.True(t, IsViewed(p, models.KindChapter, 7))
	assert.False(t, IsViewed(p, models.KindTD, 7))
	assert.False(t, MarkViewed(&p, models.ContentKind("bogus"), 1))
}

func TestReconcilePrunesMissing(t *testing.T) {
	p := models.CourseProgress{
		ViewedChapters: []int64{1, 2, 3},
		ViewedExams:    []int64{10},
		TotalChapters:  9,
	}
	pruned := Reconcile(&p, CourseContent{Chapters: []int64{1, 3}, TD: []int64{5}})
	assert.Equal(t, 2, pruned)
	assert.Equal(t, []int64{1, 3}, p.ViewedChapters)
	assert.Empty(t, p.ViewedExams)
	assert.Equal(t, 2, p.TotalChapters)
	assert.Equal(t, 1, p.TotalTD)
	assert.Equal(t, 0, p.TotalExams)
	assert.Equal(t, 67, Percentage(p))
}

func TestNormalize(t *testing.T) {
	p := models.CourseProgress{ViewedTP: []int64{3, 1, 3}}
	Normalize(&p)
	assert.Equal(t, []int64{1, 3}, p.ViewedTP)
	assert.NotNil(t, p.ViewedChapters)
}

func TestEvaluateGate(t *testing.T) {
	target := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	settings := &models.ExamSettings{TargetDate: target, Enabled: true}

	locked := EvaluateGate(settings, nil, target.Add(-time.Second))
	assert.False(t, locked.SolutionsUnlocked)
	assert.Equal(t, "01/06/2024 09:30", locked.UnlockDate)

	assert.True(t, EvaluateGate(settings, nil, target).SolutionsUnlocked)
	assert.True(t, EvaluateGate(settings, nil, target.Add(time.Hour)).SolutionsUnlocked)

	disabled := *settings
	disabled.Enabled = false
	assert.True(t, EvaluateGate(&disabled, nil, target.Add(-time.Hour)).SolutionsUnlocked)

	assert.True(t, EvaluateGate(nil, nil, target).SolutionsUnlocked)
	assert.True(t, EvaluateGate(settings, errors.New("read failed"), target.Add(-time.Hour)).SolutionsUnlocked)
}

func TestFilterCourses(t *testing.T) {
	courses := []*models.Course{
		{ID: 1, Code: "INF101", Name: "Algorithmique", Professor: "Benali", Level: models.LevelL1, Semester: 1, AcademicYear: "2023-2024"},
		{ID: 2, Code: "INF201", Name: "Logique", Professor: "Haddad", Level: models.LevelL2, Semester: 2, AcademicYear: "2022-2023"},
		{ID: 3, Code: "MAT101", Name: "Analyse", Professor: "benali", Level: models.LevelL1, Semester: 2, AcademicYear: "2020-2024"},
	}

	got := FilterCourses(courses, CourseFilter{Level: models.LevelL1})
	assert.Len(t, got, 2)

	got = FilterCourses(courses, CourseFilter{AcademicYear: "2023-2024"})
	assert.Len(t, got, 2)

	got = FilterCourses(courses, CourseFilter{Search: "BENALI", Semester: 2})
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)

	got = FilterCourses(courses, CourseFilter{BookmarkedOnly: true, Bookmarks: map[int64]bool{2: true}})
	require.Len(t, got, 1)
	assert.Equal(t, "INF201", got[0].Code)
}

func TestSortCoursesStable(t *testing.T) {
	courses := []*models.Course{
		{ID: 1, Code: "B", Credits: 4},
		{ID: 2, Code: "A", Credits: 6},
		{ID: 3, Code: "C", Credits: 4},
		{ID: 4, Code: "D", Credits: 6},
	}
	byCredits := SortCourses(courses, SortByCredits)
	ids := make([]int64, 0, len(byCredits))
	for _, c := range byCredits {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []int64{2, 4, 1, 3}, ids)

	byCode := SortCourses(courses, SortByCode)
	assert.Equal(t, "A", byCode[0].Code)
	assert.Equal(t, int64(1), courses[0].ID, "input must not be reordered")

	key, ok := ParseCourseSortKey("Professor")
	assert.True(t, ok)
	assert.Equal(t, SortByProfessor, key)
	_, ok = ParseCourseSortKey("rating")
	assert.False(t, ok)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, info := Paginate(items, PageRequest{Page: 3, Size: 10})
	assert.Equal(t, []int{20, 21, 22, 23, 24}, page)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 25, info.TotalItems)

	page, info = Paginate(items, PageRequest{Page: 9, Size: 10})
	assert.Empty(t, page)
	assert.Equal(t, 9, info.CurrentPage)

	_, info = Paginate(items, PageRequest{Page: 0, Size: -3})
	assert.Equal(t, DefaultPageSize, info.PageSize)
	assert.Equal(t, 1, info.CurrentPage)

	many := make([]int, 150)
	page, info = Paginate(many, PageRequest{Page: 1, Size: 500})
	assert.Len(t, page, MaxPageSize)
	assert.Equal(t, MaxPageSize, info.PageSize)
	assert.Equal(t, 2, info.TotalPages)

	_, info = Paginate([]int{}, PageRequest{})
	assert.Equal(t, 1, info.TotalPages)
}

func TestExportCSV(t *testing.T) {
	courses := []*models.Course{
		{Code: "INF101", Name: `Intro "C"`, Semester: 1},
		{Code: "INF102", Name: "Réseaux, avancés", Semester: 2},
	}
	out := ExportCSV(courses, CourseColumns)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(courses)+1)
	assert.True(t, strings.HasPrefix(lines[0], `"Code","Name"`))
	assert.Contains(t, lines[1], `"Intro ""C"""`)
	assert.Contains(t, lines[2], `"Réseaux, avancés"`)

	empty := ExportCSV([]*models.Course{}, CourseColumns)
	assert.Equal(t, 1, strings.Count(empty, "\n"))

	multiline := ExportCSV([]*models.User{{Email: "a@b.c", DisplayName: "two\nlines"}}, UserColumns)
	assert.Equal(t, 2, strings.Count(multiline, "\n"))
}

func TestGenerateSeriesTitle(t *testing.T) {
	assert.Equal(t, "TD1 : Logique : 2023-2024", GenerateSeriesTitle(TitleInput{
		Type: models.SeriesTD, Language: "fr", Number: 1, ChapterTitle: "Logique", AcademicYear: "2023-2024",
	}))
	assert.Equal(t, "Examen2 : 2023-2024", GenerateSeriesTitle(TitleInput{
		Type: models.SeriesExam, Language: "fr", Number: 2, AcademicYear: "2023-2024",
	}))
	assert.Equal(t, "Exam1", GenerateSeriesTitle(TitleInput{Type: models.SeriesExam, Language: "en", Number: 1}))
	assert.Equal(t, "TP", GenerateSeriesTitle(TitleInput{Type: models.SeriesTP}))
}

func TestPreviewURL(t *testing.T) {
	assert.Equal(t, "https://drive.google.com/file/d/abc_123/preview",
		PreviewURL("https://drive.google.com/file/d/abc_123/view?usp=sharing"))
	assert.Equal(t, "https://drive.google.com/file/d/XYZ/preview",
		PreviewURL("https://drive.google.com/open?id=XYZ"))
	assert.Equal(t, "https://example.com/doc.pdf", PreviewURL("https://example.com/doc.pdf"))
	assert.Equal(t, "", PreviewURL(""))
}
