package domain

import (
	"strconv"
	"strings"

	"github.com/yigit/uniportal/internal/app/models"
)

// TitleSeparator joins the parts of a generated series title
const TitleSeparator = " : "

// TitleInput holds the parts of a generated series title
type TitleInput struct {
	Type         models.SeriesType
	Language     string
	Number       int
	ChapterTitle string
	AcademicYear string
}

// SeriesLabel returns the display label of a series type in the given language
func SeriesLabel(t models.SeriesType, lang string) string {
	switch t {
	case models.SeriesTD:
		return "TD"
	case models.SeriesTP:
		return "TP"
	case models.SeriesExam:
		if strings.HasPrefix(strings.ToLower(lang), "en") {
			return "Exam"
		}
		return "Examen"
	}
	return string(t)
}

// GenerateSeriesTitle builds "<label><number> : <chapter> : <year>", skipping empty parts.
// A non-positive number leaves the label bare.
func GenerateSeriesTitle(in TitleInput) string {
	head := SeriesLabel(in.Type, in.Language)
	if in.Number > 0 {
		head += strconv.Itoa(in.Number)
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{head, in.ChapterTitle, in.AcademicYear} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, TitleSeparator)
}
