package models

import (
	"strings"
	"time"
)

// SeriesType tags a series as tutorial, lab or exam material
type SeriesType string

const (
	SeriesTD   SeriesType = "TD"
	SeriesTP   SeriesType = "TP"
	SeriesExam SeriesType = "Exam"
)

// SeriesTypes lists the types in display order
var SeriesTypes = []SeriesType{SeriesTD, SeriesTP, SeriesExam}

// ParseSeriesType accepts the canonical spelling case-insensitively
func ParseSeriesType(s string) (SeriesType, bool) {
	for _, t := range SeriesTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Series is a TD, TP or exam sheet, optionally with a solution
type Series struct {
	ID           int64      `json:"id" db:"id"`
	CourseID     int64      `json:"courseId" db:"course_id"`
	Type         SeriesType `json:"type" db:"type"`
	Number       int        `json:"number" db:"number"`
	Title        string     `json:"title" db:"title"`
	DocumentLink string     `json:"documentLink" db:"document_link"`
	SolutionLink string     `json:"solutionLink" db:"solution_link"`
	HasSolution  bool       `json:"hasSolution" db:"has_solution"`
	Date         *time.Time `json:"date,omitempty" db:"date"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}
