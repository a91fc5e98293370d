package models

import "time"

// CourseStatus is the lifecycle state shown on the dashboard
type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "Active"
	CourseStatusCompleted CourseStatus = "Completed"
	CourseStatusUpcoming  CourseStatus = "Upcoming"
)

// IsValid reports whether the status is known
func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusActive, CourseStatusCompleted, CourseStatusUpcoming:
		return true
	}
	return false
}

// Course is a module taught in one level, semester and academic year
type Course struct {
	ID           int64        `json:"id" db:"id"`
	Code         string       `json:"code" db:"code"`
	Name         string       `json:"name" db:"name"`
	Professor    string       `json:"professor" db:"professor"`
	Level        Level        `json:"level" db:"level"`
	Semester     int          `json:"semester" db:"semester"`
	AcademicYear string       `json:"academicYear" db:"academic_year"`
	Status       CourseStatus `json:"status" db:"status"`
	Credits      int          `json:"credits" db:"credits"`
	Description  string       `json:"description" db:"description"`
	HasCours     bool         `json:"hasCours" db:"has_cours"`
	HasTD        bool         `json:"hasTD" db:"has_td"`
	HasTP        bool         `json:"hasTP" db:"has_tp"`
	HasExam      bool         `json:"hasExam" db:"has_exam"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}
