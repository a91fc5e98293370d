package models

import "time"

// ExamSettings is the singleton record gating solution visibility
type ExamSettings struct {
	TargetDate   time.Time `json:"targetDate" db:"target_date"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	AcademicYear string    `json:"academicYear" db:"academic_year"`
	UpdatedBy    int64     `json:"updatedBy,omitempty" db:"updated_by"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
