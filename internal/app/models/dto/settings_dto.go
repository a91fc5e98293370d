package dto

import "time"

// ExamSettingsRequest replaces the exam settings.
// TargetDate accepts RFC 3339, "2006-01-02T15:04" or "02/01/2006 15:04".
type ExamSettingsRequest struct {
	TargetDate   string `json:"targetDate" binding:"required" example:"2024-06-01T09:00"`
	Enabled      bool   `json:"enabled"`
	AcademicYear string `json:"academicYear" binding:"omitempty,academicyear"`
}

// ExamSettingsResponse is the admin view of the exam settings
type ExamSettingsResponse struct {
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	Enabled      bool       `json:"enabled"`
	AcademicYear string     `json:"academicYear"`
	UpdatedBy    int64      `json:"updatedBy,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}
