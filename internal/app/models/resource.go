package models

import "time"

// Resource is a course chapter ("cours") pointing at an external document
type Resource struct {
	ID            int64      `json:"id" db:"id"`
	CourseID      int64      `json:"courseId" db:"course_id"`
	ChapterNumber int        `json:"chapterNumber" db:"chapter_number"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	DocumentLink  string     `json:"documentLink" db:"document_link"`
	Date          *time.Time `json:"date,omitempty" db:"date"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
