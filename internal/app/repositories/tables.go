package repositories

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/uniportal/internal/app/models"
	"github.com/yigit/uniportal/internal/pkg/apperrors"
)

// CourseTable maps models.Course onto the courses table
var CourseTable = &Table[models.Course]{
	Name:   "courses",
	Entity: "course",
	Columns: []string{
		"code", "name", "professor", "level", "semester", "academic_year", "status",
		"credits", "description", "has_cours", "has_td", "has_tp", "has_exam",
	},
	OrderBy: []string{"code ASC", "id ASC"},
	Scan: func(row pgx.Row) (*models.Course, error) {
		c := &models.Course{}
		err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Professor, &c.Level, &c.Semester, &c.AcademicYear,
			&c.Status, &c.Credits, &c.Description, &c.HasCours, &c.HasTD, &c.HasTP, &c.HasExam,
			&c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
	Values: func(c *models.Course) []interface{} {
		return []interface{}{c.Code, c.Name, c.Professor, string(c.Level), c.Semester, c.AcademicYear,
			string(c.Status), c.Credits, c.Description, c.HasCours, c.HasTD, c.HasTP, c.HasExam}
	},
	ID:      func(c *models.Course) int64 { return c.ID },
	SetID:   func(c *models.Course, id int64) { c.ID = id },
	Stamp:   func(c *models.Course, created, updated time.Time) { c.CreatedAt, c.UpdatedAt = created, updated },
	Created: func(c *models.Course) time.Time { return c.CreatedAt },
	Less: func(a, b *models.Course) bool {
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ID < b.ID
	},
	NotFound: apperrors.ErrCourseNotFound,
	Conflict: func(string) error { return apperrors.ErrCourseCodeExists },
	Unique: func(a, b *models.Course) bool {
		return strings.EqualFold(a.Code, b.Code)
	},
}

// ResourceTable maps models.Resource onto the resources table
var ResourceTable = &Table[models.Resource]{
	Name:         "resources",
	Entity:       "chapter",
	Columns:      []string{"course_id", "chapter_number", "title", "description", "document_link", "date"},
	ParentColumn: "course_id",
	OrderBy:      []string{"chapter_number ASC", "id ASC"},
	Scan: func(row pgx.Row) (*models.Resource, error) {
		r := &models.Resource{}
		err := row.Scan(&r.ID, &r.CourseID, &r.ChapterNumber, &r.Title, &r.Description, &r.DocumentLink,
			&r.Date, &r.CreatedAt, &r.UpdatedAt)
		return r, err
	},
	Values: func(r *models.Resource) []interface{} {
		return []interface{}{r.CourseID, r.ChapterNumber, r.Title, r.Description, r.DocumentLink, r.Date}
	},
	ID:      func(r *models.Resource) int64 { return r.ID },
	SetID:   func(r *models.Resource, id int64) { r.ID = id },
	Parent:  func(r *models.Resource) int64 { return r.CourseID },
	Stamp:   func(r *models.Resource, created, updated time.Time) { r.CreatedAt, r.UpdatedAt = created, updated },
	Created: func(r *models.Resource) time.Time { return r.CreatedAt },
	Less: func(a, b *models.Resource) bool {
		if a.ChapterNumber != b.ChapterNumber {
			return a.ChapterNumber < b.ChapterNumber
		}
		return a.ID < b.ID
	},
	NotFound: apperrors.ErrChapterNotFound,
}

var seriesTypeOrder = map[models.SeriesType]int{models.SeriesTD: 0, models.SeriesTP: 1, models.SeriesExam: 2}

// SeriesTable maps models.Series onto the series table
var SeriesTable = &Table[models.Series]{
	Name:   "series",
	Entity: "series",
	Columns: []string{
		"course_id", "type", "number", "title", "document_link", "solution_link", "has_solution", "date",
	},
	ParentColumn: "course_id",
	OrderBy:      []string{"CASE type WHEN 'TD' THEN 0 WHEN 'TP' THEN 1 ELSE 2 END", "number ASC", "id ASC"},
	Scan: func(row pgx.Row) (*models.Series, error) {
		s := &models.Series{}
		err := row.Scan(&s.ID, &s.CourseID, &s.Type, &s.Number, &s.Title, &s.DocumentLink, &s.SolutionLink,
			&s.HasSolution, &s.Date, &s.CreatedAt, &s.UpdatedAt)
		return s, err
	},
	Values: func(s *models.Series) []interface{} {
		return []interface{}{s.CourseID, string(s.Type), s.Number, s.Title, s.DocumentLink, s.SolutionLink,
			s.HasSolution, s.Date}
	},
	ID:      func(s *models.Series) int64 { return s.ID },
	SetID:   func(s *models.Series, id int64) { s.ID = id },
	Parent:  func(s *models.Series) int64 { return s.CourseID },
	Stamp:   func(s *models.Series, created, updated time.Time) { s.CreatedAt, s.UpdatedAt = created, updated },
	Created: func(s *models.Series) time.Time { return s.CreatedAt },
	Less: func(a, b *models.Series) bool {
		if a.Type != b.Type {
			return seriesTypeOrder[a.Type] < seriesTypeOrder[b.Type]
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID < b.ID
	},
	NotFound: apperrors.ErrSeriesNotFound,
}

// PaymentTable maps models.Payment onto the payments table
var PaymentTable = &Table[models.Payment]{
	Name:         "payments",
	Entity:       "payment",
	Columns:      []string{"user_id", "amount", "currency", "method", "status", "reference", "paid_at"},
	ParentColumn: "user_id",
	OrderBy:      []string{"created_at DESC", "id DESC"},
	Scan: func(row pgx.Row) (*models.Payment, error) {
		p := &models.Payment{}
		err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.Reference,
			&p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	},
	Values: func(p *models.Payment) []interface{} {
		return []interface{}{p.UserID, p.Amount, p.Currency, p.Method, string(p.Status), p.Reference, p.PaidAt}
	},
	ID:      func(p *models.Payment) int64 { return p.ID },
	SetID:   func(p *models.Payment, id int64) { p.ID = id },
	Parent:  func(p *models.Payment) int64 { return p.UserID },
	Stamp:   func(p *models.Payment, created, updated time.Time) { p.CreatedAt, p.UpdatedAt = created, updated },
	Created: func(p *models.Payment) time.Time { return p.CreatedAt },
	Less: func(a, b *models.Payment) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	},
	NotFound: apperrors.ErrPaymentNotFound,
}

// UserTable maps models.User onto the users table
var UserTable = &Table[models.User]{
	Name:   "users",
	Entity: "user",
	Columns: []string{
		"email", "password", "display_name", "first_name", "last_name", "phone", "address",
		"level", "role", "is_active", "last_login_at",
	},
	OrderBy: []string{"email ASC"},
	Scan: func(row pgx.Row) (*models.User, error) {
		u := &models.User{}
		err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.FirstName, &u.LastName, &u.Phone,
			&u.Address, &u.Level, &u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
		return u, err
	},
	Values: func(u *models.User) []interface{} {
		return []interface{}{u.Email, u.Password, u.DisplayName, u.FirstName, u.LastName, u.Phone, u.Address,
			string(u.Level), string(u.Role), u.IsActive, u.LastLoginAt}
	},
	ID:       func(u *models.User) int64 { return u.ID },
	SetID:    func(u *models.User, id int64) { u.ID = id },
	Stamp:    func(u *models.User, created, updated time.Time) { u.CreatedAt, u.UpdatedAt = created, updated },
	Created:  func(u *models.User) time.Time { return u.CreatedAt },
	Less:     func(a, b *models.User) bool { return a.Email < b.Email },
	NotFound: apperrors.ErrUserNotFound,
	Conflict: func(string) error { return apperrors.ErrEmailAlreadyExists },
	Unique: func(a, b *models.User) bool {
		return strings.EqualFold(a.Email, b.Email)
	},
}
