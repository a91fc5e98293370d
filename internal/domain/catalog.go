package domain

import (
	"math"
	"sort"
	"strings"

	"github.com/yigit/uniportal/internal/app/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Filter returns the items matching pred, preserving order
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// SortStable returns a stably sorted copy of items
func SortStable[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// ContainsFold reports whether any field contains needle, ignoring case.
// An empty needle matches everything.
func ContainsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// PageRequest is a 1-based page number and a page size
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to valid bounds
func (r PageRequest) Normalize() PageRequest {
	switch {
	case r.Size <= 0:
		r.Size = DefaultPageSize
	case r.Size > MaxPageSize:
		r.Size = MaxPageSize
	}
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	return r
}

// PageInfo describes the page returned by Paginate
type PageInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
}

// Paginate slices items with offset/limit semantics
func Paginate[T any](items []T, req PageRequest) ([]T, PageInfo) {
	req = req.Normalize()
	total := len(items)

	start := (req.Page - 1) * req.Size
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}

	totalPages := int(math.Ceil(float64(total) / float64(req.Size)))
	if totalPages == 0 {
		totalPages = 1
	}

	return items[start:end], PageInfo{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		PageSize:    req.Size,
		TotalItems:  total,
	}
}

// CourseFilter holds the dashboard and admin-table predicates.
// Zero values disable a predicate; the active ones are AND-combined.
type CourseFilter struct {
	Level          models.Level
	Semester       int
	AcademicYear   string
	Search         string
	Status         models.CourseStatus
	BookmarkedOnly bool
	Bookmarks      map[int64]bool
}

// Matches reports whether the course satisfies every active predicate
func (f CourseFilter) Matches(c *models.Course) bool {
	if c == nil {
		return false
	}
	if f.Level != "" && c.Level != f.Level {
		return false
	}
	if f.Semester != 0 && c.Semester != f.Semester {
		return false
	}
	if f.AcademicYear != "" && !Intersects(c.AcademicYear, f.AcademicYear) {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.BookmarkedOnly && !f.Bookmarks[c.ID] {
		return false
	}
	return ContainsFold(f.Search, c.Code, c.Name, c.Professor)
}

// FilterCourses applies f to courses
func FilterCourses(courses []*models.Course, f CourseFilter) []*models.Course {
	return Filter(courses, f.Matches)
}

// CourseSortKey selects the course comparator
type CourseSortKey string

const (
	SortByCode      CourseSortKey = "code"
	SortByName      CourseSortKey = "name"
	SortByProfessor CourseSortKey = "professor"
	SortByCredits   CourseSortKey = "credits"
)

// ParseCourseSortKey accepts a known key, falling back to code
func ParseCourseSortKey(s string) (CourseSortKey, bool) {
	switch CourseSortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByCode, "":
		return SortByCode, true
	case SortByName:
		return SortByName, true
	case SortByProfessor:
		return SortByProfessor, true
	case SortByCredits:
		return SortByCredits, true
	}
	return SortByCode, false
}

// SortCourses returns a stably sorted copy: text keys ascending, credits descending
func SortCourses(courses []*models.Course, key CourseSortKey) []*models.Course {
	var less func(a, b *models.Course) bool
	switch key {
	case SortByName:
		less = func(a, b *models.Course) bool { return a.Name < b.Name }
	case SortByProfessor:
		less = func(a, b *models.Course) bool { return a.Professor < b.Professor }
	case SortByCredits:
		less = func(a, b *models.Course) bool { return a.Credits > b.Credits }
	default:
		less = func(a, b *models.Course) bool { return a.Code < b.Code }
	}
	return SortStable(courses, less)
}

// UserFilter holds the admin users table predicates
type UserFilter struct {
	Search string
	Role   models.Role
	Level  models.Level
}

// Matches reports whether the user satisfies every active predicate
func (f UserFilter) Matches(u *models.User) bool {
	if u == nil {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Level != "" && u.Level != f.Level {
		return false
	}
	return ContainsFold(f.Search, u.Email, u.DisplayName, u.FirstName+" "+u.LastName)
}

// SortUsers sorts by email or display name, ascending and stable
func SortUsers(users []*models.User, key string) []*models.User {
	if strings.EqualFold(key, "displayName") {
		return SortStable(users, func(a, b *models.User) bool { return a.DisplayName < b.DisplayName })
	}
	return SortStable(users, func(a, b *models.User) bool { return a.Email < b.Email })
}

// PaymentFilter holds the admin payments table predicates
type PaymentFilter struct {
	Status models.PaymentStatus
	UserID int64
}

// Matches reports whether the payment satisfies every active predicate
func (f PaymentFilter) Matches(p *models.Payment) bool {
	if p == nil {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return f.UserID == 0 || p.UserID == f.UserID
}
