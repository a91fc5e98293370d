package domain

import (
	"math"
	"sort"

	"github.com/yigit/uniportal/internal/app/models"
)

// CourseContent lists the ids of every item currently attached to a course
type CourseContent struct {
	Chapters []int64
	TD       []int64
	TP       []int64
	Exams    []int64
}

// IDs returns the ids of the given kind
func (c CourseContent) IDs(kind models.ContentKind) []int64 {
	switch kind {
	case models.KindChapter:
		return c.Chapters
	case models.KindTD:
		return c.TD
	case models.KindTP:
		return c.TP
	case models.KindExam:
		return c.Exams
	}
	return nil
}

// Contains reports whether id is part of the course content of that kind
func (c CourseContent) Contains(kind models.ContentKind, id int64) bool {
	for _, existing := range c.IDs(kind) {
		if existing == id {
			return true
		}
	}
	return false
}

// Percentage returns the 0-100 completion of a course.
// It is 0 when the course has no content.
func Percentage(p models.CourseProgress) int {
	total := p.TotalChapters + p.TotalTD + p.TotalTP + p.TotalExams
	if total <= 0 {
		return 0
	}
	viewed := len(p.ViewedChapters) + len(p.ViewedTD) + len(p.ViewedTP) + len(p.ViewedExams)
	pct := int(math.Round(100 * float64(viewed) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func viewedSet(p *models.CourseProgress, kind models.ContentKind) *[]int64 {
	switch kind {
	case models.KindChapter:
		return &p.ViewedChapters
	case models.KindTD:
		return &p.ViewedTD
	case models.KindTP:
		return &p.ViewedTP
	case models.KindExam:
		return &p.ViewedExams
	}
	return nil
}

// MarkViewed adds id to the viewed set of kind. Adding an id twice is a no-op;
// the return value tells whether the set changed.
func MarkViewed(p *models.CourseProgress, kind models.ContentKind, id int64) bool {
	set := viewedSet(p, kind)
	if set == nil {
		return false
	}
	for _, existing := range *set {
		if existing == id {
			return false
		}
	}
	*set = append(*set, id)
	return true
}

// IsViewed reports whether id is in the viewed set of kind
func IsViewed(p models.CourseProgress, kind models.ContentKind, id int64) bool {
	set := viewedSet(&p, kind)
	if set == nil {
		return false
	}
	for _, existing := range *set {
		if existing == id {
			return true
		}
	}
	return false
}

// Reconcile overwrites the totals with the current content counts and drops
// viewed ids whose item no longer exists. It returns the number of pruned ids.
func Reconcile(p *models.CourseProgress, content CourseContent) int {
	p.TotalChapters = len(content.Chapters)
	p.TotalTD = len(content.TD)
	p.TotalTP = len(content.TP)
	p.TotalExams = len(content.Exams)

	pruned := 0
	for _, kind := range models.ContentKinds {
		set := viewedSet(p, kind)
		current := make(map[int64]struct{}, len(content.IDs(kind)))
		for _, id := range content.IDs(kind) {
			current[id] = struct{}{}
		}
		kept := (*set)[:0]
		for _, id := range *set {
			if _, ok := current[id]; ok {
				kept = append(kept, id)
			} else {
				pruned++
			}
		}
		*set = kept
	}
	return pruned
}

// Normalize deduplicates and sorts every viewed set, and replaces nil sets
// with empty ones so the stored JSON always carries arrays.
func Normalize(p *models.CourseProgress) {
	for _, kind := range models.ContentKinds {
		set := viewedSet(p, kind)
		seen := make(map[int64]struct{}, len(*set))
		out := make([]int64, 0, len(*set))
		for _, id := range *set {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		*set = out
	}
}
