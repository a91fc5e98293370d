package models

// ContentKind identifies which viewed-set an item belongs to
type ContentKind string

const (
	KindChapter ContentKind = "chapter"
	KindTD      ContentKind = "td"
	KindTP      ContentKind = "tp"
	KindExam    ContentKind = "exam"
)

// ContentKinds lists every kind tracked by course progress
var ContentKinds = []ContentKind{KindChapter, KindTD, KindTP, KindExam}

// KindForSeries maps a series type onto its viewed-set
func KindForSeries(t SeriesType) ContentKind {
	switch t {
	case SeriesTD:
		return KindTD
	case SeriesTP:
		return KindTP
	default:
		return KindExam
	}
}

// CourseProgress is the per-user, per-course record of viewed items.
// Stored in the user state store, never in the course tables.
type CourseProgress struct {
	ViewedChapters []int64 `json:"viewedChapters"`
	ViewedTD       []int64 `json:"viewedTD"`
	ViewedTP       []int64 `json:"viewedTP"`
	ViewedExams    []int64 `json:"viewedExams"`
	TotalChapters  int     `json:"totalChapters"`
	TotalTD        int     `json:"totalTD"`
	TotalTP        int     `json:"totalTP"`
	TotalExams     int     `json:"totalExams"`
}
