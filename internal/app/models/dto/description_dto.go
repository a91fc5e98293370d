package dto

// ChapterDescriptionRequest asks for a drafted chapter description
type ChapterDescriptionRequest struct {
	Title      string `json:"title" binding:"required"`
	CourseName string `json:"courseName" binding:"required"`
	Professor  string `json:"professor"`
}

// SeriesDescriptionRequest asks for a drafted series description
type SeriesDescriptionRequest struct {
	Title      string `json:"title" binding:"required"`
	Type       string `json:"type" binding:"required,seriestype"`
	CourseName string `json:"courseName" binding:"required"`
}

// DescriptionResponse carries a drafted description
type DescriptionResponse struct {
	Description string `json:"description"`
	HTML        string `json:"html"`
}

// PreviewResponse is the embeddable form of a document link
type PreviewResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	EmbedURL string `json:"embedUrl"`
}
