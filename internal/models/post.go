package models

// Display formats stamped onto posts and comments at creation time.
// Dates read like "April 02, 2025"; comment times like "14:05:09".
const (
	DateFormat = "January 02, 2006"
	TimeFormat = "15:04:05"
)

// BlogPost represents a published article
type BlogPost struct {
	ID       int64  `json:"id" db:"id"`
	AuthorID int64  `json:"author_id" db:"author_id"`
	Title    string `json:"title" db:"title"`
	Subtitle string `json:"subtitle" db:"subtitle"`
	Date     string `json:"date" db:"date"`
	Body     string `json:"body" db:"body"`
	ImgURL   string `json:"img_url" db:"img_url"`

	// AuthorName is joined in on reads, never written
	AuthorName string `json:"author_name,omitempty" db:"-"`
}
