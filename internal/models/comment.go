package models

// Comment represents a reader comment on a blog post. Comments are immutable
// once written; there is no edit or delete surface for them.
type Comment struct {
	ID       int64  `json:"id" db:"id"`
	AuthorID int64  `json:"author_id" db:"author_id"`
	PostID   int64  `json:"post_id" db:"post_id"`
	Text     string `json:"text" db:"text"`
	Date     string `json:"date" db:"date"`
	Time     string `json:"time" db:"time"`

	// AuthorName is joined in on reads, never written
	AuthorName string `json:"author_name,omitempty" db:"-"`
}
