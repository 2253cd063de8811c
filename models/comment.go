package models

// Comment is a reply to a Post.
// It maps to the `comments` table. Comments are never edited after creation.
type Comment struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Text     string `gorm:"column:text;not null" json:"text"`
	AuthorID int64  `gorm:"column:author_id;not null" json:"author_id"`
	PostID   int64  `gorm:"column:post_id;not null" json:"post_id"`

	// Author details for display (JOIN reads only).
	AuthorName  string `gorm:"column:author_name;->" json:"author_name,omitempty"`
	AuthorEmail string `gorm:"column:author_email;->" json:"-"`
}

func (Comment) TableName() string { return "comments" }
