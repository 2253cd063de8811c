package models

// DateLayout is the display format of Post.Date, e.g. "March 03, 2024".
const DateLayout = "January 02, 2006"

// Post is a blog entry written by an admin.
// It maps to the `blog_posts` table. AuthorName is filled by joined reads only.
type Post struct {
	ID       int64   `gorm:"column:id;primaryKey" json:"id"`
	Title    string  `gorm:"column:title;size:250;not null;uniqueIndex" json:"title"`
	Subtitle string  `gorm:"column:subtitle;size:250;not null" json:"subtitle"`
	Date     string  `gorm:"column:date;size:250;not null" json:"date"`
	Body     string  `gorm:"column:body;not null" json:"body"`
	ImgURL   *string `gorm:"column:img_url;size:250" json:"img_url,omitempty"`
	AuthorID int64   `gorm:"column:author_id;not null" json:"author_id"`

	AuthorName string `gorm:"column:author_name;->" json:"author_name,omitempty"`
}

func (Post) TableName() string { return "blog_posts" }

// Image returns the image reference or "" when the post has none.
func (p *Post) Image() string {
	if p == nil || p.ImgURL == nil {
		return ""
	}
	return *p.ImgURL
}
