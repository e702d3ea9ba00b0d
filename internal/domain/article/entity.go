package article

import "time"

// Article is a portal blog post.
type Article struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Title       string     `gorm:"column:title" json:"title"`
	Slug        string     `gorm:"column:slug;uniqueIndex" json:"slug"`
	Summary     string     `gorm:"column:summary" json:"summary,omitempty"`
	Body        string     `gorm:"column:body" json:"body"`
	AuthorID    int64      `gorm:"column:author_id" json:"author_id"`
	IsPublished bool       `gorm:"column:is_published" json:"is_published"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Article) TableName() string { return "articles" }
