package model

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

type BlogPost struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`

	TitleHy string `gorm:"type:varchar(255);not null" json:"title_hy"`
	TitleRu string `gorm:"type:varchar(255);not null" json:"title_ru"`
	TitleEn string `gorm:"type:varchar(255);not null" json:"title_en"`

	BodyHy string `gorm:"type:text" json:"body_hy"`
	BodyRu string `gorm:"type:text" json:"body_ru"`
	BodyEn string `gorm:"type:text" json:"body_en"`

	AuthorID   string  `gorm:"type:uuid;not null;index" json:"author_id"`
	CategoryID *string `gorm:"type:uuid;index" json:"category_id"`

	Status PostStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//公開記事の閲覧ごとに加算（best-effort）
	Views int64 `gorm:"not null;default:0" json:"views"`

	Author   *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *BlogCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []BlogTag     `gorm:"many2many:post_tags" json:"tags,omitempty"`

	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
