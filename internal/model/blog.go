package model

import (
	"time"
)

// ContentBlock 结构化内容块
type ContentBlock struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// Blog 博客模型
type Blog struct {
	Base
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"blog_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:varchar(200)" json:"description"`
	Banner      string         `gorm:"type:varchar(255)" json:"banner"`
	Content     []ContentBlock `gorm:"serializer:json;type:text" json:"content"`
	Tags        []string       `gorm:"serializer:json;type:text" json:"tags"`
	Draft       bool           `gorm:"not null;default:false;index" json:"draft"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	PublishedAt time.Time      `gorm:"index" json:"published_at"`

	// 冗余计数，只通过原子增量维护
	TotalLikes          int64 `gorm:"not null;default:0" json:"total_likes"`
	TotalReads          int64 `gorm:"not null;default:0" json:"total_reads"`
	TotalComments       int64 `gorm:"not null;default:0" json:"total_comments"`
	TotalParentComments int64 `gorm:"not null;default:0" json:"total_parent_comments"`

	// 关联
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName 指定表名
func (Blog) TableName() string {
	return "blogs"
}
