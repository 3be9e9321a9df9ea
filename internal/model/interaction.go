package model

// BlogLike 博客点赞模型
type BlogLike struct {
	Base
	UserID uint `gorm:"not null;index:idx_blog_like_user_blog,unique" json:"user_id"`
	BlogID uint `gorm:"not null;index:idx_blog_like_user_blog,unique" json:"blog_id"`

	// 关联
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

// TableName 指定表名
func (BlogLike) TableName() string {
	return "blog_likes"
}
