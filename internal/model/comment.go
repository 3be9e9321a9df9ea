package model

// Comment 评论模型
// 不变式: IsReply 为真当且仅当 ParentID 非空；
// 子评论通过 parent_id 外键挂在父评论下。
type Comment struct {
	Base
	BlogID       uint   `gorm:"not null;index" json:"blog_id"`
	BlogAuthorID uint   `gorm:"not null;index" json:"blog_author_id"` // 冗余，用于通知路由
	Content      string `gorm:"type:text;not null" json:"content"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	ParentID     *uint  `gorm:"index" json:"parent_id"`
	IsReply      bool   `gorm:"not null;default:false" json:"is_reply"`

	// 关联
	User     User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Parent   *Comment   `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []*Comment `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
