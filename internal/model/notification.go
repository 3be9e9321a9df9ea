package model

// 通知类型
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeReply   = "reply"
)

// Notification 通知模型
type Notification struct {
	Base
	Type     string `gorm:"type:varchar(20);not null;index" json:"type"` // like comment reply
	BlogID   uint   `gorm:"not null;index" json:"blog_id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`   // 接收者
	SenderID uint   `gorm:"not null;index" json:"sender_id"` // 触发者
	Seen     bool   `gorm:"not null;default:false;index" json:"seen"`

	CommentID          *uint `gorm:"index" json:"comment_id"`
	RepliedOnCommentID *uint `json:"replied_on_comment_id"`
	ReplyID            *uint `gorm:"index" json:"reply_id"`

	// 关联
	Blog             Blog     `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
	User             User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Sender           User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Comment          *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
	RepliedOnComment *Comment `gorm:"foreignKey:RepliedOnCommentID" json:"replied_on_comment,omitempty"`
	Reply            *Comment `gorm:"foreignKey:ReplyID" json:"reply,omitempty"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
