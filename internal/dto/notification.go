package dto

// NotificationListRequest 通知列表请求
type NotificationListRequest struct {
	PageRequest
	Type string `form:"type" binding:"omitempty,oneof=all like comment reply"`
}

// NotificationCountRequest 通知计数请求
type NotificationCountRequest struct {
	Type string `form:"type" binding:"omitempty,oneof=all like comment reply"`
}

// NotificationBlogInfo 通知中的博客信息
type NotificationBlogInfo struct {
	ID    uint   `json:"id"`
	Slug  string `json:"blog_id"`
	Title string `json:"title"`
}

// NotificationCommentInfo 通知中的评论信息
type NotificationCommentInfo struct {
	ID      uint   `json:"id"`
	Content string `json:"comment"`
}

// NotificationResponse 通知响应
type NotificationResponse struct {
	ID               uint                     `json:"id"`
	Type             string                   `json:"type"`
	Seen             bool                     `json:"seen"`
	CreatedAt        string                   `json:"created_at"`
	Sender           UserInfo                 `json:"user"`
	Blog             NotificationBlogInfo     `json:"blog"`
	Comment          *NotificationCommentInfo `json:"comment,omitempty"`
	RepliedOnComment *NotificationCommentInfo `json:"replied_on_comment,omitempty"`
	Reply            *NotificationCommentInfo `json:"reply,omitempty"`
}

// NotificationListResponse 通知列表响应
type NotificationListResponse struct {
	Total       int64                  `json:"total"`
	UnseenCount int64                  `json:"unseen_count"`
	List        []NotificationResponse `json:"list"`
}

// NewNotificationResponse 是否有新通知响应
type NewNotificationResponse struct {
	NewNotificationAvailable bool `json:"new_notification_available"`
}
