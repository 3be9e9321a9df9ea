package dto

// CommentCreateRequest 创建评论请求
// NotificationID 仅在回复通知里的评论时携带，
// 用于把新回复回填到那条通知的 reply 字段。
type CommentCreateRequest struct {
	BlogSlug       string `json:"blog_id" binding:"required"`
	Content        string `json:"comment" binding:"required,min=1,max=1000"`
	ParentID       *uint  `json:"replying_to"`
	NotificationID *uint  `json:"notification_id"`
}

// CommentListRequest 评论列表请求
type CommentListRequest struct {
	PageRequest
	BlogSlug string `form:"blog_id" binding:"required"`
}

// ReplyListRequest 回复列表请求
type ReplyListRequest struct {
	PageRequest
}

// CommentUserInfo 评论用户信息
type CommentUserInfo struct {
	ID       uint   `json:"id"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID            uint              `json:"id"`
	Content       string            `json:"comment"`
	BlogID        uint              `json:"blog_id"`
	UserID        uint              `json:"commented_by"`
	ParentID      *uint             `json:"parent_id,omitempty"`
	IsReply       bool              `json:"is_reply"`
	CommentedAt   string            `json:"commented_at"`
	User          CommentUserInfo   `json:"user"`
	Children      []CommentResponse `json:"children,omitempty"`
	ChildrenCount int64             `json:"children_count"`
}

// CommentListResponse 评论列表响应
type CommentListResponse struct {
	Total int64             `json:"total"`
	List  []CommentResponse `json:"list"`
}
