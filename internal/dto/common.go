package dto

// PageRequest 统一分页请求
// DeletedDocCount 用于补偿客户端上次拉取后被删除的记录，
// 保证无限滚动在并发删除下不跳页。
type PageRequest struct {
	Page            int `form:"page" json:"page" binding:"omitempty,min=1"`
	PageSize        int `form:"page_size" json:"page_size" binding:"omitempty,min=1,max=100"`
	DeletedDocCount int `form:"deleted_doc_count" json:"deleted_doc_count" binding:"omitempty,min=0"`
}

// Normalize 填充默认分页参数
func (r *PageRequest) Normalize(defaultSize int) {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = defaultSize
	}
}

// Offset 计算偏移量
func (r *PageRequest) Offset() int {
	offset := (r.Page-1)*r.PageSize - r.DeletedDocCount
	if offset < 0 {
		offset = 0
	}
	return offset
}
