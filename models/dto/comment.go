package dto

// CreateCommentRequest 定义发表评论的请求数据结构
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"` // 评论内容，必填，最大2000字符
}

// ListCommentsRequest 定义分页查询帖子评论的请求数据结构
type ListCommentsRequest struct {
	Page     int `json:"page" form:"page" binding:"required,gt=0"`           // 页码，从 1 开始，必填
	PageSize int `json:"page_size" form:"page_size" binding:"required,gt=0"` // 每页数量，必填
}
