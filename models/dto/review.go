package dto

// SubmitForReviewRequest 定义提交审核的请求数据结构
// - ReviewerID 为建议指派的审核人，可选；服务端会校验其确实是审核角色
type SubmitForReviewRequest struct {
	ReviewerID *string `json:"reviewer_id" binding:"omitempty,uuid"` // 建议指派的审核人ID，可选
}

// ApprovePostRequest 定义审核通过的请求数据结构
type ApprovePostRequest struct {
	Comments *string `json:"comments" binding:"omitempty,max=500" example:"内容符合规范"` // 审核意见，可选
}

// RejectPostRequest 定义审核驳回的请求数据结构
// - Comments 必填；服务端还会做去空白后的非空校验
type RejectPostRequest struct {
	Comments string `json:"comments" binding:"required,max=500" example:"内容含有违规信息"` // 驳回理由，必填
}
