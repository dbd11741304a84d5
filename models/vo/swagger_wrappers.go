package vo

// --- 用于成功响应且包含具体 Data 的包装器 ---

// PostResponseWrapper 对应 response.APIResponse[vo.PostResponse]
type PostResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    PostResponse `json:"data"` // 使用具体的 vo.PostResponse
}

// PostDetailResponseWrapper 对应 response.APIResponse[vo.PostDetailVO]
type PostDetailResponseWrapper struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message,omitempty" example:"success"`
	Data    PostDetailVO `json:"data"`
}

// PostTimelinePageResponseWrapper 对应 response.APIResponse[vo.PostTimelinePageVO]
type PostTimelinePageResponseWrapper struct {
	Code    int                `json:"code" example:"0"`                    // 响应码，0 表示成功
	Message string             `json:"message,omitempty" example:"success"` // 响应消息
	Data    PostTimelinePageVO `json:"data"`                                // 实际的帖子时间线分页数据
}

// ListUserPostPageResponseWrapper 对应 response.APIResponse[vo.ListUserPostPageVO]
type ListUserPostPageResponseWrapper struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message,omitempty" example:"success"`
	Data    ListUserPostPageVO `json:"data"`
}

// ReviewQueuePageResponseWrapper 对应 response.APIResponse[vo.ReviewQueuePageVO]
type ReviewQueuePageResponseWrapper struct {
	Code    int               `json:"code" example:"0"`
	Message string            `json:"message,omitempty" example:"success"`
	Data    ReviewQueuePageVO `json:"data"`
}

// ListPostsAdminResponseWrapper 对应 response.APIResponse[vo.ListPostsAdminByConditionResponse]
type ListPostsAdminResponseWrapper struct {
	Code    int                               `json:"code" example:"0"`
	Message string                            `json:"message,omitempty" example:"success"`
	Data    ListPostsAdminByConditionResponse `json:"data"`
}

// PostStatsResponseWrapper 对应 response.APIResponse[vo.PostStatsVO]
type PostStatsResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    PostStatsVO `json:"data"`
}

// CommentPageResponseWrapper 对应 response.APIResponse[vo.CommentPageVO]
type CommentPageResponseWrapper struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message,omitempty" example:"success"`
	Data    CommentPageVO `json:"data"`
}

// ImagePageResponseWrapper 对应 response.APIResponse[vo.ImagePageVO]
type ImagePageResponseWrapper struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message,omitempty" example:"success"`
	Data    ImagePageVO `json:"data"`
}

// --- 用于错误响应 或 简单成功响应（只有 Code 和 Message） ---

// BaseResponseWrapper 代表一个只包含 Code 和 Message 的响应。
// 适用于错误情况（RespondError 返回时 Data 为 nil 且 omitempty）
// 或某些成功操作（如 DELETE）可能也只返回 Code 和 Message。
type BaseResponseWrapper struct {
	Code    int    `json:"code" example:"0"`          // 成功时为 0, 错误时为具体错误码
	Message string `json:"message" example:"success"` // 成功或错误消息
}
