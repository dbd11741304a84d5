package dto

// ListPostsByConditionRequest 定义管理员分页条件查询帖子的请求数据结构
type ListPostsByConditionRequest struct {
	ID           *uint64 `form:"id" json:"id,omitempty"`                                 // 帖子ID，若存在则按主键查询，可选
	Title        *string `form:"title" json:"title,omitempty"`                           // 标题模糊查询，可选
	AuthorID     *string `form:"author_id" json:"author_id,omitempty"`                   // 作者ID精确查询，可选
	Status       *int    `form:"status" json:"status,omitempty" binding:"omitempty,min=0,max=3"` // 状态筛选，可选（0=草稿, 1=待审核, 2=已发布, 3=已驳回）
	CategoryID   *uint64 `form:"category_id" json:"category_id,omitempty"`               // 分类筛选，可选
	ViewCountMin *int64  `form:"view_count_min" json:"view_count_min,omitempty"`         // 浏览量下限，可选
	ViewCountMax *int64  `form:"view_count_max" json:"view_count_max,omitempty"`         // 浏览量上限，可选
	OrderBy      string  `form:"order_by" json:"order_by"`                               // 排序字段（created_at 或 updated_at），默认 created_at
	OrderDesc    bool    `form:"order_desc" json:"order_desc"`                           // 是否降序，true 为降序
	Page         int     `form:"page" json:"page" binding:"required,gt=0"`               // 页码，从 1 开始，必填
	PageSize     int     `form:"page_size" json:"page_size" binding:"required,gt=0"`     // 每页大小，必填
}

// ForcePostStatusRequest 定义管理员强制设置帖子状态的请求数据结构
// - 绕过状态流转表的管理员后门，普通审核动作请走 approve/reject 接口
type ForcePostStatusRequest struct {
	Status int `json:"status" binding:"min=0,max=3" example:"2"` // 目标状态（0=草稿, 1=待审核, 2=已发布, 3=已驳回）
	// Comments 审核意见；目标状态为已驳回时必填
	Comments string `json:"comments" binding:"omitempty,max=500"`
}
