package dto

// CreatePostRequest 定义了创建帖子的请求数据结构
// - 添加了 binding 标签用于输入验证
// - 新建帖子一律落为草稿，状态不由客户端指定
type CreatePostRequest struct {
	Title            string   `json:"title" form:"title" binding:"required,max=255"`                            // 帖子标题，必填，最大255字符
	Content          string   `json:"content" form:"content" binding:"required"`                                // 帖子正文（富文本 HTML），必填
	Excerpt          string   `json:"excerpt" form:"excerpt" binding:"omitempty,max=500"`                       // 摘要，可选，最大500字符
	Slug             string   `json:"slug" form:"slug" binding:"omitempty,max=255"`                             // 自定义 slug，可选；留空则由标题生成
	CategoryID       *uint64  `json:"category_id" form:"category_id" binding:"omitempty"`                       // 分类ID，可选
	TagIDs           []uint64 `json:"tag_ids" form:"tag_ids" binding:"omitempty"`                               // 标签ID列表，可选
	FeaturedImageURL string   `json:"featured_image_url" form:"featured_image_url" binding:"omitempty,url|uri"` // 封面图 URL，可选
}

// UpdatePostRequest 定义了编辑帖子内容的请求数据结构
// - 全部为指针字段，nil 表示不修改该字段（补丁语义）
// - 不包含 Status / ReviewerID / ReviewerComments：审核字段只能经由审核工作流变更
type UpdatePostRequest struct {
	Title            *string   `json:"title" binding:"omitempty,max=255"`              // 帖子标题，可选
	Content          *string   `json:"content" binding:"omitempty"`                    // 帖子正文，可选
	Excerpt          *string   `json:"excerpt" binding:"omitempty,max=500"`            // 摘要，可选
	Slug             *string   `json:"slug" binding:"omitempty,max=255"`               // slug，可选；冲突时返回错误
	CategoryID       *uint64   `json:"category_id" binding:"omitempty"`                // 分类ID，可选
	TagIDs           *[]uint64 `json:"tag_ids" binding:"omitempty"`                    // 标签ID列表，可选；非 nil 时整体替换
	FeaturedImageURL *string   `json:"featured_image_url" binding:"omitempty,url|uri"` // 封面图 URL，可选
}

// ListMyPostsRequest 定义分页查询自己帖子的请求数据结构
type ListMyPostsRequest struct {
	Status   *int `json:"status" form:"status" binding:"omitempty,min=0,max=3"` // 状态筛选，可选（0=草稿, 1=待审核, 2=已发布, 3=已驳回）
	Page     int  `json:"page" form:"page" binding:"required,gt=0"`             // 页码，从 1 开始，必填
	PageSize int  `json:"page_size" form:"page_size" binding:"required,gt=0"`   // 每页数量，必填，大于0
}

// TimelineQueryDTO 定义公开时间线游标查询的请求数据结构
// - 只返回已发布帖子，按 (created_at, id) 双字段游标向前翻页
type TimelineQueryDTO struct {
	LastCreatedAt *string `json:"last_created_at" form:"last_created_at" binding:"omitempty"` // 上一页最后一条的创建时间（RFC3339），可选
	LastPostID    *uint64 `json:"last_post_id" form:"last_post_id" binding:"omitempty"`       // 上一页最后一条的帖子ID，可选
	CategorySlug  *string `json:"category_slug" form:"category_slug" binding:"omitempty"`     // 按分类 slug 筛选，可选
	TagSlug       *string `json:"tag_slug" form:"tag_slug" binding:"omitempty"`               // 按标签 slug 筛选，可选
	PageSize      int     `json:"page_size" form:"page_size" binding:"required,gt=0,lte=50"`  // 每页数量，必填，最大50
}
