package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// PostResponse 定义了帖子摘要信息的响应数据结构
// - 列表场景使用，不含正文
type PostResponse struct {
	ID               uint64           `json:"id"`                 // 帖子ID
	Title            string           `json:"title"`              // 帖子标题
	Slug             string           `json:"slug"`               // 帖子 slug
	Excerpt          string           `json:"excerpt"`            // 摘要
	Status           enums.PostStatus `json:"status"`             // 帖子状态，0=草稿, 1=待审核, 2=已发布, 3=已驳回
	AuthorID         string           `json:"author_id"`          // 作者ID
	CategoryID       *uint64          `json:"category_id"`        // 分类ID，可能为空
	FeaturedImageURL string           `json:"featured_image_url"` // 封面图 URL
	ViewCount        int64            `json:"view_count"`         // 浏览量
	ReviewerComments *string          `json:"reviewer_comments"`  // 审核意见（被驳回时包含驳回理由）
	CreatedAt        time.Time        `json:"created_at"`         // 创建时间
	UpdatedAt        time.Time        `json:"updated_at"`         // 更新时间
}

// PostDetailVO 定义了帖子详情页的完整视图对象
// - 在摘要字段之外附带正文、审核人与标签列表
type PostDetailVO struct {
	PostResponse

	Content    string   `json:"content"`     // 帖子正文（富文本 HTML）
	ReviewerID *string  `json:"reviewer_id"` // 最近一次裁定的审核人ID，可能为空
	Tags       []*TagVO `json:"tags"`        // 标签列表
}

// PostTimelinePageVO 定义了公开时间线分页查询的响应结构。
// - 包含当前页的帖子列表和下一页的游标信息。
type PostTimelinePageVO struct {
	Posts         []*PostResponse `json:"posts"`         // 当前页的帖子摘要列表
	NextCreatedAt *time.Time      `json:"nextCreatedAt"` // 下一页游标：创建时间，如果为nil表示没有下一页
	NextPostID    *uint64         `json:"nextPostId"`    // 下一页游标：帖子ID，如果为nil表示没有下一页
}

// ListUserPostPageVO 定义了自己的发帖的分页的查询响应结构。
type ListUserPostPageVO struct {
	Posts []*PostResponse `json:"posts"` // 当前页的帖子列表
	Total int64           `json:"total"` // 符合条件的总记录数
}

// ReviewQueuePageVO 定义了审核队列分页查询的响应结构。
// - 只包含待审核帖子，按创建时间降序
type ReviewQueuePageVO struct {
	Posts []*PostResponse `json:"posts"` // 待审核帖子列表
	Total int64           `json:"total"` // 待审核帖子总数
}

// ListPostsAdminByConditionResponse 定义管理员按条件查询帖子的响应结构体
type ListPostsAdminByConditionResponse struct {
	Posts []*PostResponse `json:"posts"` // 帖子列表
	Total int64           `json:"total"` // 帖子总数
}

// PostStatsVO 定义了帖子状态统计的响应结构，用于后台仪表盘。
type PostStatsVO struct {
	Total     int64 `json:"total"`     // 帖子总数
	Draft     int64 `json:"draft"`     // 草稿数量
	Pending   int64 `json:"pending"`   // 待审核数量
	Published int64 `json:"published"` // 已发布数量
	Rejected  int64 `json:"rejected"`  // 已驳回数量
}

// NewPostResponseFromEntity 将单个帖子实体转换为摘要响应VO。
func NewPostResponseFromEntity(post *entities.Post) *PostResponse {
	if post == nil {
		return nil
	}
	resp := &PostResponse{
		ID:               post.ID,
		Title:            post.Title,
		Slug:             post.Slug,
		Excerpt:          post.Excerpt,
		Status:           post.Status,
		AuthorID:         post.AuthorID,
		CategoryID:       post.CategoryID,
		FeaturedImageURL: post.FeaturedImageURL,
		ViewCount:        post.ViewCount,
		CreatedAt:        post.CreatedAt,
		UpdatedAt:        post.UpdatedAt,
	}
	if post.ReviewerComments.Valid {
		comments := post.ReviewerComments.String
		resp.ReviewerComments = &comments
	}
	return resp
}

// MapPostsToPostResponsesVO 是一个辅助函数，用于将帖子实体列表转换为帖子响应VO列表。
func MapPostsToPostResponsesVO(posts []*entities.Post) []*PostResponse {
	if len(posts) == 0 {
		return []*PostResponse{} // 返回空切片而不是nil，便于前端处理
	}

	responses := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		if post == nil { // 安全检查
			continue
		}
		responses = append(responses, NewPostResponseFromEntity(post))
	}
	return responses
}

// NewPostDetailVOFromEntity 将帖子实体与标签列表转换为详情视图对象。
func NewPostDetailVOFromEntity(post *entities.Post, tags []*entities.Tag) *PostDetailVO {
	if post == nil {
		return nil
	}
	detail := &PostDetailVO{
		PostResponse: *NewPostResponseFromEntity(post),
		Content:      post.Content,
		Tags:         MapTagsToTagVOs(tags),
	}
	if post.ReviewerID.Valid {
		reviewerID := post.ReviewerID.String
		detail.ReviewerID = &reviewerID
	}
	return detail
}
