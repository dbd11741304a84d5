package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentVO 定义了评论的响应数据结构
type CommentVO struct {
	ID        uint64    `json:"id"`         // 评论ID
	PostID    uint64    `json:"post_id"`    // 所属帖子ID
	AuthorID  string    `json:"author_id"`  // 评论者ID
	Content   string    `json:"content"`    // 评论内容
	CreatedAt time.Time `json:"created_at"` // 发表时间
}

// CommentPageVO 定义了评论分页查询的响应结构。
type CommentPageVO struct {
	Comments []*CommentVO `json:"comments"` // 当前页的评论列表
	Total    int64        `json:"total"`    // 评论总数
}

// MapCommentsToCommentVOs 将评论实体列表转换为响应VO列表。
func MapCommentsToCommentVOs(comments []*entities.Comment) []*CommentVO {
	if len(comments) == 0 {
		return []*CommentVO{}
	}
	vos := make([]*CommentVO, 0, len(comments))
	for _, comment := range comments {
		if comment == nil {
			continue
		}
		vos = append(vos, &CommentVO{
			ID:        comment.ID,
			PostID:    comment.PostID,
			AuthorID:  comment.AuthorID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	return vos
}
