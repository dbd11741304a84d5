package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Comment 评论实体
// - 表名: comments
// - 评论只能发表在对当前操作者可见的帖子上（可见性由 workflow.CanView 判定）
type Comment struct {
	entities.BaseModel

	// 帖子ID
	PostID uint64 `gorm:"type:bigint;not null;index"`

	// 评论作者ID，UUID 格式
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 评论内容
	Content string `gorm:"type:text;not null"`
}
