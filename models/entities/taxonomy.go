package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Category 分类实体
// - 帖子与分类是多对一关系，通过 Post.CategoryID 关联
// - 分类不参与审核工作流，修改分类不影响帖子状态机
type Category struct {
	entities.BaseModel

	// 分类名，唯一
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// URL 安全的分类标识，唯一
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// Tag 标签实体
// - 帖子与标签是多对多关系，通过 PostTag 连接表关联
type Tag struct {
	entities.BaseModel

	// 标签名，唯一
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// URL 安全的标签标识，唯一
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null"`
}

// PostTag 帖子-标签连接表
// - 表名: post_tags
// - 联合唯一索引保证同一帖子不会重复挂同一标签
// - 不使用 GORM 的 many2many 关联，仓库层显式维护该表，替换标签集合时整体重建
type PostTag struct {
	// 帖子ID
	PostID uint64 `gorm:"type:bigint;not null;uniqueIndex:idx_post_tag"`

	// 标签ID
	TagID uint64 `gorm:"type:bigint;not null;uniqueIndex:idx_post_tag;index"`
}
