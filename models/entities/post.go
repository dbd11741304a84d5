package entities

import (
	"database/sql"

	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// Post 帖子实体
// - 使用场景: 博客平台的核心数据，承载正文、分类、审核状态等信息
// - 表名: posts (GORM 默认使用结构体名复数形式)
// - 注意: Status 字段只允许由审核工作流服务（service.ReviewWorkflowService）修改，
//   其余代码路径不得直接写该列，否则会绕过状态机的合法性校验。
type Post struct {
	entities.BaseModel // 嵌入自定义的 BaseModel ,包含 ID, CreatedAt, UpdatedAt, DeletedAt

	// 标题，必填，最大长度255个字符
	// - GORM 标签: type:varchar(255) 指定数据库类型，not null 表示非空
	Title string `gorm:"type:varchar(255);not null"`

	// Slug，URL 安全的唯一标识，默认由标题生成，更新时允许手动覆盖
	// - GORM 标签: uniqueIndex 保证全表唯一，详情页通过 slug 访问
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 正文内容，富文本编辑器产出的 HTML，存储为 TEXT 类型
	Content string `gorm:"type:text;not null"`

	// 摘要，列表页展示用，可为空
	Excerpt string `gorm:"type:varchar(500)"`

	// 作者ID，关联用户表，创建后不可变更
	// - 类型: char(36)，用户ID为UUID格式（36个字符）
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 分类ID，可为空（未分类帖子），不参与审核工作流
	CategoryID *uint64 `gorm:"type:bigint;index"`

	// 头图 URL，可为空
	FeaturedImageURL string `gorm:"type:varchar(255)"`

	// 状态，枚举类型：0=草稿, 1=待审核, 2=已发布, 3=已驳回
	// - GORM 标签: default:0 帖子创建即为草稿
	Status enums.PostStatus `gorm:"type:int;default:0;index"`

	// 最后一次审核该帖子的审核人ID，首次审核前为 NULL
	// - 类型: sql.NullString，区分 NULL 与空字符串
	ReviewerID sql.NullString `gorm:"type:char(36);comment:最后审核人"`

	// 审核意见，驳回时必填，通过时可选
	// - 不变量: Status 为已驳回时该字段必定非空
	ReviewerComments sql.NullString `gorm:"type:varchar(500);comment:审核意见"`

	// 浏览量，由 Redis 计数后定时回写，不参与审核工作流
	ViewCount int64 `gorm:"type:bigint;default:0"`

	// 版本号，每次成功的变更（内容或状态）自增 1
	// - 状态流转通过 WHERE status = 旧状态 的条件更新落库，version 用于排查并发写入
	Version uint64 `gorm:"type:bigint;default:0"`
}
