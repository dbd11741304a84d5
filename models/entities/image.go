package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"
)

// Folder 图片文件夹实体
// - 表名: folders
// - 每个用户可以创建多个文件夹来组织自己的图片库
type Folder struct {
	entities.BaseModel

	// 文件夹对外ID，UUID 格式
	FolderID string `gorm:"type:char(36);uniqueIndex;not null"`

	// 所属用户ID
	OwnerID string `gorm:"type:char(36);not null;index"`

	// 文件夹名称
	Name string `gorm:"type:varchar(255);not null"`
}

// Image 图片实体
// - 表名: images
// - 图片文件本体存储在 COS，数据库只记录对象键和访问 URL
// - 帖子通过 FeaturedImageURL 引用图片库中的图片，删除图片不级联修改帖子
type Image struct {
	entities.BaseModel

	// 图片对外ID，UUID 格式
	ImageID string `gorm:"type:char(36);uniqueIndex;not null"`

	// 所属用户ID
	OwnerID string `gorm:"type:char(36);not null;index"`

	// 所属文件夹ID，可为空（未归档图片）
	FolderID *string `gorm:"type:char(36);index"`

	// COS 对象键，唯一，删除图片时用于清理 COS 文件
	ObjectKey string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 公开访问 URL
	ImageURL string `gorm:"type:varchar(255);not null"`

	// 原始文件名
	Filename string `gorm:"type:varchar(255);not null"`

	// 文件大小（字节），可为 0（历史数据未记录）
	FileSize int64 `gorm:"type:bigint;default:0"`
}
