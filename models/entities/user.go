package entities

import (
	"github.com/Xushengqwer/go-common/models/entities"

	"github.com/Xushengqwer/blog_service/models/enums"
)

// User 账号实体
// - 使用场景: 校验帖子作者是否存在、校验指派的审核人角色
// - 表名: users
// - 注意: 登录/会话由网关和认证服务负责，本服务只消费网关透传的用户身份，
//   该表是账号信息在本服务内的投影。
type User struct {
	entities.BaseModel

	// 用户ID，UUID 格式，来源于认证服务，全局唯一
	UserID string `gorm:"type:char(36);uniqueIndex;not null"`

	// 邮箱，唯一
	Email string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 昵称，列表页展示
	Nickname string `gorm:"type:varchar(50);not null"`

	// 头像 URL，可为空（注册时有默认头像的场景由认证服务保证）
	Avatar string `gorm:"type:varchar(255)"`

	// 角色，枚举类型：0=游客, 1=普通用户, 2=审核人员, 3=管理员
	// - 角色在账号生命周期内固定，不支持请求内动态变更
	Role enums.UserRole `gorm:"type:int;default:1"`
}
