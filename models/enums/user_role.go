package enums

import (
	"fmt"
	"strings"
)

// UserRole 账号角色，闭合枚举。
// - 每个账号有且只有一个角色，角色在账号生命周期内固定不变。
// - 可见性判断和状态流转表对该枚举做穷举匹配，新增角色属于编译期可检查的变更。
type UserRole int

const (
	// RoleGuest 游客（未登录），只能浏览已发布的帖子。
	RoleGuest UserRole = 0

	// RoleUser 普通用户（作者），可以创建帖子并管理自己的帖子。
	RoleUser UserRole = 1

	// RoleReviewer 审核人员，可以查看所有帖子并对待审核帖子做出通过/驳回裁定。
	RoleReviewer UserRole = 2

	// RoleAdmin 管理员，拥有所有权限，包括对帖子状态的强制修正。
	RoleAdmin UserRole = 3
)

// String 返回角色的可读名称。
func (r UserRole) String() string {
	switch r {
	case RoleGuest:
		return "GUEST"
	case RoleUser:
		return "USER"
	case RoleReviewer:
		return "REVIEWER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(r))
	}
}

// IsValid 校验角色值是否在合法范围内。
func (r UserRole) IsValid() bool {
	return r >= RoleGuest && r <= RoleAdmin
}

// ParseUserRole 将网关透传的角色名解析为枚举值。
// - 大小写不敏感；无法识别的角色一律按游客处理，避免放大权限。
func ParseUserRole(raw string) UserRole {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "USER":
		return RoleUser
	case "REVIEWER":
		return RoleReviewer
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleGuest
	}
}
