// Package workflow 实现帖子生命周期的核心规则：可见性判定与状态流转表。
// - 包内只有纯函数，不触达数据库、缓存或任何全局状态，
//   操作者身份一律通过 Actor 参数显式传入。
// - 持久化与编排由 service.ReviewWorkflowService 完成，本包只回答
//   “这次操作是否合法”。
package workflow

import (
	"github.com/Xushengqwer/blog_service/models/enums"
)

// Actor 一次请求的操作者身份，由网关透传的认证信息解析而来。
// - 游客请求的 UserID 为空字符串，Role 为 RoleGuest。
type Actor struct {
	// UserID 操作者的用户ID（UUID），游客为空
	UserID string

	// Role 操作者角色，闭合枚举
	Role enums.UserRole
}

// Guest 返回游客操作者。
func Guest() Actor {
	return Actor{Role: enums.RoleGuest}
}

// IsAdmin 判断操作者是否为管理员。
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

// IsStaff 判断操作者是否为审核人员或管理员（可进入审核队列的角色）。
func (a Actor) IsStaff() bool {
	switch a.Role {
	case enums.RoleReviewer, enums.RoleAdmin:
		return true
	case enums.RoleGuest, enums.RoleUser:
		return false
	default:
		return false
	}
}

// Owns 判断操作者是否为指定作者本人。
// - 游客 UserID 为空，与任何作者都不相等。
func (a Actor) Owns(authorID string) bool {
	return a.UserID != "" && a.UserID == authorID
}
