package workflow

import (
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// CanView 可见性判定：操作者是否可以读取指定帖子。
// - 规则按顺序求值，命中即返回:
//   1. 审核人员/管理员可见一切（支撑审核队列与平台监督）；
//   2. 作者始终可见自己的帖子，与状态无关；
//   3. 已发布帖子对所有人可见；
//   4. 其余情况不可见。
// - 纯函数，无副作用；每次读请求都必须重新判定，禁止跨操作者缓存判定结果。
func CanView(actor Actor, post *entities.Post) bool {
	if post == nil {
		return false
	}
	return CanViewStatus(actor, post.AuthorID, post.Status)
}

// CanViewStatus 与 CanView 等价，但直接接收作者与状态两个字段，
// 便于在尚未加载完整实体的查询路径（如列表 SQL 拼装前的预判）中复用。
func CanViewStatus(actor Actor, authorID string, status enums.PostStatus) bool {
	if actor.IsStaff() {
		return true
	}
	if actor.Owns(authorID) {
		return true
	}
	return status == enums.PostStatusPublished
}

// CanEdit 判断操作者是否可以修改帖子内容（作者本人或管理员）。
// - 审核人员不能改内容，只能通过流转表裁定状态。
func CanEdit(actor Actor, authorID string) bool {
	return actor.IsAdmin() || actor.Owns(authorID)
}

// CanDelete 判断操作者是否可以删除帖子，规则与编辑一致。
func CanDelete(actor Actor, authorID string) bool {
	return actor.IsAdmin() || actor.Owns(authorID)
}
