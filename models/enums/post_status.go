package enums

import "fmt"

// PostStatus 帖子的生命周期状态，闭合枚举。
// - 状态的变更只允许通过 workflow 包的流转表进行，任何地方都不应直接写 status 字段。
// - 使用整数存储，便于数据库索引和范围校验。
type PostStatus int

const (
	// PostStatusDraft 草稿。帖子创建后的唯一初始状态，仅作者和审核人员可见。
	PostStatusDraft PostStatus = 0

	// PostStatusPending 待审核。作者提交审核后进入，等待审核人员处理。
	PostStatusPending PostStatus = 1

	// PostStatusPublished 已发布。审核通过后进入，对所有角色（包括游客）可见。
	PostStatusPublished PostStatus = 2

	// PostStatusRejected 已驳回。审核拒绝后进入，作者修改后可重新提交审核。
	PostStatusRejected PostStatus = 3
)

// String 返回状态的可读名称，主要用于日志和错误信息。
func (s PostStatus) String() string {
	switch s {
	case PostStatusDraft:
		return "DRAFT"
	case PostStatusPending:
		return "PENDING"
	case PostStatusPublished:
		return "PUBLISHED"
	case PostStatusRejected:
		return "REJECTED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// IsValid 校验状态值是否在合法范围内，用于绑定层的参数校验。
func (s PostStatus) IsValid() bool {
	return s >= PostStatusDraft && s <= PostStatusRejected
}
