package workflow

import (
	"strings"

	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// Trigger 状态流转的触发动作，闭合枚举。
type Trigger int

const (
	// TriggerSubmit 提交审核：草稿/已驳回 -> 待审核，由作者或管理员触发
	TriggerSubmit Trigger = iota

	// TriggerApprove 审核通过：待审核 -> 已发布，由审核人员或管理员触发
	TriggerApprove

	// TriggerReject 审核驳回：待审核 -> 已驳回，由审核人员或管理员触发
	TriggerReject
)

// String 返回触发动作的可读名称，用于日志。
func (t Trigger) String() string {
	switch t {
	case TriggerSubmit:
		return "submit-for-review"
	case TriggerApprove:
		return "approve"
	case TriggerReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Transition 状态流转表：给定当前状态与触发动作，返回目标状态。
// - 流转不合法时返回 myErrors.ErrInvalidState，调用方不得落库。
// - 没有终止状态：已发布/已驳回的帖子经 编辑 + 重新提交 都能回到待审核；
//   编辑已发布帖子隐式降级为草稿的规则不在本表内，见 DemoteOnEdit。
func Transition(from enums.PostStatus, trigger Trigger) (enums.PostStatus, error) {
	switch trigger {
	case TriggerSubmit:
		// 草稿或已驳回（重新提交）都允许进入待审核
		if from == enums.PostStatusDraft || from == enums.PostStatusRejected {
			return enums.PostStatusPending, nil
		}
		return from, myErrors.ErrInvalidState
	case TriggerApprove:
		if from == enums.PostStatusPending {
			return enums.PostStatusPublished, nil
		}
		return from, myErrors.ErrInvalidState
	case TriggerReject:
		if from == enums.PostStatusPending {
			return enums.PostStatusRejected, nil
		}
		return from, myErrors.ErrInvalidState
	default:
		return from, myErrors.ErrInvalidState
	}
}

// AuthorizeTrigger 校验操作者是否有权触发指定动作。
// - 提交审核: 作者本人或管理员；
// - 通过/驳回: 审核人员或管理员；
// - 无权限时返回 myErrors.ErrUnauthorized。
// - 对角色做穷举匹配，新增角色时编译器会提示补全这里的分支。
func AuthorizeTrigger(actor Actor, authorID string, trigger Trigger) error {
	switch trigger {
	case TriggerSubmit:
		switch actor.Role {
		case enums.RoleAdmin:
			return nil
		case enums.RoleUser:
			if actor.Owns(authorID) {
				return nil
			}
			return myErrors.ErrUnauthorized
		case enums.RoleReviewer, enums.RoleGuest:
			return myErrors.ErrUnauthorized
		default:
			return myErrors.ErrUnauthorized
		}
	case TriggerApprove, TriggerReject:
		switch actor.Role {
		case enums.RoleReviewer, enums.RoleAdmin:
			return nil
		case enums.RoleUser, enums.RoleGuest:
			return myErrors.ErrUnauthorized
		default:
			return myErrors.ErrUnauthorized
		}
	default:
		return myErrors.ErrUnauthorized
	}
}

// DemoteOnEdit 编辑内容对状态的隐式影响。
// - 已发布帖子被编辑后降级为草稿：一次编辑使先前的审核结论失效，需要重新提交审核。
//   这是 editContent 契约的显式组成部分，而不是通用更新路径的偶然副作用。
// - 其余状态编辑后保持不变；特别地，编辑待审核帖子不会把它移出审核队列
//   （审核人员可能看到更新后的内容，这是沿用原有产品行为的有意决定）。
// - 返回 (目标状态, 是否发生降级)。
func DemoteOnEdit(from enums.PostStatus) (enums.PostStatus, bool) {
	if from == enums.PostStatusPublished {
		return enums.PostStatusDraft, true
	}
	return from, false
}

// ValidateReviewComments 校验审核意见是否满足触发动作的要求。
// - 驳回必须给出非空（去除首尾空白后）的理由，否则返回 ErrRejectReasonRequired；
// - 通过时意见可选。
func ValidateReviewComments(trigger Trigger, comments string) error {
	if trigger == TriggerReject && strings.TrimSpace(comments) == "" {
		return myErrors.ErrRejectReasonRequired
	}
	return nil
}
