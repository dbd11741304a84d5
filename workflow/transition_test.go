package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// 完整枚举 状态 x 触发动作 的流转表，合法项给出目标状态，其余一律 ErrInvalidState。
func TestTransition_Table(t *testing.T) {
	type key struct {
		from    enums.PostStatus
		trigger Trigger
	}
	allowed := map[key]enums.PostStatus{
		{enums.PostStatusDraft, TriggerSubmit}:    enums.PostStatusPending,
		{enums.PostStatusRejected, TriggerSubmit}: enums.PostStatusPending,
		{enums.PostStatusPending, TriggerApprove}: enums.PostStatusPublished,
		{enums.PostStatusPending, TriggerReject}:  enums.PostStatusRejected,
	}

	triggers := []Trigger{TriggerSubmit, TriggerApprove, TriggerReject}
	for _, from := range allStatuses {
		for _, trigger := range triggers {
			to, err := Transition(from, trigger)
			if want, ok := allowed[key{from, trigger}]; ok {
				require.NoError(t, err, "%s + %s 应当合法", from, trigger)
				assert.Equal(t, want, to)
			} else {
				assert.ErrorIs(t, err, myErrors.ErrInvalidState, "%s + %s 应当非法", from, trigger)
				assert.Equal(t, from, to, "非法流转不得改变状态")
			}
		}
	}
}

// 重新提交：被驳回的帖子允许直接再次提交审核。
func TestTransition_ResubmitAfterReject(t *testing.T) {
	to, err := Transition(enums.PostStatusRejected, TriggerSubmit)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPending, to)
}

func TestAuthorizeTrigger_Submit(t *testing.T) {
	author := Actor{UserID: authorID, Role: enums.RoleUser}
	stranger := Actor{UserID: strangerID, Role: enums.RoleUser}
	reviewer := Actor{UserID: strangerID, Role: enums.RoleReviewer}
	admin := Actor{UserID: strangerID, Role: enums.RoleAdmin}

	assert.NoError(t, AuthorizeTrigger(author, authorID, TriggerSubmit))
	assert.NoError(t, AuthorizeTrigger(admin, authorID, TriggerSubmit))
	assert.ErrorIs(t, AuthorizeTrigger(stranger, authorID, TriggerSubmit), myErrors.ErrUnauthorized)
	assert.ErrorIs(t, AuthorizeTrigger(reviewer, authorID, TriggerSubmit), myErrors.ErrUnauthorized)
	assert.ErrorIs(t, AuthorizeTrigger(Guest(), authorID, TriggerSubmit), myErrors.ErrUnauthorized)
}

func TestAuthorizeTrigger_Review(t *testing.T) {
	author := Actor{UserID: authorID, Role: enums.RoleUser}
	reviewer := Actor{UserID: strangerID, Role: enums.RoleReviewer}
	admin := Actor{UserID: strangerID, Role: enums.RoleAdmin}

	for _, trigger := range []Trigger{TriggerApprove, TriggerReject} {
		assert.NoError(t, AuthorizeTrigger(reviewer, authorID, trigger))
		assert.NoError(t, AuthorizeTrigger(admin, authorID, trigger))
		// 作者不能裁定自己的帖子（除非本身就是审核角色）
		assert.ErrorIs(t, AuthorizeTrigger(author, authorID, trigger), myErrors.ErrUnauthorized)
		assert.ErrorIs(t, AuthorizeTrigger(Guest(), authorID, trigger), myErrors.ErrUnauthorized)
	}
}

// 编辑已发布帖子降级为草稿，其余状态保持不变。
func TestDemoteOnEdit(t *testing.T) {
	to, demoted := DemoteOnEdit(enums.PostStatusPublished)
	assert.True(t, demoted)
	assert.Equal(t, enums.PostStatusDraft, to)

	for _, from := range []enums.PostStatus{enums.PostStatusDraft, enums.PostStatusPending, enums.PostStatusRejected} {
		to, demoted := DemoteOnEdit(from)
		assert.False(t, demoted, "%s 编辑后不应降级", from)
		assert.Equal(t, from, to)
	}
}

func TestValidateReviewComments(t *testing.T) {
	// 驳回必须有理由，纯空白也不行
	assert.ErrorIs(t, ValidateReviewComments(TriggerReject, ""), myErrors.ErrRejectReasonRequired)
	assert.ErrorIs(t, ValidateReviewComments(TriggerReject, "   \t\n"), myErrors.ErrRejectReasonRequired)
	assert.NoError(t, ValidateReviewComments(TriggerReject, "内容含有违规信息"))

	// 通过时意见可选
	assert.NoError(t, ValidateReviewComments(TriggerApprove, ""))
	assert.NoError(t, ValidateReviewComments(TriggerApprove, "写得不错"))
}
