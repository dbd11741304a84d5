package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

const (
	authorID   = "11111111-1111-1111-1111-111111111111"
	strangerID = "22222222-2222-2222-2222-222222222222"
)

func postWithStatus(status enums.PostStatus) *entities.Post {
	p := &entities.Post{
		Title:    "测试帖子",
		Slug:     "test-post",
		Content:  "<p>内容</p>",
		AuthorID: authorID,
		Status:   status,
	}
	return p
}

var allStatuses = []enums.PostStatus{
	enums.PostStatusDraft,
	enums.PostStatusPending,
	enums.PostStatusPublished,
	enums.PostStatusRejected,
}

// 作者对自己的帖子在任何状态下都可见；审核人员/管理员对任何帖子都可见。
func TestCanView_AuthorAndStaffSeeEverything(t *testing.T) {
	author := Actor{UserID: authorID, Role: enums.RoleUser}
	reviewer := Actor{UserID: strangerID, Role: enums.RoleReviewer}
	admin := Actor{UserID: strangerID, Role: enums.RoleAdmin}

	for _, status := range allStatuses {
		post := postWithStatus(status)
		assert.True(t, CanView(author, post), "作者应能看到自己 %s 状态的帖子", status)
		assert.True(t, CanView(reviewer, post), "审核人员应能看到 %s 状态的帖子", status)
		assert.True(t, CanView(admin, post), "管理员应能看到 %s 状态的帖子", status)
	}
}

// 非作者、非审核人员/管理员，对未发布帖子一律不可见。
func TestCanView_OthersSeeOnlyPublished(t *testing.T) {
	stranger := Actor{UserID: strangerID, Role: enums.RoleUser}
	guest := Guest()

	for _, status := range allStatuses {
		post := postWithStatus(status)
		want := status == enums.PostStatusPublished
		assert.Equal(t, want, CanView(stranger, post), "其他用户对 %s 状态帖子的可见性错误", status)
		assert.Equal(t, want, CanView(guest, post), "游客对 %s 状态帖子的可见性错误", status)
	}
}

// 具体场景：游客访问草稿不可见，访问已发布帖子可见。
func TestCanView_GuestScenario(t *testing.T) {
	guest := Guest()

	draft := postWithStatus(enums.PostStatusDraft)
	published := postWithStatus(enums.PostStatusPublished)

	assert.False(t, CanView(guest, draft))
	assert.True(t, CanView(guest, published))
}

func TestCanView_NilPost(t *testing.T) {
	assert.False(t, CanView(Actor{UserID: strangerID, Role: enums.RoleAdmin}, nil))
}

func TestCanEditAndDelete(t *testing.T) {
	author := Actor{UserID: authorID, Role: enums.RoleUser}
	stranger := Actor{UserID: strangerID, Role: enums.RoleUser}
	reviewer := Actor{UserID: strangerID, Role: enums.RoleReviewer}
	admin := Actor{UserID: strangerID, Role: enums.RoleAdmin}

	assert.True(t, CanEdit(author, authorID))
	assert.True(t, CanEdit(admin, authorID))
	assert.False(t, CanEdit(stranger, authorID))
	// 审核人员只能裁定状态，不能改内容
	assert.False(t, CanEdit(reviewer, authorID))

	assert.True(t, CanDelete(author, authorID))
	assert.True(t, CanDelete(admin, authorID))
	assert.False(t, CanDelete(stranger, authorID))
	assert.False(t, CanDelete(reviewer, authorID))
}
