package service

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/workflow"
)

// noopCache 是测试用的空缓存实现，所有写操作直接成功，读操作永远未命中。
type noopCache struct{}

func (noopCache) GetPostDetail(ctx context.Context, postID uint64) (*vo.PostDetailVO, error) {
	return nil, myErrors.ErrCacheMiss
}
func (noopCache) SetPostDetail(ctx context.Context, detail *vo.PostDetailVO) error { return nil }
func (noopCache) InvalidatePostDetail(ctx context.Context, postID uint64) error    { return nil }
func (noopCache) GetHotPostIDsByRange(ctx context.Context, start, stop int64) ([]uint64, error) {
	return nil, nil
}
func (noopCache) RefreshHotPostsRank(ctx context.Context, topN int64) error { return nil }

// workflowTestEnv 把审核工作流测试需要的依赖聚合在一起。
type workflowTestEnv struct {
	db       *gorm.DB
	svc      ReviewWorkflowService
	postRepo mysql.PostRepository
	logger   *core.ZapLogger
}

// newWorkflowTestEnv 用内存 SQLite 搭建一套可独立运行的工作流服务。
// - 连接数限制为 1，保证所有操作落在同一个内存数据库上。
// - Kafka 生产者传 nil，事件发送会被跳过。
func newWorkflowTestEnv(t *testing.T) *workflowTestEnv {
	t.Helper()

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Post{},
		&entities.Category{},
		&entities.Tag{},
		&entities.PostTag{},
		&entities.Comment{},
	))

	postRepo := mysql.NewPostRepository(db, logger)
	userRepo := mysql.NewUserRepository(db, logger)
	taxonomyRepo := mysql.NewTaxonomyRepository(db, logger)
	commentRepo := mysql.NewCommentRepository(db, logger)

	svc := NewReviewWorkflowService(db, postRepo, userRepo, taxonomyRepo, commentRepo, noopCache{}, nil, logger)

	return &workflowTestEnv{
		db:       db,
		svc:      svc,
		postRepo: postRepo,
		logger:   logger,
	}
}

// seedUser 插入一个指定角色的账号，返回其 UserID。
func (env *workflowTestEnv) seedUser(t *testing.T, role enums.UserRole) string {
	t.Helper()
	userID := uuid.New().String()
	user := &entities.User{
		UserID:   userID,
		Email:    userID + "@example.com",
		Nickname: "测试用户",
		Role:     role,
	}
	require.NoError(t, env.db.Create(user).Error)
	return userID
}

// seedPost 插入一篇指定状态的帖子。
func (env *workflowTestEnv) seedPost(t *testing.T, authorID string, status enums.PostStatus) *entities.Post {
	t.Helper()
	post := &entities.Post{
		Title:    "测试帖子",
		Slug:     "test-post-" + uuid.New().String(),
		Content:  "<p>正文内容</p>",
		AuthorID: authorID,
		Status:   status,
	}
	require.NoError(t, env.db.Create(post).Error)
	return post
}

// reloadPost 直接从数据库读取帖子当前内容。
func (env *workflowTestEnv) reloadPost(t *testing.T, postID uint64) *entities.Post {
	t.Helper()
	post, err := env.postRepo.GetPostByID(context.Background(), postID)
	require.NoError(t, err)
	return post
}

func actorOf(userID string, role enums.UserRole) workflow.Actor {
	return workflow.Actor{UserID: userID, Role: role}
}

func TestSubmitForReview_DraftToPending(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusDraft)

	resp, err := env.svc.SubmitForReview(ctx, actorOf(authorID, enums.RoleUser), post.ID, &dto.SubmitForReviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPending, resp.Status)

	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusPending, stored.Status)
	assert.False(t, stored.ReviewerID.Valid, "未指派审核人时 reviewer_id 应为 NULL")
	assert.Greater(t, stored.Version, post.Version, "状态流转应自增版本号")
}

func TestSubmitForReview_ReviewerAssignment(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	ordinaryID := env.seedUser(t, enums.RoleUser)

	// 指派真实审核人：成功并落库
	post := env.seedPost(t, authorID, enums.PostStatusDraft)
	_, err := env.svc.SubmitForReview(ctx, actorOf(authorID, enums.RoleUser), post.ID,
		&dto.SubmitForReviewRequest{ReviewerID: &reviewerID})
	require.NoError(t, err)
	stored := env.reloadPost(t, post.ID)
	require.True(t, stored.ReviewerID.Valid)
	assert.Equal(t, reviewerID, stored.ReviewerID.String)

	// 指派普通用户当审核人：拒绝且状态不变
	another := env.seedPost(t, authorID, enums.PostStatusDraft)
	_, err = env.svc.SubmitForReview(ctx, actorOf(authorID, enums.RoleUser), another.ID,
		&dto.SubmitForReviewRequest{ReviewerID: &ordinaryID})
	assert.ErrorIs(t, err, myErrors.ErrInvalidReviewer)
	assert.Equal(t, enums.PostStatusDraft, env.reloadPost(t, another.ID).Status)
}

// 其他用户对草稿不可见：得到"不存在"，而不是"无权限"，避免暴露草稿的存在。
func TestSubmitForReview_InvisibleDraftLooksAbsent(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	strangerID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusDraft)

	_, err := env.svc.SubmitForReview(ctx, actorOf(strangerID, enums.RoleUser), post.ID, nil)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	// 管理员可以替作者提交
	adminID := env.seedUser(t, enums.RoleAdmin)
	_, err = env.svc.SubmitForReview(ctx, actorOf(adminID, enums.RoleAdmin), post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPending, env.reloadPost(t, post.ID).Status)
}

func TestApprovePost_PendingToPublished(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	comments := "  内容合规，准予发布  "
	resp, err := env.svc.ApprovePost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID,
		&dto.ApprovePostRequest{Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPublished, resp.Status)

	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusPublished, stored.Status)
	require.True(t, stored.ReviewerID.Valid)
	assert.Equal(t, reviewerID, stored.ReviewerID.String, "审核人记录为操作者本人")
	require.True(t, stored.ReviewerComments.Valid)
	assert.Equal(t, "内容合规，准予发布", stored.ReviewerComments.String, "审核意见应去除首尾空白")
}

func TestApprovePost_AuthorCannotJudgeOwnPost(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	_, err := env.svc.ApprovePost(ctx, actorOf(authorID, enums.RoleUser), post.ID, nil)
	assert.ErrorIs(t, err, myErrors.ErrUnauthorized)
	assert.Equal(t, enums.PostStatusPending, env.reloadPost(t, post.ID).Status)
}

func TestApprovePost_DraftIsInvalidState(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusDraft)

	_, err := env.svc.ApprovePost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID, nil)
	assert.ErrorIs(t, err, myErrors.ErrInvalidState)
}

func TestRejectPost_RequiresNonBlankReason(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	for _, comments := range []string{"", "   ", "\t\n "} {
		_, err := env.svc.RejectPost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID,
			&dto.RejectPostRequest{Comments: comments})
		assert.ErrorIs(t, err, myErrors.ErrRejectReasonRequired)
	}
	assert.Equal(t, enums.PostStatusPending, env.reloadPost(t, post.ID).Status, "驳回失败不得改变状态")
}

func TestRejectPost_ThenResubmitClearsVerdict(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	_, err := env.svc.RejectPost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID,
		&dto.RejectPostRequest{Comments: "含有未脱敏的个人信息"})
	require.NoError(t, err)

	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusRejected, stored.Status)
	require.True(t, stored.ReviewerComments.Valid)
	assert.Equal(t, "含有未脱敏的个人信息", stored.ReviewerComments.String)

	// 被驳回后作者可以直接重新提交，上一轮审核结论被清空
	_, err = env.svc.SubmitForReview(ctx, actorOf(authorID, enums.RoleUser), post.ID, nil)
	require.NoError(t, err)

	resubmitted := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusPending, resubmitted.Status)
	assert.False(t, resubmitted.ReviewerID.Valid)
	assert.False(t, resubmitted.ReviewerComments.Valid)
}

// 编辑已发布帖子：内容更新的同时降级为草稿，审核结论被撤销。
func TestUpdatePost_DemotesPublishedToDraft(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusPending)
	_, err := env.svc.ApprovePost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID, nil)
	require.NoError(t, err)

	newTitle := "修订后的标题"
	resp, err := env.svc.UpdatePost(ctx, actorOf(authorID, enums.RoleUser), post.ID,
		&dto.UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusDraft, resp.Status)

	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, "修订后的标题", stored.Title)
	assert.Equal(t, enums.PostStatusDraft, stored.Status)
	assert.False(t, stored.ReviewerID.Valid, "降级后先前的审核结论应被撤销")
	assert.False(t, stored.ReviewerComments.Valid)
}

// 编辑待审核帖子不改变其排队状态。
func TestUpdatePost_PendingKeepsQueuePosition(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	newExcerpt := "补充的摘要"
	_, err := env.svc.UpdatePost(ctx, actorOf(authorID, enums.RoleUser), post.ID,
		&dto.UpdatePostRequest{Excerpt: &newExcerpt})
	require.NoError(t, err)

	stored := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusPending, stored.Status)
	assert.Equal(t, "补充的摘要", stored.Excerpt)
}

// 内部调用方传 nil 补丁时返回错误而不是崩溃。
func TestUpdatePost_NilPatchRejected(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusDraft)

	_, err := env.svc.UpdatePost(ctx, actorOf(authorID, enums.RoleUser), post.ID, nil)
	require.Error(t, err)
	assert.Equal(t, enums.PostStatusDraft, env.reloadPost(t, post.ID).Status)
}

func TestUpdatePost_SlugConflict(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	first := env.seedPost(t, authorID, enums.PostStatusDraft)
	second := env.seedPost(t, authorID, enums.PostStatusDraft)

	_, err := env.svc.UpdatePost(ctx, actorOf(authorID, enums.RoleUser), second.ID,
		&dto.UpdatePostRequest{Slug: &first.Slug})
	assert.ErrorIs(t, err, myErrors.ErrSlugTaken)
}

// 已发布帖子对其他用户可见，但编辑权限仍然只属于作者和管理员。
func TestUpdatePost_VisibleButNotEditable(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	strangerID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusPublished)

	newTitle := "他人的标题"
	_, err := env.svc.UpdatePost(ctx, actorOf(strangerID, enums.RoleUser), post.ID,
		&dto.UpdatePostRequest{Title: &newTitle})
	assert.ErrorIs(t, err, myErrors.ErrUnauthorized)
}

func TestDeletePost_RemovesPostAndComments(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	post := env.seedPost(t, authorID, enums.PostStatusPublished)
	require.NoError(t, env.db.Create(&entities.Comment{
		PostID:   post.ID,
		AuthorID: authorID,
		Content:  "沙发",
	}).Error)

	require.NoError(t, env.svc.DeletePost(ctx, actorOf(authorID, enums.RoleUser), post.ID))

	_, err := env.postRepo.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)

	var commentCount int64
	require.NoError(t, env.db.Model(&entities.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Zero(t, commentCount, "删除帖子应连带清理评论")
}

// 完整生命周期串联：提交 -> 通过 -> 编辑降级 -> 重新提交 -> 驳回。
// 最终落库的审核人与审核意见都来自最后一次裁定。
func TestReviewWorkflow_FullRoundTrip(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	firstReviewerID := env.seedUser(t, enums.RoleReviewer)
	secondReviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusDraft)

	author := actorOf(authorID, enums.RoleUser)

	// 草稿 -> 待审核
	_, err := env.svc.SubmitForReview(ctx, author, post.ID, nil)
	require.NoError(t, err)

	// 待审核 -> 已发布
	_, err = env.svc.ApprovePost(ctx, actorOf(firstReviewerID, enums.RoleReviewer), post.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPublished, env.reloadPost(t, post.ID).Status)

	// 编辑已发布帖子 -> 降级回草稿，首轮审核结论被撤销
	newContent := "<p>补充了数据来源的修订版</p>"
	_, err = env.svc.UpdatePost(ctx, author, post.ID, &dto.UpdatePostRequest{Content: &newContent})
	require.NoError(t, err)
	demoted := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusDraft, demoted.Status)
	assert.False(t, demoted.ReviewerID.Valid)

	// 重新提交 -> 待审核
	_, err = env.svc.SubmitForReview(ctx, author, post.ID, nil)
	require.NoError(t, err)

	// 第二轮由另一位审核人驳回
	reason := "数据来源仍缺少引用"
	_, err = env.svc.RejectPost(ctx, actorOf(secondReviewerID, enums.RoleReviewer), post.ID,
		&dto.RejectPostRequest{Comments: reason})
	require.NoError(t, err)

	final := env.reloadPost(t, post.ID)
	assert.Equal(t, enums.PostStatusRejected, final.Status)
	assert.Equal(t, "<p>补充了数据来源的修订版</p>", final.Content)
	require.True(t, final.ReviewerID.Valid)
	assert.Equal(t, secondReviewerID, final.ReviewerID.String, "审核人应是最后一次裁定的操作者")
	require.True(t, final.ReviewerComments.Valid)
	assert.Equal(t, reason, final.ReviewerComments.String)
}

// 并发流转：第一个裁定落库后，基于过期状态的第二个裁定必须失败。
func TestReviewRace_SecondVerdictLoses(t *testing.T) {
	env := newWorkflowTestEnv(t)
	ctx := context.Background()

	authorID := env.seedUser(t, enums.RoleUser)
	reviewerID := env.seedUser(t, enums.RoleReviewer)
	post := env.seedPost(t, authorID, enums.PostStatusPending)

	_, err := env.svc.ApprovePost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID, nil)
	require.NoError(t, err)

	_, err = env.svc.RejectPost(ctx, actorOf(reviewerID, enums.RoleReviewer), post.ID,
		&dto.RejectPostRequest{Comments: "重复裁定"})
	assert.ErrorIs(t, err, myErrors.ErrInvalidState)
	assert.Equal(t, enums.PostStatusPublished, env.reloadPost(t, post.ID).Status, "先到的裁定结果应保持不变")
}
