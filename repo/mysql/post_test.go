package mysql

import (
	"context"
	"testing"

	"github.com/Xushengqwer/go-common/commonerrors"
	commonConfig "github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/myErrors"
)

func newPostRepoTestEnv(t *testing.T) (*gorm.DB, PostRepository) {
	t.Helper()

	logger, err := core.NewZapLogger(commonConfig.ZapConfig{})
	require.NoError(t, err)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.Post{}, &entities.PostTag{}))

	return db, NewPostRepository(db, logger)
}

func seedPost(t *testing.T, db *gorm.DB, slug string, status enums.PostStatus) *entities.Post {
	t.Helper()
	post := &entities.Post{
		Title:    "测试帖子",
		Slug:     slug,
		Content:  "<p>正文</p>",
		AuthorID: "11111111-1111-1111-1111-111111111111",
		Status:   status,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// 条件更新成功路径：期望状态与当前状态一致时写入，并自增版本号。
func TestUpdateStatusIfCurrent_Success(t *testing.T) {
	db, repo := newPostRepoTestEnv(t)
	ctx := context.Background()
	post := seedPost(t, db, "cas-success", enums.PostStatusDraft)

	err := repo.UpdateStatusIfCurrent(ctx, db, post.ID, enums.PostStatusDraft,
		map[string]interface{}{"status": enums.PostStatusPending})
	require.NoError(t, err)

	updated, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPending, updated.Status)
	assert.Equal(t, post.Version+1, updated.Version)
}

// 期望状态已过期：帖子存在但状态不匹配，返回状态冲突而不是未找到。
func TestUpdateStatusIfCurrent_StaleExpectedStatus(t *testing.T) {
	db, repo := newPostRepoTestEnv(t)
	ctx := context.Background()
	post := seedPost(t, db, "cas-stale", enums.PostStatusPublished)

	err := repo.UpdateStatusIfCurrent(ctx, db, post.ID, enums.PostStatusPending,
		map[string]interface{}{"status": enums.PostStatusRejected})
	assert.ErrorIs(t, err, myErrors.ErrInvalidState)

	// 落败方不得留下任何写入痕迹
	untouched, getErr := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, getErr)
	assert.Equal(t, enums.PostStatusPublished, untouched.Status)
	assert.Equal(t, post.Version, untouched.Version)
}

func TestUpdateStatusIfCurrent_PostMissing(t *testing.T) {
	db, repo := newPostRepoTestEnv(t)
	ctx := context.Background()

	err := repo.UpdateStatusIfCurrent(ctx, db, 9999, enums.PostStatusDraft,
		map[string]interface{}{"status": enums.PostStatusPending})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}

// 两个基于同一快照的流转请求，只有先提交的一个会成功。
func TestUpdateStatusIfCurrent_FirstWriterWins(t *testing.T) {
	db, repo := newPostRepoTestEnv(t)
	ctx := context.Background()
	post := seedPost(t, db, "cas-race", enums.PostStatusPending)

	first := repo.UpdateStatusIfCurrent(ctx, db, post.ID, enums.PostStatusPending,
		map[string]interface{}{"status": enums.PostStatusPublished})
	require.NoError(t, first)

	second := repo.UpdateStatusIfCurrent(ctx, db, post.ID, enums.PostStatusPending,
		map[string]interface{}{"status": enums.PostStatusRejected})
	assert.ErrorIs(t, second, myErrors.ErrInvalidState)

	final, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PostStatusPublished, final.Status)
}

func TestSlugExists_ExcludesSelf(t *testing.T) {
	db, repo := newPostRepoTestEnv(t)
	ctx := context.Background()
	post := seedPost(t, db, "hello-world", enums.PostStatusDraft)

	taken, err := repo.SlugExists(ctx, "hello-world", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// 编辑场景：自己占用的 slug 不算冲突
	taken, err = repo.SlugExists(ctx, "hello-world", post.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.SlugExists(ctx, "not-used", 0)
	require.NoError(t, err)
	assert.False(t, taken)
}
