package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/workflow"
)

// PostAdminService 定义了管理员专属的帖子管理操作。
type PostAdminService interface {
	// ListPostsByCondition 按条件分页查询全部帖子，不做可见性过滤。
	// - 仅管理员可访问。
	ListPostsByCondition(ctx context.Context, actor workflow.Actor, req *dto.ListPostsByConditionRequest) (*vo.ListPostsAdminByConditionResponse, error)

	// ForcePostStatus 强制把帖子置为任意状态，绕过状态流转表。
	// - 仅管理员可访问；目标状态为已驳回时仍然必须给出非空理由，
	//   保证"被驳回的帖子总带有理由"这一约束在后门路径上也成立。
	ForcePostStatus(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ForcePostStatusRequest) (*vo.PostResponse, error)
}

// postAdminService 是 PostAdminService 接口的具体实现。
type postAdminService struct {
	db       *gorm.DB
	postRepo mysql.PostRepository
	cache    redis.Cache
	logger   *core.ZapLogger
}

// NewPostAdminService 是 postAdminService 的构造函数。
func NewPostAdminService(db *gorm.DB, postRepo mysql.PostRepository, cache redis.Cache, logger *core.ZapLogger) PostAdminService {
	return &postAdminService{
		db:       db,
		postRepo: postRepo,
		cache:    cache,
		logger:   logger,
	}
}

// ListPostsByCondition 实现管理员条件查询。
func (s *postAdminService) ListPostsByCondition(ctx context.Context, actor workflow.Actor, req *dto.ListPostsByConditionRequest) (*vo.ListPostsAdminByConditionResponse, error) {
	if !actor.IsAdmin() {
		return nil, myErrors.ErrUnauthorized
	}

	posts, total, err := s.postRepo.ListPostsByCondition(ctx, req)
	if err != nil {
		return nil, err
	}

	return &vo.ListPostsAdminByConditionResponse{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}

// ForcePostStatus 实现管理员状态覆写。
func (s *postAdminService) ForcePostStatus(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ForcePostStatusRequest) (*vo.PostResponse, error) {
	if !actor.IsAdmin() {
		return nil, myErrors.ErrUnauthorized
	}

	target := enums.PostStatus(req.Status)
	if !target.IsValid() {
		return nil, myErrors.ErrInvalidState
	}

	reason := strings.TrimSpace(req.Comments)
	if target == enums.PostStatusRejected && reason == "" {
		return nil, myErrors.ErrRejectReasonRequired
	}

	updateMap := map[string]interface{}{
		"status":      target,
		"reviewer_id": sql.NullString{String: actor.UserID, Valid: true},
	}
	if reason != "" {
		updateMap["reviewer_comments"] = sql.NullString{String: reason, Valid: true}
	} else {
		updateMap["reviewer_comments"] = sql.NullString{}
	}

	if err := s.postRepo.UpdatePostFields(ctx, s.db, postID, updateMap); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	// 状态覆写后公开缓存必须失效
	go func(pID uint64) {
		if cacheErr := s.cache.InvalidatePostDetail(context.Background(), pID); cacheErr != nil {
			s.logger.Error("删除帖子详情缓存失败", zap.Error(cacheErr), zap.Uint64("post_id", pID))
		}
	}(postID)

	s.logger.Info("管理员强制修改帖子状态",
		zap.Uint64("postID", postID),
		zap.String("adminID", actor.UserID),
		zap.Stringer("targetStatus", target),
	)
	return vo.NewPostResponseFromEntity(updated), nil
}
