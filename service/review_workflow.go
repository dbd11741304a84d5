package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/mq/producer"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/workflow"
)

// ReviewWorkflowService 定义了帖子生命周期的全部写操作：
// 提交审核、通过、驳回、编辑内容与删除。
// - 状态只能经由本服务变更；合法性判定全部委托给 workflow 包的纯函数，
//   本服务负责鉴权结果的编排、条件更新落库与事件发布。
// - 所有状态写入都使用带状态谓词的条件更新：两个并发的同一流转请求
//   只有一个会成功，落败方拿到 myErrors.ErrInvalidState。
type ReviewWorkflowService interface {
	// SubmitForReview 把草稿或已驳回的帖子提交进入待审核。
	// - 仅作者本人或管理员可触发。
	// - reviewerID 为建议指派的审核人，可选；必须指向审核人员角色的账号，
	//   否则返回 myErrors.ErrInvalidReviewer。
	// - 重新提交会清空上一轮的审核意见。
	SubmitForReview(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.SubmitForReviewRequest) (*vo.PostResponse, error)

	// ApprovePost 审核通过：待审核 -> 已发布。
	// - 仅审核人员或管理员可触发；审核人记录为操作者本人。
	// - 审核意见可选。
	ApprovePost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ApprovePostRequest) (*vo.PostResponse, error)

	// RejectPost 审核驳回：待审核 -> 已驳回。
	// - 仅审核人员或管理员可触发；必须给出非空（去除首尾空白后）的驳回理由，
	//   否则返回 myErrors.ErrRejectReasonRequired。
	RejectPost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.RejectPostRequest) (*vo.PostResponse, error)

	// UpdatePost 编辑帖子内容。
	// - 仅作者本人或管理员可触发；审核字段不在可编辑范围内。
	// - 编辑已发布帖子会把它降级为草稿并清空审核结论，这是编辑契约的
	//   显式组成部分；编辑待审核帖子不改变其排队状态。
	UpdatePost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.UpdatePostRequest) (*vo.PostResponse, error)

	// DeletePost 物理删除帖子及其评论、标签关联。
	// - 仅作者本人或管理员可触发；任何状态都可删除。
	DeletePost(ctx context.Context, actor workflow.Actor, postID uint64) error
}

// reviewWorkflowService 是 ReviewWorkflowService 接口的具体实现。
type reviewWorkflowService struct {
	db           *gorm.DB
	postRepo     mysql.PostRepository
	userRepo     mysql.UserRepository
	taxonomyRepo mysql.TaxonomyRepository
	commentRepo  mysql.CommentRepository
	cache        redis.Cache
	kafkaSvc     *producer.KafkaProducer
	logger       *core.ZapLogger
}

// NewReviewWorkflowService 是 reviewWorkflowService 的构造函数。
// - kafkaSvc 允许为 nil（本地开发不接 Kafka），事件发送会被跳过。
func NewReviewWorkflowService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	userRepo mysql.UserRepository,
	taxonomyRepo mysql.TaxonomyRepository,
	commentRepo mysql.CommentRepository,
	cache redis.Cache,
	kafkaSvc *producer.KafkaProducer,
	logger *core.ZapLogger,
) ReviewWorkflowService {
	return &reviewWorkflowService{
		db:           db,
		postRepo:     postRepo,
		userRepo:     userRepo,
		taxonomyRepo: taxonomyRepo,
		commentRepo:  commentRepo,
		cache:        cache,
		kafkaSvc:     kafkaSvc,
		logger:       logger,
	}
}

// loadVisiblePost 读取帖子并做可见性判定。
// - 不可见与不存在统一为 commonerrors.ErrRepoNotFound。
func (s *reviewWorkflowService) loadVisiblePost(ctx context.Context, actor workflow.Actor, postID uint64) (*entities.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(actor, post) {
		return nil, commonerrors.ErrRepoNotFound
	}
	return post, nil
}

// SubmitForReview 实现提交审核。
func (s *reviewWorkflowService) SubmitForReview(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.SubmitForReviewRequest) (*vo.PostResponse, error) {
	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if err := workflow.AuthorizeTrigger(actor, post.AuthorID, workflow.TriggerSubmit); err != nil {
		return nil, err
	}

	target, err := workflow.Transition(post.Status, workflow.TriggerSubmit)
	if err != nil {
		s.logger.Warn("提交审核：状态流转不合法",
			zap.Uint64("postID", postID),
			zap.Stringer("currentStatus", post.Status),
		)
		return nil, err
	}

	// 建议指派的审核人必须真实存在且是审核角色
	reviewerID := sql.NullString{}
	if req != nil && req.ReviewerID != nil && *req.ReviewerID != "" {
		isReviewer, roleErr := s.userRepo.HasRole(ctx, *req.ReviewerID, enums.RoleReviewer)
		if roleErr != nil {
			return nil, roleErr
		}
		if !isReviewer {
			s.logger.Warn("提交审核：指派的审核人无效",
				zap.Uint64("postID", postID),
				zap.String("reviewerID", *req.ReviewerID),
			)
			return nil, myErrors.ErrInvalidReviewer
		}
		reviewerID = sql.NullString{String: *req.ReviewerID, Valid: true}
	}

	// 重新提交时清空上一轮审核意见
	updateMap := map[string]interface{}{
		"status":            target,
		"reviewer_id":       reviewerID,
		"reviewer_comments": sql.NullString{},
	}
	if err := s.postRepo.UpdateStatusIfCurrent(ctx, s.db, postID, post.Status, updateMap); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.invalidateCacheAsync(postID)
	if s.kafkaSvc != nil {
		go func(p entities.Post) {
			if kafkaErr := s.kafkaSvc.SendPostSubmittedEvent(context.Background(), &p); kafkaErr != nil {
				s.logger.Error("发送帖子提交审核事件失败", zap.Error(kafkaErr), zap.Uint64("post_id", p.ID))
			}
		}(*updated)
	}

	s.logger.Info("帖子已提交审核",
		zap.Uint64("postID", postID),
		zap.String("actorID", actor.UserID),
		zap.Stringer("fromStatus", post.Status),
	)
	return vo.NewPostResponseFromEntity(updated), nil
}

// ApprovePost 实现审核通过。
func (s *reviewWorkflowService) ApprovePost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ApprovePostRequest) (*vo.PostResponse, error) {
	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if err := workflow.AuthorizeTrigger(actor, post.AuthorID, workflow.TriggerApprove); err != nil {
		return nil, err
	}

	target, err := workflow.Transition(post.Status, workflow.TriggerApprove)
	if err != nil {
		return nil, err
	}

	comments := sql.NullString{}
	if req != nil && req.Comments != nil && strings.TrimSpace(*req.Comments) != "" {
		comments = sql.NullString{String: strings.TrimSpace(*req.Comments), Valid: true}
	}

	updateMap := map[string]interface{}{
		"status":            target,
		"reviewer_id":       sql.NullString{String: actor.UserID, Valid: true},
		"reviewer_comments": comments,
	}
	if err := s.postRepo.UpdateStatusIfCurrent(ctx, s.db, postID, post.Status, updateMap); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.invalidateCacheAsync(postID)
	if s.kafkaSvc != nil {
		go func(p entities.Post, reviewerID string) {
			if kafkaErr := s.kafkaSvc.SendPostPublishedEvent(context.Background(), &p, reviewerID); kafkaErr != nil {
				s.logger.Error("发送帖子发布事件失败", zap.Error(kafkaErr), zap.Uint64("post_id", p.ID))
			}
		}(*updated, actor.UserID)
	}

	s.logger.Info("帖子审核通过",
		zap.Uint64("postID", postID),
		zap.String("reviewerID", actor.UserID),
	)
	return vo.NewPostResponseFromEntity(updated), nil
}

// RejectPost 实现审核驳回。
func (s *reviewWorkflowService) RejectPost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.RejectPostRequest) (*vo.PostResponse, error) {
	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if err := workflow.AuthorizeTrigger(actor, post.AuthorID, workflow.TriggerReject); err != nil {
		return nil, err
	}

	var comments string
	if req != nil {
		comments = req.Comments
	}
	if err := workflow.ValidateReviewComments(workflow.TriggerReject, comments); err != nil {
		return nil, err
	}

	target, err := workflow.Transition(post.Status, workflow.TriggerReject)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(comments)
	updateMap := map[string]interface{}{
		"status":            target,
		"reviewer_id":       sql.NullString{String: actor.UserID, Valid: true},
		"reviewer_comments": sql.NullString{String: reason, Valid: true},
	}
	if err := s.postRepo.UpdateStatusIfCurrent(ctx, s.db, postID, post.Status, updateMap); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.invalidateCacheAsync(postID)
	if s.kafkaSvc != nil {
		go func(pID uint64, authorID, reviewerID, rejectReason string) {
			if kafkaErr := s.kafkaSvc.SendPostRejectedEvent(context.Background(), pID, authorID, reviewerID, rejectReason); kafkaErr != nil {
				s.logger.Error("发送帖子驳回事件失败", zap.Error(kafkaErr), zap.Uint64("post_id", pID))
			}
		}(postID, post.AuthorID, actor.UserID, reason)
	}

	s.logger.Info("帖子已驳回",
		zap.Uint64("postID", postID),
		zap.String("reviewerID", actor.UserID),
	)
	return vo.NewPostResponseFromEntity(updated), nil
}

// UpdatePost 实现帖子内容编辑。
func (s *reviewWorkflowService) UpdatePost(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.UpdatePostRequest) (*vo.PostResponse, error) {
	// gin 层总是传入绑定好的 DTO，这里防御的是内部调用方（如消费者）传 nil
	if req == nil {
		return nil, errors.New("更新请求不能为空")
	}

	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}

	if !workflow.CanEdit(actor, post.AuthorID) {
		return nil, myErrors.ErrUnauthorized
	}

	updateMap := make(map[string]interface{})
	if req.Title != nil {
		updateMap["title"] = *req.Title
	}
	if req.Content != nil {
		updateMap["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updateMap["excerpt"] = *req.Excerpt
	}
	if req.CategoryID != nil {
		updateMap["category_id"] = *req.CategoryID
	}
	if req.FeaturedImageURL != nil {
		updateMap["featured_image_url"] = *req.FeaturedImageURL
	}
	if req.Slug != nil && *req.Slug != "" && *req.Slug != post.Slug {
		taken, slugErr := s.postRepo.SlugExists(ctx, *req.Slug, postID)
		if slugErr != nil {
			return nil, slugErr
		}
		if taken {
			return nil, myErrors.ErrSlugTaken
		}
		updateMap["slug"] = *req.Slug
	}

	// 编辑对状态的隐式影响：已发布 -> 草稿，并撤销先前的审核结论
	target, demoted := workflow.DemoteOnEdit(post.Status)
	if demoted {
		updateMap["status"] = target
		updateMap["reviewer_id"] = sql.NullString{}
		updateMap["reviewer_comments"] = sql.NullString{}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updateMap) > 0 {
			if demoted {
				// 降级与内容写入必须是同一个条件更新：帖子若已被并发流转，
				// 本次编辑整体失败而不是把过期状态写回去
				if repoErr := s.postRepo.UpdateStatusIfCurrent(ctx, tx, postID, post.Status, updateMap); repoErr != nil {
					return repoErr
				}
			} else {
				if repoErr := s.postRepo.UpdatePostFields(ctx, tx, postID, updateMap); repoErr != nil {
					return repoErr
				}
			}
		}
		if req.TagIDs != nil {
			if repoErr := s.taxonomyRepo.ReplacePostTags(ctx, tx, postID, *req.TagIDs); repoErr != nil {
				return fmt.Errorf("替换帖子标签失败: %w", repoErr)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, myErrors.ErrInvalidState) {
			s.logger.Warn("编辑帖子失败：状态已被并发修改", zap.Uint64("postID", postID))
		}
		return nil, err
	}

	updated, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.invalidateCacheAsync(postID)

	s.logger.Info("帖子编辑成功",
		zap.Uint64("postID", postID),
		zap.String("actorID", actor.UserID),
		zap.Bool("demotedToDraft", demoted),
	)
	return vo.NewPostResponseFromEntity(updated), nil
}

// DeletePost 实现帖子删除。
func (s *reviewWorkflowService) DeletePost(ctx context.Context, actor workflow.Actor, postID uint64) error {
	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return err
	}

	if !workflow.CanDelete(actor, post.AuthorID) {
		return myErrors.ErrUnauthorized
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if repoErr := s.commentRepo.DeleteCommentsByPostID(ctx, tx, postID); repoErr != nil {
			return fmt.Errorf("删除帖子评论失败: %w", repoErr)
		}
		if repoErr := s.postRepo.DeletePost(ctx, tx, postID); repoErr != nil {
			return fmt.Errorf("删除帖子失败: %w", repoErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCacheAsync(postID)
	if s.kafkaSvc != nil {
		go func(pID uint64) {
			if kafkaErr := s.kafkaSvc.SendPostDeleteEvent(context.Background(), pID); kafkaErr != nil {
				s.logger.Error("发送帖子删除事件失败", zap.Error(kafkaErr), zap.Uint64("post_id", pID))
			}
		}(postID)
	}

	s.logger.Info("帖子已删除",
		zap.Uint64("postID", postID),
		zap.String("actorID", actor.UserID),
	)
	return nil
}

// invalidateCacheAsync 异步删除详情缓存，失败只记日志。
func (s *reviewWorkflowService) invalidateCacheAsync(postID uint64) {
	go func(pID uint64) {
		if err := s.cache.InvalidatePostDetail(context.Background(), pID); err != nil {
			s.logger.Error("删除帖子详情缓存失败", zap.Error(err), zap.Uint64("post_id", pID))
		}
	}(postID)
}
