package service

import (
	"context"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/workflow"
)

// CommentService 定义了帖子评论的业务逻辑接口。
// - 评论挂在帖子下，读写都先做帖子可见性判定：
//   对操作者不可见的帖子，其评论同样按不存在处理。
type CommentService interface {
	// CreateComment 在指定帖子下发表评论，仅登录用户可用。
	// - 只有已发布的帖子接受新评论。
	CreateComment(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error)

	// ListComments 分页查询指定帖子的评论。
	ListComments(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ListCommentsRequest) (*vo.CommentPageVO, error)

	// DeleteComment 删除评论，评论者本人或管理员可用。
	DeleteComment(ctx context.Context, actor workflow.Actor, commentID uint64) error
}

type commentService struct {
	postRepo    mysql.PostRepository
	commentRepo mysql.CommentRepository
	logger      *core.ZapLogger
}

// NewCommentService 是 commentService 的构造函数。
func NewCommentService(postRepo mysql.PostRepository, commentRepo mysql.CommentRepository, logger *core.ZapLogger) CommentService {
	return &commentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// loadVisiblePost 读取帖子并做可见性判定，规则与帖子读路径一致。
func (s *commentService) loadVisiblePost(ctx context.Context, actor workflow.Actor, postID uint64) (*entities.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(actor, post) {
		return nil, commonerrors.ErrRepoNotFound
	}
	return post, nil
}

func (s *commentService) CreateComment(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.CreateCommentRequest) (*vo.CommentVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	post, err := s.loadVisiblePost(ctx, actor, postID)
	if err != nil {
		return nil, err
	}
	// 未发布的帖子不开放评论区
	if post.Status != enums.PostStatusPublished {
		return nil, commonerrors.ErrRepoNotFound
	}

	comment := &entities.Comment{
		PostID:   postID,
		AuthorID: actor.UserID,
		Content:  req.Content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("评论发表成功",
		zap.Uint64("commentID", comment.ID),
		zap.Uint64("postID", postID),
		zap.String("authorID", actor.UserID),
	)
	return &vo.CommentVO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *commentService) ListComments(ctx context.Context, actor workflow.Actor, postID uint64, req *dto.ListCommentsRequest) (*vo.CommentPageVO, error) {
	if _, err := s.loadVisiblePost(ctx, actor, postID); err != nil {
		return nil, err
	}

	offset := (req.Page - 1) * req.PageSize
	comments, total, err := s.commentRepo.GetCommentsByPostID(ctx, postID, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	return &vo.CommentPageVO{
		Comments: vo.MapCommentsToCommentVOs(comments),
		Total:    total,
	}, nil
}

func (s *commentService) DeleteComment(ctx context.Context, actor workflow.Actor, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}

	// 评论的删除权限规则与帖子一致：本人或管理员
	if !workflow.CanDelete(actor, comment.AuthorID) {
		return myErrors.ErrUnauthorized
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info("评论已删除",
		zap.Uint64("commentID", commentID),
		zap.String("actorID", actor.UserID),
	)
	return nil
}
