package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// CommentRepository 定义了评论数据在 MySQL 中的持久化操作接口。
type CommentRepository interface {
	// CreateComment 持久化一条新评论。
	CreateComment(ctx context.Context, comment *entities.Comment) error

	// GetCommentByID 根据 ID 检索评论，未找到时返回 commonerrors.ErrRepoNotFound。
	GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error)

	// GetCommentsByPostID 分页查询指定帖子的评论，按发表时间升序。
	GetCommentsByPostID(ctx context.Context, postID uint64, offset, limit int) ([]*entities.Comment, int64, error)

	// DeleteComment 物理删除指定评论，未找到时返回 commonerrors.ErrRepoNotFound。
	DeleteComment(ctx context.Context, id uint64) error

	// DeleteCommentsByPostID 删除指定帖子的全部评论（帖子删除时的级联清理）。
	DeleteCommentsByPostID(ctx context.Context, db *gorm.DB, postID uint64) error
}

type commentRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewCommentRepository 是 commentRepository 的构造函数。
func NewCommentRepository(db *gorm.DB, logger *core.ZapLogger) CommentRepository {
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		r.logger.Error("创建评论失败", zap.Error(err), zap.Uint64("postID", comment.PostID))
		return err
	}
	return nil
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uint64) (*entities.Comment, error) {
	var comment entities.Comment

	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取评论失败", zap.Uint64("commentID", id), zap.Error(err))
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepository) GetCommentsByPostID(ctx context.Context, postID uint64, offset, limit int) ([]*entities.Comment, int64, error) {
	var comments []*entities.Comment
	var totalCount int64

	countQuery := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("post_id = ?", postID)
	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取评论列表：计数查询失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, 0, fmt.Errorf("计数评论失败: %w", err)
	}

	if totalCount == 0 {
		return comments, 0, nil
	}

	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		r.logger.Error("获取评论列表：列表查询失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, 0, fmt.Errorf("查询评论列表失败: %w", err)
	}

	return comments, totalCount, nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&entities.Comment{}, id)
	if result.Error != nil {
		r.logger.Error("删除评论失败", zap.Error(result.Error), zap.Uint64("commentID", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *commentRepository) DeleteCommentsByPostID(ctx context.Context, db *gorm.DB, postID uint64) error {
	if err := db.WithContext(ctx).Unscoped().Where("post_id = ?", postID).Delete(&entities.Comment{}).Error; err != nil {
		r.logger.Error("删除帖子评论失败", zap.Error(err), zap.Uint64("postID", postID))
		return err
	}
	return nil
}
