package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
)

// UserRepository 定义了用户数据在 MySQL 中的持久化操作接口。
// - 用户的注册与资料管理属于用户服务，本服务只维护一份角色与展示信息的投影，
//   用于作者存在性校验与审核人角色校验。
type UserRepository interface {
	// CreateUser 持久化一个新的用户投影记录（由用户服务的事件或种子数据写入）。
	CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error

	// GetUserByUserID 根据用户ID（UUID）检索用户。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetUserByUserID(ctx context.Context, userID string) (*entities.User, error)

	// HasRole 判断指定用户是否存在且具有给定角色。
	// - 用户不存在时返回 (false, nil)，调用方据此决定返回何种业务错误。
	HasRole(ctx context.Context, userID string, role enums.UserRole) (bool, error)
}

type userRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewUserRepository 是 userRepository 的构造函数。
func NewUserRepository(db *gorm.DB, logger *core.ZapLogger) UserRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, db *gorm.DB, user *entities.User) error {
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		r.logger.Error("创建用户投影记录失败", zap.Error(err), zap.String("userID", user.UserID))
		return err
	}
	return nil
}

func (r *userRepository) GetUserByUserID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User

	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据用户ID获取用户失败", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) HasRole(ctx context.Context, userID string, role enums.UserRole) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		r.logger.Error("校验用户角色失败", zap.String("userID", userID), zap.Error(err))
		return false, err
	}

	return count > 0, nil
}
