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

// ImageRepository 定义了图片库元数据在 MySQL 中的持久化操作接口。
// - 文件字节存储在 COS 上，这里只维护对象键与归属信息。
type ImageRepository interface {
	// CreateFolder 持久化一个新的图片文件夹。
	CreateFolder(ctx context.Context, folder *entities.Folder) error

	// GetFolderByFolderID 根据文件夹ID（UUID）检索文件夹。
	GetFolderByFolderID(ctx context.Context, folderID string) (*entities.Folder, error)

	// ListFoldersByOwner 返回指定用户的文件夹列表，按创建时间升序。
	ListFoldersByOwner(ctx context.Context, ownerID string) ([]*entities.Folder, error)

	// CreateImage 持久化一条图片元数据。
	CreateImage(ctx context.Context, image *entities.Image) error

	// GetImageByImageID 根据图片ID（UUID）检索图片元数据。
	GetImageByImageID(ctx context.Context, imageID string) (*entities.Image, error)

	// ListImagesByOwner 分页查询指定用户的图片，可按文件夹筛选。
	// - folderID 为 nil 时返回未归档图片。
	ListImagesByOwner(ctx context.Context, ownerID string, folderID *string, offset, limit int) ([]*entities.Image, int64, error)

	// UpdateImageFolder 移动图片到目标文件夹，folderID 为 nil 表示移出文件夹。
	UpdateImageFolder(ctx context.Context, imageID string, folderID *string) error

	// DeleteImage 删除图片元数据，未找到时返回 commonerrors.ErrRepoNotFound。
	DeleteImage(ctx context.Context, imageID string) error
}

type imageRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewImageRepository 是 imageRepository 的构造函数。
func NewImageRepository(db *gorm.DB, logger *core.ZapLogger) ImageRepository {
	return &imageRepository{
		db:     db,
		logger: logger,
	}
}

func (r *imageRepository) CreateFolder(ctx context.Context, folder *entities.Folder) error {
	if err := r.db.WithContext(ctx).Create(folder).Error; err != nil {
		r.logger.Error("创建图片文件夹失败", zap.Error(err), zap.String("ownerID", folder.OwnerID))
		return err
	}
	return nil
}

func (r *imageRepository) GetFolderByFolderID(ctx context.Context, folderID string) (*entities.Folder, error) {
	var folder entities.Folder

	err := r.db.WithContext(ctx).Where("folder_id = ?", folderID).First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取图片文件夹失败", zap.String("folderID", folderID), zap.Error(err))
		return nil, err
	}

	return &folder, nil
}

func (r *imageRepository) ListFoldersByOwner(ctx context.Context, ownerID string) ([]*entities.Folder, error) {
	var folders []*entities.Folder

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&folders).Error
	if err != nil {
		r.logger.Error("获取图片文件夹列表失败", zap.Error(err), zap.String("ownerID", ownerID))
		return nil, err
	}
	return folders, nil
}

func (r *imageRepository) CreateImage(ctx context.Context, image *entities.Image) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		r.logger.Error("写入图片元数据失败", zap.Error(err), zap.String("objectKey", image.ObjectKey))
		return err
	}
	return nil
}

func (r *imageRepository) GetImageByImageID(ctx context.Context, imageID string) (*entities.Image, error) {
	var image entities.Image

	err := r.db.WithContext(ctx).Where("image_id = ?", imageID).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取图片失败", zap.String("imageID", imageID), zap.Error(err))
		return nil, err
	}

	return &image, nil
}

func (r *imageRepository) ListImagesByOwner(ctx context.Context, ownerID string, folderID *string, offset, limit int) ([]*entities.Image, int64, error) {
	var images []*entities.Image
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Image{}).Where("owner_id = ?", ownerID)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取图片列表：计数查询失败", zap.Error(err), zap.String("ownerID", ownerID))
		return nil, 0, fmt.Errorf("计数图片失败: %w", err)
	}

	if totalCount == 0 {
		return images, 0, nil
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&images).Error; err != nil {
		r.logger.Error("获取图片列表：列表查询失败", zap.Error(err), zap.String("ownerID", ownerID))
		return nil, 0, fmt.Errorf("查询图片列表失败: %w", err)
	}

	return images, totalCount, nil
}

func (r *imageRepository) UpdateImageFolder(ctx context.Context, imageID string, folderID *string) error {
	// 不检查 RowsAffected：图片已在目标文件夹时影响行数为 0，不代表图片不存在
	err := r.db.WithContext(ctx).
		Model(&entities.Image{}).
		Where("image_id = ?", imageID).
		Update("folder_id", folderID).Error
	if err != nil {
		r.logger.Error("移动图片失败", zap.Error(err), zap.String("imageID", imageID))
		return err
	}
	return nil
}

func (r *imageRepository) DeleteImage(ctx context.Context, imageID string) error {
	result := r.db.WithContext(ctx).Unscoped().Where("image_id = ?", imageID).Delete(&entities.Image{})
	if result.Error != nil {
		r.logger.Error("删除图片元数据失败", zap.Error(result.Error), zap.String("imageID", imageID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}
