package mysql

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// TaxonomyRepository 定义了分类与标签在 MySQL 中的持久化操作接口。
// - 帖子与标签的多对多关联由本仓库显式维护（post_tags 连接表），
//   不依赖 GORM 的关联自动加载。
type TaxonomyRepository interface {
	// CreateCategory 持久化一个新的分类。
	CreateCategory(ctx context.Context, category *entities.Category) error

	// UpdateCategory 按字段映射更新分类，未找到时返回 commonerrors.ErrRepoNotFound。
	UpdateCategory(ctx context.Context, categoryID uint64, updateMap map[string]interface{}) error

	// DeleteCategory 删除分类，引用它的帖子 category_id 置空。
	DeleteCategory(ctx context.Context, categoryID uint64) error

	// GetCategoryByID 根据 ID 检索分类，未找到时返回 commonerrors.ErrRepoNotFound。
	GetCategoryByID(ctx context.Context, categoryID uint64) (*entities.Category, error)

	// GetCategoryBySlug 根据 slug 检索分类，未找到时返回 commonerrors.ErrRepoNotFound。
	GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error)

	// ListCategories 返回全部分类，按名称升序。
	ListCategories(ctx context.Context) ([]*entities.Category, error)

	// CreateTag 持久化一个新的标签。
	CreateTag(ctx context.Context, tag *entities.Tag) error

	// GetTagBySlug 根据 slug 检索标签，未找到时返回 commonerrors.ErrRepoNotFound。
	GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error)

	// ListTags 返回全部标签，按名称升序。
	ListTags(ctx context.Context) ([]*entities.Tag, error)

	// ReplacePostTags 以整体替换的方式重建帖子的标签关联。
	// - 先删后插，放在事务中保证一致性。
	ReplacePostTags(ctx context.Context, db *gorm.DB, postID uint64, tagIDs []uint64) error

	// GetTagsByPostID 返回指定帖子的标签列表。
	GetTagsByPostID(ctx context.Context, postID uint64) ([]*entities.Tag, error)
}

type taxonomyRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewTaxonomyRepository 是 taxonomyRepository 的构造函数。
func NewTaxonomyRepository(db *gorm.DB, logger *core.ZapLogger) TaxonomyRepository {
	return &taxonomyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		r.logger.Error("创建分类失败", zap.Error(err), zap.String("name", category.Name))
		return err
	}
	return nil
}

func (r *taxonomyRepository) UpdateCategory(ctx context.Context, categoryID uint64, updateMap map[string]interface{}) error {
	if len(updateMap) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", categoryID).
		Updates(updateMap)
	if result.Error != nil {
		r.logger.Error("更新分类失败", zap.Error(result.Error), zap.Uint64("categoryID", categoryID))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *taxonomyRepository) DeleteCategory(ctx context.Context, categoryID uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 引用该分类的帖子退回未分类，而不是级联删除帖子
		if err := tx.Model(&entities.Post{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return err
		}

		result := tx.Unscoped().Delete(&entities.Category{}, categoryID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return commonerrors.ErrRepoNotFound
		}
		return nil
	})
}

func (r *taxonomyRepository) GetCategoryByID(ctx context.Context, categoryID uint64) (*entities.Category, error) {
	var category entities.Category

	err := r.db.WithContext(ctx).First(&category, categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取分类失败", zap.Uint64("categoryID", categoryID), zap.Error(err))
		return nil, err
	}

	return &category, nil
}

func (r *taxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	var category entities.Category

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取分类失败", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	return &category, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		r.logger.Error("获取分类列表失败", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		r.logger.Error("创建标签失败", zap.Error(err), zap.String("name", tag.Name))
		return err
	}
	return nil
}

func (r *taxonomyRepository) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	var tag entities.Tag

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取标签失败", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	return &tag, nil
}

func (r *taxonomyRepository) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag

	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		r.logger.Error("获取标签列表失败", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

func (r *taxonomyRepository) ReplacePostTags(ctx context.Context, db *gorm.DB, postID uint64, tagIDs []uint64) error {
	if err := db.WithContext(ctx).Where("post_id = ?", postID).Delete(&entities.PostTag{}).Error; err != nil {
		r.logger.Error("清理帖子标签关联失败", zap.Error(err), zap.Uint64("postID", postID))
		return err
	}

	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]*entities.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, &entities.PostTag{PostID: postID, TagID: tagID})
	}
	if err := db.WithContext(ctx).Create(&links).Error; err != nil {
		r.logger.Error("写入帖子标签关联失败", zap.Error(err), zap.Uint64("postID", postID))
		return err
	}
	return nil
}

func (r *taxonomyRepository) GetTagsByPostID(ctx context.Context, postID uint64) ([]*entities.Tag, error) {
	var tags []*entities.Tag

	err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		r.logger.Error("获取帖子标签列表失败", zap.Error(err), zap.Uint64("postID", postID))
		return nil, err
	}
	return tags, nil
}
