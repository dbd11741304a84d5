package service

import (
	"context"
	"errors"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/workflow"
)

// TaxonomyService 定义了分类与标签的业务逻辑接口。
// - 读取对所有人开放；写操作仅管理员可用。
type TaxonomyService interface {
	CreateCategory(ctx context.Context, actor workflow.Actor, req *dto.CreateCategoryRequest) (*vo.CategoryVO, error)
	UpdateCategory(ctx context.Context, actor workflow.Actor, categoryID uint64, req *dto.UpdateCategoryRequest) (*vo.CategoryVO, error)
	DeleteCategory(ctx context.Context, actor workflow.Actor, categoryID uint64) error
	ListCategories(ctx context.Context) ([]*vo.CategoryVO, error)

	CreateTag(ctx context.Context, actor workflow.Actor, req *dto.CreateTagRequest) (*vo.TagVO, error)
	ListTags(ctx context.Context) ([]*vo.TagVO, error)
}

type taxonomyService struct {
	taxonomyRepo mysql.TaxonomyRepository
	logger       *core.ZapLogger
}

// NewTaxonomyService 是 taxonomyService 的构造函数。
func NewTaxonomyService(taxonomyRepo mysql.TaxonomyRepository, logger *core.ZapLogger) TaxonomyService {
	return &taxonomyService{
		taxonomyRepo: taxonomyRepo,
		logger:       logger,
	}
}

func (s *taxonomyService) CreateCategory(ctx context.Context, actor workflow.Actor, req *dto.CreateCategoryRequest) (*vo.CategoryVO, error) {
	if !actor.IsAdmin() {
		return nil, myErrors.ErrUnauthorized
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	// slug 冲突在这里显式检查，给调用方一个可识别的错误而不是裸的唯一键冲突
	if _, err := s.taxonomyRepo.GetCategoryBySlug(ctx, slug); err == nil {
		return nil, myErrors.ErrSlugTaken
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return nil, err
	}

	category := &entities.Category{Name: req.Name, Slug: slug}
	if err := s.taxonomyRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("分类创建成功", zap.Uint64("categoryID", category.ID), zap.String("slug", slug))
	return vo.NewCategoryVOFromEntity(category), nil
}

func (s *taxonomyService) UpdateCategory(ctx context.Context, actor workflow.Actor, categoryID uint64, req *dto.UpdateCategoryRequest) (*vo.CategoryVO, error) {
	if !actor.IsAdmin() {
		return nil, myErrors.ErrUnauthorized
	}

	updateMap := make(map[string]interface{})
	if req.Name != nil {
		updateMap["name"] = *req.Name
	}
	if req.Slug != nil && *req.Slug != "" {
		existing, err := s.taxonomyRepo.GetCategoryBySlug(ctx, *req.Slug)
		if err == nil && existing.ID != categoryID {
			return nil, myErrors.ErrSlugTaken
		}
		if err != nil && !errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, err
		}
		updateMap["slug"] = *req.Slug
	}

	if err := s.taxonomyRepo.UpdateCategory(ctx, categoryID, updateMap); err != nil {
		return nil, err
	}

	category, err := s.taxonomyRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return vo.NewCategoryVOFromEntity(category), nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, actor workflow.Actor, categoryID uint64) error {
	if !actor.IsAdmin() {
		return myErrors.ErrUnauthorized
	}

	if err := s.taxonomyRepo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	s.logger.Info("分类已删除", zap.Uint64("categoryID", categoryID), zap.String("adminID", actor.UserID))
	return nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*vo.CategoryVO, error) {
	categories, err := s.taxonomyRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return vo.MapCategoriesToCategoryVOs(categories), nil
}

func (s *taxonomyService) CreateTag(ctx context.Context, actor workflow.Actor, req *dto.CreateTagRequest) (*vo.TagVO, error) {
	if !actor.IsAdmin() {
		return nil, myErrors.ErrUnauthorized
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if _, err := s.taxonomyRepo.GetTagBySlug(ctx, slug); err == nil {
		return nil, myErrors.ErrSlugTaken
	} else if !errors.Is(err, commonerrors.ErrRepoNotFound) {
		return nil, err
	}

	tag := &entities.Tag{Name: req.Name, Slug: slug}
	if err := s.taxonomyRepo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("标签创建成功", zap.Uint64("tagID", tag.ID), zap.String("slug", slug))
	return &vo.TagVO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug}, nil
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]*vo.TagVO, error) {
	tags, err := s.taxonomyRepo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return vo.MapTagsToTagVOs(tags), nil
}
