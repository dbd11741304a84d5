package vo

import (
	"github.com/Xushengqwer/blog_service/models/entities"
)

// CategoryVO 定义了分类的响应数据结构
type CategoryVO struct {
	ID   uint64 `json:"id"`   // 分类ID
	Name string `json:"name"` // 分类名称
	Slug string `json:"slug"` // 分类 slug
}

// TagVO 定义了标签的响应数据结构
type TagVO struct {
	ID   uint64 `json:"id"`   // 标签ID
	Name string `json:"name"` // 标签名称
	Slug string `json:"slug"` // 标签 slug
}

// NewCategoryVOFromEntity 将分类实体转换为响应VO。
func NewCategoryVOFromEntity(category *entities.Category) *CategoryVO {
	if category == nil {
		return nil
	}
	return &CategoryVO{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	}
}

// MapCategoriesToCategoryVOs 将分类实体列表转换为响应VO列表。
func MapCategoriesToCategoryVOs(categories []*entities.Category) []*CategoryVO {
	if len(categories) == 0 {
		return []*CategoryVO{}
	}
	vos := make([]*CategoryVO, 0, len(categories))
	for _, category := range categories {
		if category != nil {
			vos = append(vos, NewCategoryVOFromEntity(category))
		}
	}
	return vos
}

// MapTagsToTagVOs 将标签实体列表转换为响应VO列表。
func MapTagsToTagVOs(tags []*entities.Tag) []*TagVO {
	if len(tags) == 0 {
		return []*TagVO{}
	}
	vos := make([]*TagVO, 0, len(tags))
	for _, tag := range tags {
		if tag == nil {
			continue
		}
		vos = append(vos, &TagVO{
			ID:   tag.ID,
			Name: tag.Name,
			Slug: tag.Slug,
		})
	}
	return vos
}
