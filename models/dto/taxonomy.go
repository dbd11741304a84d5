package dto

// CreateCategoryRequest 定义创建分类的请求数据结构
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`        // 分类名称，必填
	Slug string `json:"slug" binding:"omitempty,max=100"`       // 分类 slug，可选；留空则由名称生成
}

// UpdateCategoryRequest 定义更新分类的请求数据结构
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"` // 分类名称，可选
	Slug *string `json:"slug" binding:"omitempty,max=100"` // 分类 slug，可选
}

// CreateTagRequest 定义创建标签的请求数据结构
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`  // 标签名称，必填
	Slug string `json:"slug" binding:"omitempty,max=100"` // 标签 slug，可选；留空则由名称生成
}
