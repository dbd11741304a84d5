package dto

// CreateFolderRequest 定义创建图片文件夹的请求数据结构
type CreateFolderRequest struct {
	Name string `json:"name" binding:"required,max=100"` // 文件夹名称，必填
}

// ListImagesRequest 定义分页查询图片库的请求数据结构
type ListImagesRequest struct {
	FolderID *string `json:"folder_id" form:"folder_id" binding:"omitempty,uuid"` // 按文件夹筛选，可选；不传则返回未归档图片
	Page     int     `json:"page" form:"page" binding:"required,gt=0"`            // 页码，从 1 开始，必填
	PageSize int     `json:"page_size" form:"page_size" binding:"required,gt=0"`  // 每页数量，必填
}

// MoveImageRequest 定义移动图片到文件夹的请求数据结构
type MoveImageRequest struct {
	FolderID *string `json:"folder_id" binding:"omitempty,uuid"` // 目标文件夹ID；nil 表示移出文件夹
}
