package vo

import (
	"time"

	"github.com/Xushengqwer/blog_service/models/entities"
)

// FolderVO 定义了图片文件夹的响应数据结构
type FolderVO struct {
	FolderID  string    `json:"folder_id"`  // 文件夹ID（UUID）
	Name      string    `json:"name"`       // 文件夹名称
	CreatedAt time.Time `json:"created_at"` // 创建时间
}

// ImageVO 定义了图片库中单张图片的响应数据结构
type ImageVO struct {
	ImageID   string    `json:"image_id"`   // 图片ID（UUID）
	ImageURL  string    `json:"image_url"`  // 图片访问 URL
	ObjectKey string    `json:"object_key"` // 图片在COS中的ObjectKey
	Filename  string    `json:"filename"`   // 原始文件名
	FileSize  int64     `json:"file_size"`  // 文件大小（字节）
	FolderID  *string   `json:"folder_id"`  // 所属文件夹ID，可能为空
	CreatedAt time.Time `json:"created_at"` // 上传时间
}

// ImagePageVO 定义了图片库分页查询的响应结构。
type ImagePageVO struct {
	Images []*ImageVO `json:"images"` // 当前页的图片列表
	Total  int64      `json:"total"`  // 图片总数
}

// NewImageVOFromEntity 将图片实体转换为响应VO。
func NewImageVOFromEntity(image *entities.Image) *ImageVO {
	if image == nil {
		return nil
	}
	return &ImageVO{
		ImageID:   image.ImageID,
		ImageURL:  image.ImageURL,
		ObjectKey: image.ObjectKey,
		Filename:  image.Filename,
		FileSize:  image.FileSize,
		FolderID:  image.FolderID,
		CreatedAt: image.CreatedAt,
	}
}

// MapImagesToImageVOs 将图片实体列表转换为响应VO列表。
func MapImagesToImageVOs(images []*entities.Image) []*ImageVO {
	if len(images) == 0 {
		return []*ImageVO{}
	}
	vos := make([]*ImageVO, 0, len(images))
	for _, image := range images {
		if image != nil {
			vos = append(vos, NewImageVOFromEntity(image))
		}
	}
	return vos
}

// MapFoldersToFolderVOs 将文件夹实体列表转换为响应VO列表。
func MapFoldersToFolderVOs(folders []*entities.Folder) []*FolderVO {
	if len(folders) == 0 {
		return []*FolderVO{}
	}
	vos := make([]*FolderVO, 0, len(folders))
	for _, folder := range folders {
		if folder == nil {
			continue
		}
		vos = append(vos, &FolderVO{
			FolderID:  folder.FolderID,
			Name:      folder.Name,
			CreatedAt: folder.CreatedAt,
		})
	}
	return vos
}
