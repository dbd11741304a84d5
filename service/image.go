package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/dependencies"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/workflow"
)

// ImageService 定义了图片库的业务逻辑接口。
// - 图片字节存在 COS，数据库只记录元数据；所有操作以所有者身份隔离。
type ImageService interface {
	// UploadImage 上传一张图片到 COS 并登记元数据，仅登录用户可用。
	// - folderID 可选，指定时图片直接归档到该文件夹。
	UploadImage(ctx context.Context, actor workflow.Actor, fileHeader *multipart.FileHeader, folderID *string) (*vo.ImageVO, error)

	// CreateFolder 创建一个图片文件夹。
	CreateFolder(ctx context.Context, actor workflow.Actor, req *dto.CreateFolderRequest) (*vo.FolderVO, error)

	// ListFolders 返回当前用户的全部文件夹。
	ListFolders(ctx context.Context, actor workflow.Actor) ([]*vo.FolderVO, error)

	// ListImages 分页查询当前用户的图片，可按文件夹筛选。
	ListImages(ctx context.Context, actor workflow.Actor, req *dto.ListImagesRequest) (*vo.ImagePageVO, error)

	// MoveImage 把图片移入目标文件夹，folderID 为 nil 表示移出文件夹。
	MoveImage(ctx context.Context, actor workflow.Actor, imageID string, folderID *string) (*vo.ImageVO, error)

	// DeleteImage 删除图片：先删元数据，再异步清理 COS 对象。
	DeleteImage(ctx context.Context, actor workflow.Actor, imageID string) error
}

type imageService struct {
	imageRepo mysql.ImageRepository
	cosClient dependencies.COSClientInterface
	logger    *core.ZapLogger
}

// NewImageService 是 imageService 的构造函数。
func NewImageService(imageRepo mysql.ImageRepository, cosClient dependencies.COSClientInterface, logger *core.ZapLogger) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		cosClient: cosClient,
		logger:    logger,
	}
}

// generateImageObjectKey 创建一个唯一的 COS 对象键。
// 规则：image_library/YYYYMMDD/uuid.ext，不把用户可控的文件名拼进路径。
func generateImageObjectKey(originalFilename string) string {
	datePrefix := time.Now().Format("20060102")
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%s%s",
		constant.COSObjectKeyPrefixImageLibrary,
		datePrefix,
		uuid.NewString(),
		extension,
	)
}

// loadOwnedFolder 读取文件夹并校验归属，非本人的文件夹按不存在处理。
func (s *imageService) loadOwnedFolder(ctx context.Context, actor workflow.Actor, folderID string) (*entities.Folder, error) {
	folder, err := s.imageRepo.GetFolderByFolderID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.OwnerID != actor.UserID {
		return nil, commonerrors.ErrRepoNotFound
	}
	return folder, nil
}

// loadOwnedImage 读取图片并校验归属，非本人的图片按不存在处理。
func (s *imageService) loadOwnedImage(ctx context.Context, actor workflow.Actor, imageID string) (*entities.Image, error) {
	image, err := s.imageRepo.GetImageByImageID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image.OwnerID != actor.UserID {
		return nil, commonerrors.ErrRepoNotFound
	}
	return image, nil
}

func (s *imageService) UploadImage(ctx context.Context, actor workflow.Actor, fileHeader *multipart.FileHeader, folderID *string) (*vo.ImageVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	if folderID != nil {
		if _, err := s.loadOwnedFolder(ctx, actor, *folderID); err != nil {
			return nil, err
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("打开图片文件以上传失败",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return nil, fmt.Errorf("打开图片文件 %s 失败: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
		s.logger.Warn("未提供图片的内容类型，使用默认值",
			zap.String("filename", fileHeader.Filename),
			zap.String("defaultContentType", contentType))
	}

	objectKey := generateImageObjectKey(fileHeader.Filename)

	imageURL, err := s.cosClient.UploadFile(ctx, objectKey, file, fileHeader.Size, contentType)
	if err != nil {
		s.logger.Error("上传图片到 COS 失败",
			zap.String("filename", fileHeader.Filename),
			zap.String("objectKey", objectKey),
			zap.Error(err))
		return nil, fmt.Errorf("上传图片 %s 到 COS 失败: %w", fileHeader.Filename, err)
	}

	image := &entities.Image{
		ImageID:   uuid.NewString(),
		OwnerID:   actor.UserID,
		FolderID:  folderID,
		ObjectKey: objectKey,
		ImageURL:  imageURL,
		Filename:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
	}
	if err := s.imageRepo.CreateImage(ctx, image); err != nil {
		// 元数据写入失败，回收已上传的 COS 对象，避免产生孤立文件
		s.logger.Warn("图片元数据写入失败，尝试清理 COS 对象", zap.String("objectKey", objectKey))
		if cleanupErr := s.cosClient.DeleteObject(context.Background(), objectKey); cleanupErr != nil {
			s.logger.Error("清理孤立的 COS 文件失败", zap.String("objectKey", objectKey), zap.Error(cleanupErr))
		}
		return nil, err
	}

	s.logger.Info("图片上传成功",
		zap.String("imageID", image.ImageID),
		zap.String("objectKey", objectKey),
		zap.String("ownerID", actor.UserID),
	)
	return vo.NewImageVOFromEntity(image), nil
}

func (s *imageService) CreateFolder(ctx context.Context, actor workflow.Actor, req *dto.CreateFolderRequest) (*vo.FolderVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	folder := &entities.Folder{
		FolderID: uuid.NewString(),
		OwnerID:  actor.UserID,
		Name:     req.Name,
	}
	if err := s.imageRepo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("图片文件夹创建成功", zap.String("folderID", folder.FolderID), zap.String("ownerID", actor.UserID))
	return &vo.FolderVO{
		FolderID:  folder.FolderID,
		Name:      folder.Name,
		CreatedAt: folder.CreatedAt,
	}, nil
}

func (s *imageService) ListFolders(ctx context.Context, actor workflow.Actor) ([]*vo.FolderVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	folders, err := s.imageRepo.ListFoldersByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return vo.MapFoldersToFolderVOs(folders), nil
}

func (s *imageService) ListImages(ctx context.Context, actor workflow.Actor, req *dto.ListImagesRequest) (*vo.ImagePageVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	if req.FolderID != nil {
		if _, err := s.loadOwnedFolder(ctx, actor, *req.FolderID); err != nil {
			return nil, err
		}
	}

	offset := (req.Page - 1) * req.PageSize
	images, total, err := s.imageRepo.ListImagesByOwner(ctx, actor.UserID, req.FolderID, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	return &vo.ImagePageVO{
		Images: vo.MapImagesToImageVOs(images),
		Total:  total,
	}, nil
}

func (s *imageService) MoveImage(ctx context.Context, actor workflow.Actor, imageID string, folderID *string) (*vo.ImageVO, error) {
	image, err := s.loadOwnedImage(ctx, actor, imageID)
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		if _, err := s.loadOwnedFolder(ctx, actor, *folderID); err != nil {
			return nil, err
		}
	}

	if err := s.imageRepo.UpdateImageFolder(ctx, imageID, folderID); err != nil {
		return nil, err
	}

	image.FolderID = folderID
	return vo.NewImageVOFromEntity(image), nil
}

func (s *imageService) DeleteImage(ctx context.Context, actor workflow.Actor, imageID string) error {
	image, err := s.loadOwnedImage(ctx, actor, imageID)
	if err != nil {
		return err
	}

	if err := s.imageRepo.DeleteImage(ctx, imageID); err != nil {
		return err
	}

	// COS 清理异步执行，失败只记日志：元数据已删，对象成为可回收垃圾
	go func(objectKey string) {
		if delErr := s.cosClient.DeleteObject(context.Background(), objectKey); delErr != nil {
			s.logger.Error("删除 COS 对象失败", zap.String("objectKey", objectKey), zap.Error(delErr))
		}
	}(image.ObjectKey)

	s.logger.Info("图片已删除",
		zap.String("imageID", imageID),
		zap.String("ownerID", actor.UserID),
	)
	return nil
}
