package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// ImageController 定义图片库的控制器结构体
type ImageController struct {
	imageService service.ImageService
}

// NewImageController 构造函数，用于创建 ImageController 实例
func NewImageController(imageService service.ImageService) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// UploadImage 上传图片到图片库
// @Summary      上传图片
// @Description  上传一张图片到 COS 并登记元数据。请求体为 multipart/form-data，文件字段名为 file，可选 folder_id 表单字段指定归档文件夹。
// @Tags         images (图片库)
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "图片文件"
// @Param        folder_id formData string false "目标文件夹ID (UUID)"
// @Success      200 {object} vo.BaseResponseWrapper "图片上传成功"
// @Failure      400 {object} vo.BaseResponseWrapper "缺少文件或表单解析失败"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "目标文件夹不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/images [post]
func (ctrl *ImageController) UploadImage(c *gin.Context) {
	// 设置表单解析的最大内存，超出部分会存到临时磁盘文件
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "解析表单数据失败: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未能获取上传的图片文件: "+err.Error())
		return
	}

	var folderID *string
	if raw := c.PostForm("folder_id"); raw != "" {
		folderID = &raw
	}

	actor := middleware.GetActor(c)
	if actor.UserID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "上传图片需要登录")
		return
	}

	image, err := ctrl.imageService.UploadImage(c.Request.Context(), actor, fileHeader, folderID)
	if err != nil {
		respondServiceError(c, err, "上传图片失败")
		return
	}
	response.RespondSuccess(c, image, "图片上传成功")
}

// ListImages 分页查询图片库
// @Summary      获取我的图片列表
// @Description  分页获取当前用户的图片，可按文件夹筛选；不传 folder_id 时返回未归档图片。
// @Tags         images (图片库)
// @Accept       json
// @Produce      json
// @Param        folder_id query string false "文件夹ID (UUID)"
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.ImagePageResponseWrapper "图片列表获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/images [get]
func (ctrl *ImageController) ListImages(c *gin.Context) {
	var req dto.ListImagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	pageVO, err := ctrl.imageService.ListImages(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "获取图片列表失败")
		return
	}
	response.RespondSuccess(c, pageVO, "图片列表获取成功")
}

// MoveImage 移动图片到文件夹
// @Summary      移动图片
// @Description  把图片移入目标文件夹；folder_id 传 null 表示移出文件夹。仅图片所有者可操作。
// @Tags         images (图片库)
// @Accept       json
// @Produce      json
// @Param        image_id path string true "图片 ID (UUID)"
// @Param        request body dto.MoveImageRequest true "目标文件夹"
// @Success      200 {object} vo.BaseResponseWrapper "图片移动成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      404 {object} vo.BaseResponseWrapper "图片或目标文件夹不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/images/{image_id}/folder [put]
func (ctrl *ImageController) MoveImage(c *gin.Context) {
	imageID := c.Param("image_id")
	if imageID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "image_id 不能为空")
		return
	}

	var req dto.MoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	image, err := ctrl.imageService.MoveImage(c.Request.Context(), middleware.GetActor(c), imageID, req.FolderID)
	if err != nil {
		respondServiceError(c, err, "移动图片失败")
		return
	}
	response.RespondSuccess(c, image, "图片移动成功")
}

// DeleteImage 删除图片
// @Summary      删除图片
// @Description  删除图片元数据并异步清理 COS 对象。仅图片所有者可操作。
// @Tags         images (图片库)
// @Accept       json
// @Produce      json
// @Param        image_id path string true "图片 ID (UUID)"
// @Success      200 {object} vo.BaseResponseWrapper "图片删除成功"
// @Failure      404 {object} vo.BaseResponseWrapper "图片不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/images/{image_id} [delete]
func (ctrl *ImageController) DeleteImage(c *gin.Context) {
	imageID := c.Param("image_id")
	if imageID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "image_id 不能为空")
		return
	}

	if err := ctrl.imageService.DeleteImage(c.Request.Context(), middleware.GetActor(c), imageID); err != nil {
		respondServiceError(c, err, "删除图片失败")
		return
	}
	response.RespondSuccess[any](c, nil, "图片删除成功")
}

// CreateFolder 创建图片文件夹
// @Summary      创建图片文件夹
// @Description  创建一个属于当前用户的图片文件夹。
// @Tags         images (图片库)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFolderRequest true "文件夹信息"
// @Success      200 {object} vo.BaseResponseWrapper "文件夹创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/folders [post]
func (ctrl *ImageController) CreateFolder(c *gin.Context) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	folder, err := ctrl.imageService.CreateFolder(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "创建文件夹失败")
		return
	}
	response.RespondSuccess(c, folder, "文件夹创建成功")
}

// ListFolders 获取当前用户的文件夹列表
// @Summary      获取我的文件夹列表
// @Description  返回当前用户的全部图片文件夹，按创建时间升序。
// @Tags         images (图片库)
// @Accept       json
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "文件夹列表获取成功"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/folders [get]
func (ctrl *ImageController) ListFolders(c *gin.Context) {
	folders, err := ctrl.imageService.ListFolders(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondServiceError(c, err, "获取文件夹列表失败")
		return
	}
	response.RespondSuccess(c, folders, "文件夹列表获取成功")
}

// RegisterRoutes 注册 ImageController 的路由
func (ctrl *ImageController) RegisterRoutes(group *gin.RouterGroup) {
	images := group.Group("/images")
	{
		images.POST("", ctrl.UploadImage)               // POST   /api/v1/blog/images
		images.GET("", ctrl.ListImages)                 // GET    /api/v1/blog/images
		images.PUT("/:image_id/folder", ctrl.MoveImage) // PUT    /api/v1/blog/images/:image_id/folder
		images.DELETE("/:image_id", ctrl.DeleteImage)   // DELETE /api/v1/blog/images/:image_id
	}

	folders := group.Group("/folders")
	{
		folders.POST("", ctrl.CreateFolder) // POST /api/v1/blog/folders
		folders.GET("", ctrl.ListFolders)   // GET  /api/v1/blog/folders
	}
}
