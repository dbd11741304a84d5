package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// TaxonomyController 定义分类与标签的控制器结构体
type TaxonomyController struct {
	taxonomyService service.TaxonomyService
}

// NewTaxonomyController 构造函数，用于创建 TaxonomyController 实例
func NewTaxonomyController(taxonomyService service.TaxonomyService) *TaxonomyController {
	return &TaxonomyController{
		taxonomyService: taxonomyService,
	}
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Description  创建一个新分类，slug 留空时由名称生成。仅管理员可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} vo.BaseResponseWrapper "分类创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/categories [post]
func (ctrl *TaxonomyController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	category, err := ctrl.taxonomyService.CreateCategory(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "创建分类失败")
		return
	}
	response.RespondSuccess(c, category, "分类创建成功")
}

// UpdateCategory 更新分类
// @Summary      更新分类
// @Description  补丁式更新分类名称或 slug。仅管理员可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Param        category_id path uint64 true "分类 ID" Format(uint64)
// @Param        request body dto.UpdateCategoryRequest true "要修改的字段"
// @Success      200 {object} vo.BaseResponseWrapper "分类更新成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/categories/{category_id} [put]
func (ctrl *TaxonomyController) UpdateCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	category, err := ctrl.taxonomyService.UpdateCategory(c.Request.Context(), middleware.GetActor(c), categoryID, &req)
	if err != nil {
		respondServiceError(c, err, "更新分类失败")
		return
	}
	response.RespondSuccess(c, category, "分类更新成功")
}

// DeleteCategory 删除分类
// @Summary      删除分类
// @Description  删除分类，该分类下的帖子变为未分类。仅管理员可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Param        category_id path uint64 true "分类 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "分类删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      404 {object} vo.BaseResponseWrapper "分类不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/categories/{category_id} [delete]
func (ctrl *TaxonomyController) DeleteCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}

	if err := ctrl.taxonomyService.DeleteCategory(c.Request.Context(), middleware.GetActor(c), categoryID); err != nil {
		respondServiceError(c, err, "删除分类失败")
		return
	}
	response.RespondSuccess[any](c, nil, "分类删除成功")
}

// ListCategories 获取全部分类
// @Summary      获取分类列表 (公开)
// @Description  返回全部分类，任何人可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "分类列表获取成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/categories [get]
func (ctrl *TaxonomyController) ListCategories(c *gin.Context) {
	categories, err := ctrl.taxonomyService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取分类列表失败")
		return
	}
	response.RespondSuccess(c, categories, "分类列表获取成功")
}

// CreateTag 创建标签
// @Summary      创建标签
// @Description  创建一个新标签，slug 留空时由名称生成。仅管理员可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTagRequest true "标签信息"
// @Success      200 {object} vo.BaseResponseWrapper "标签创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/tags [post]
func (ctrl *TaxonomyController) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	tag, err := ctrl.taxonomyService.CreateTag(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "创建标签失败")
		return
	}
	response.RespondSuccess(c, tag, "标签创建成功")
}

// ListTags 获取全部标签
// @Summary      获取标签列表 (公开)
// @Description  返回全部标签，任何人可访问。
// @Tags         taxonomy (分类与标签)
// @Accept       json
// @Produce      json
// @Success      200 {object} vo.BaseResponseWrapper "标签列表获取成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/tags [get]
func (ctrl *TaxonomyController) ListTags(c *gin.Context) {
	tags, err := ctrl.taxonomyService.ListTags(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "获取标签列表失败")
		return
	}
	response.RespondSuccess(c, tags, "标签列表获取成功")
}

// RegisterRoutes 注册 TaxonomyController 的路由
func (ctrl *TaxonomyController) RegisterRoutes(group *gin.RouterGroup) {
	categories := group.Group("/categories")
	{
		categories.POST("", ctrl.CreateCategory)                // POST   /api/v1/blog/categories
		categories.GET("", ctrl.ListCategories)                 // GET    /api/v1/blog/categories
		categories.PUT("/:category_id", ctrl.UpdateCategory)    // PUT    /api/v1/blog/categories/:category_id
		categories.DELETE("/:category_id", ctrl.DeleteCategory) // DELETE /api/v1/blog/categories/:category_id
	}

	tags := group.Group("/tags")
	{
		tags.POST("", ctrl.CreateTag) // POST /api/v1/blog/tags
		tags.GET("", ctrl.ListTags)   // GET  /api/v1/blog/tags
	}
}
