package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostAdminController 定义管理员专属帖子管理的控制器结构体
type PostAdminController struct {
	adminService service.PostAdminService
}

// NewPostAdminController 构造函数，用于创建 PostAdminController 实例
func NewPostAdminController(adminService service.PostAdminService) *PostAdminController {
	return &PostAdminController{
		adminService: adminService,
	}
}

// ListPostsByCondition 按条件分页查询全部帖子
// @Summary      管理员条件查询帖子
// @Description  按 ID、标题、作者、状态、分类、浏览量区间等条件分页查询全部帖子，不做可见性过滤。仅管理员可访问。
// @Tags         admin (管理)
// @Accept       json
// @Produce      json
// @Param        request body dto.ListPostsByConditionRequest true "查询条件"
// @Success      200 {object} vo.ListPostsAdminResponseWrapper "查询成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的查询条件"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/query [post]
func (ctrl *PostAdminController) ListPostsByCondition(c *gin.Context) {
	var req dto.ListPostsByConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定查询条件失败: "+err.Error())
		return
	}

	result, err := ctrl.adminService.ListPostsByCondition(c.Request.Context(), middleware.GetActor(c), &req)
	if err != nil {
		respondServiceError(c, err, "条件查询帖子失败")
		return
	}
	response.RespondSuccess(c, result, "帖子查询成功")
}

// ForcePostStatus 强制修改帖子状态
// @Summary      管理员强制修改帖子状态
// @Description  绕过状态流转表把帖子置为任意状态。仅管理员可访问；目标状态为已驳回时必须给出理由。
// @Tags         admin (管理)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.ForcePostStatusRequest true "目标状态与可选理由"
// @Success      200 {object} vo.PostResponseWrapper "状态修改成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的目标状态或缺少驳回理由"
// @Failure      403 {object} vo.BaseResponseWrapper "没有管理员权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/admin/posts/{post_id}/status [put]
func (ctrl *PostAdminController) ForcePostStatus(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.ForcePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	post, err := ctrl.adminService.ForcePostStatus(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "强制修改帖子状态失败")
		return
	}
	response.RespondSuccess(c, post, "帖子状态修改成功")
}

// RegisterRoutes 注册 PostAdminController 的路由
func (ctrl *PostAdminController) RegisterRoutes(group *gin.RouterGroup) {
	admin := group.Group("/admin")
	{
		admin.POST("/posts/query", ctrl.ListPostsByCondition)     // POST /api/v1/blog/admin/posts/query
		admin.PUT("/posts/:post_id/status", ctrl.ForcePostStatus) // PUT  /api/v1/blog/admin/posts/:post_id/status
	}
}
