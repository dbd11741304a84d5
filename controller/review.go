package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// ReviewController 定义帖子生命周期写操作的控制器结构体：
// 提交审核、通过、驳回、编辑与删除，以及审核队列的读取。
type ReviewController struct {
	workflowService service.ReviewWorkflowService
	postService     service.PostService
}

// NewReviewController 构造函数，用于创建 ReviewController 实例
func NewReviewController(workflowService service.ReviewWorkflowService, postService service.PostService) *ReviewController {
	return &ReviewController{
		workflowService: workflowService,
		postService:     postService,
	}
}

// SubmitForReview 把帖子提交进入审核队列
// @Summary      提交帖子审核
// @Description  把草稿或已驳回的帖子提交进入待审核。仅作者本人或管理员可触发。可选指派一名审核人。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.SubmitForReviewRequest false "可选的审核人指派"
// @Success      200 {object} vo.PostResponseWrapper "提交成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数或审核人"
// @Failure      403 {object} vo.BaseResponseWrapper "没有执行该操作的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      409 {object} vo.BaseResponseWrapper "帖子当前状态不允许提交"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/submit [post]
func (ctrl *ReviewController) SubmitForReview(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.SubmitForReviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
			return
		}
	}

	post, err := ctrl.workflowService.SubmitForReview(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "提交审核失败")
		return
	}
	response.RespondSuccess(c, post, "帖子已提交审核")
}

// ApprovePost 审核通过帖子
// @Summary      审核通过
// @Description  把待审核的帖子裁定为已发布。仅审核人员或管理员可触发，审核意见可选。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.ApprovePostRequest false "可选的审核意见"
// @Success      200 {object} vo.PostResponseWrapper "审核通过"
// @Failure      403 {object} vo.BaseResponseWrapper "没有执行该操作的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "帖子不在待审核状态"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/approve [post]
func (ctrl *ReviewController) ApprovePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.ApprovePostRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
			return
		}
	}

	post, err := ctrl.workflowService.ApprovePost(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "审核通过处理失败")
		return
	}
	response.RespondSuccess(c, post, "帖子审核通过")
}

// RejectPost 驳回帖子
// @Summary      审核驳回
// @Description  把待审核的帖子裁定为已驳回。仅审核人员或管理员可触发，必须给出非空理由。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.RejectPostRequest true "驳回理由（必填）"
// @Success      200 {object} vo.PostResponseWrapper "驳回成功"
// @Failure      400 {object} vo.BaseResponseWrapper "缺少驳回理由"
// @Failure      403 {object} vo.BaseResponseWrapper "没有执行该操作的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在"
// @Failure      409 {object} vo.BaseResponseWrapper "帖子不在待审核状态"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/reject [post]
func (ctrl *ReviewController) RejectPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.RejectPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	post, err := ctrl.workflowService.RejectPost(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "审核驳回处理失败")
		return
	}
	response.RespondSuccess(c, post, "帖子已驳回")
}

// UpdatePost 编辑帖子内容
// @Summary      编辑帖子
// @Description  补丁式编辑帖子内容。仅作者本人或管理员可触发。编辑已发布的帖子会把它降级为草稿并清空审核结论。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.UpdatePostRequest true "要修改的字段"
// @Success      200 {object} vo.PostResponseWrapper "编辑成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      403 {object} vo.BaseResponseWrapper "没有执行该操作的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 冲突或状态被并发修改"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [patch]
func (ctrl *ReviewController) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	post, err := ctrl.workflowService.UpdatePost(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "编辑帖子失败")
		return
	}
	response.RespondSuccess(c, post, "帖子编辑成功")
}

// DeletePost 删除帖子
// @Summary      删除指定ID的帖子
// @Description  删除帖子及其评论与标签关联。仅作者本人或管理员可触发，任何状态都可删除。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "帖子删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "没有执行该操作的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [delete]
func (ctrl *ReviewController) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := ctrl.workflowService.DeletePost(c.Request.Context(), middleware.GetActor(c), postID); err != nil {
		respondServiceError(c, err, "删除帖子失败")
		return
	}
	response.RespondSuccess[any](c, nil, "帖子删除成功")
}

// GetReviewQueue 获取审核队列
// @Summary      获取审核队列
// @Description  分页获取待审核帖子，按提交时间先后排列。仅审核人员与管理员可访问。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.ReviewQueuePageResponseWrapper "审核队列获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      403 {object} vo.BaseResponseWrapper "没有访问审核队列的权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/review/queue [get]
func (ctrl *ReviewController) GetReviewQueue(c *gin.Context) {
	var reqDTO dto.ListMyPostsRequest
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	pageVO, err := ctrl.postService.ListReviewQueue(c.Request.Context(), middleware.GetActor(c), reqDTO.Page, reqDTO.PageSize)
	if err != nil {
		respondServiceError(c, err, "获取审核队列失败")
		return
	}
	response.RespondSuccess(c, pageVO, "审核队列获取成功")
}

// GetPostStats 获取各状态帖子数量统计
// @Summary      帖子状态统计
// @Description  返回草稿/待审核/已发布/已驳回各状态的帖子数量。审核人员与管理员统计全站，普通用户统计自己的帖子。
// @Tags         review (审核)
// @Accept       json
// @Produce      json
// @Success      200 {object} vo.PostStatsResponseWrapper "统计获取成功"
// @Failure      403 {object} vo.BaseResponseWrapper "没有访问统计的权限"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/review/stats [get]
func (ctrl *ReviewController) GetPostStats(c *gin.Context) {
	stats, err := ctrl.postService.GetPostStats(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondServiceError(c, err, "获取帖子统计失败")
		return
	}
	response.RespondSuccess(c, stats, "帖子统计获取成功")
}

// RegisterRoutes 注册 ReviewController 的路由
func (ctrl *ReviewController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.POST("/:post_id/submit", ctrl.SubmitForReview)  // POST   /api/v1/blog/posts/:post_id/submit
		posts.POST("/:post_id/approve", ctrl.ApprovePost)     // POST   /api/v1/blog/posts/:post_id/approve
		posts.POST("/:post_id/reject", ctrl.RejectPost)       // POST   /api/v1/blog/posts/:post_id/reject
		posts.PATCH("/:post_id", ctrl.UpdatePost)             // PATCH  /api/v1/blog/posts/:post_id
		posts.DELETE("/:post_id", ctrl.DeletePost)            // DELETE /api/v1/blog/posts/:post_id
	}

	review := group.Group("/review")
	{
		review.GET("/queue", ctrl.GetReviewQueue) // GET /api/v1/blog/review/queue
		review.GET("/stats", ctrl.GetPostStats)   // GET /api/v1/blog/review/stats
	}
}
