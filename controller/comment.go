package controller

import (
	"net/http"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// CommentController 定义帖子评论的控制器结构体
type CommentController struct {
	commentService service.CommentService
}

// NewCommentController 构造函数，用于创建 CommentController 实例
func NewCommentController(commentService service.CommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// CreateComment 在帖子下发表评论
// @Summary      发表评论
// @Description  在指定帖子下发表评论，仅登录用户可用，且只有已发布的帖子接受新评论。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        request body dto.CreateCommentRequest true "评论内容"
// @Success      200 {object} vo.BaseResponseWrapper "评论发表成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在、不可见或未开放评论"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/comments [post]
func (ctrl *CommentController) CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	actor := middleware.GetActor(c)
	if actor.UserID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "发表评论需要登录")
		return
	}

	comment, err := ctrl.commentService.CreateComment(c.Request.Context(), actor, postID, &req)
	if err != nil {
		respondServiceError(c, err, "发表评论失败")
		return
	}
	response.RespondSuccess(c, comment, "评论发表成功")
}

// ListComments 分页查询帖子评论
// @Summary      获取帖子评论列表
// @Description  分页获取指定帖子的评论，按发表时间升序。帖子对操作者不可见时返回 404。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Success      200 {object} vo.CommentPageResponseWrapper "评论列表获取成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id}/comments [get]
func (ctrl *CommentController) ListComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req dto.ListCommentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	pageVO, err := ctrl.commentService.ListComments(c.Request.Context(), middleware.GetActor(c), postID, &req)
	if err != nil {
		respondServiceError(c, err, "获取评论列表失败")
		return
	}
	response.RespondSuccess(c, pageVO, "评论列表获取成功")
}

// DeleteComment 删除评论
// @Summary      删除评论
// @Description  删除指定评论，评论者本人或管理员可用。
// @Tags         comments (评论)
// @Accept       json
// @Produce      json
// @Param        comment_id path uint64 true "评论 ID" Format(uint64)
// @Success      200 {object} vo.BaseResponseWrapper "评论删除成功"
// @Failure      403 {object} vo.BaseResponseWrapper "没有删除该评论的权限"
// @Failure      404 {object} vo.BaseResponseWrapper "评论不存在"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/comments/{comment_id} [delete]
func (ctrl *CommentController) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := ctrl.commentService.DeleteComment(c.Request.Context(), middleware.GetActor(c), commentID); err != nil {
		respondServiceError(c, err, "删除评论失败")
		return
	}
	response.RespondSuccess[any](c, nil, "评论删除成功")
}

// RegisterRoutes 注册 CommentController 的路由
func (ctrl *CommentController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/posts/:post_id/comments", ctrl.CreateComment) // POST   /api/v1/blog/posts/:post_id/comments
	group.GET("/posts/:post_id/comments", ctrl.ListComments)   // GET    /api/v1/blog/posts/:post_id/comments
	group.DELETE("/comments/:comment_id", ctrl.DeleteComment)  // DELETE /api/v1/blog/comments/:comment_id
}
