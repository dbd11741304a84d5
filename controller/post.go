package controller

import (
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/service"
)

// PostController 定义帖子读路径与创建的控制器结构体
type PostController struct {
	postService service.PostService
}

// NewPostController 构造函数，用于创建 PostController 实例
func NewPostController(postService service.PostService) *PostController {
	return &PostController{
		postService: postService,
	}
}

// CreatePost 处理创建帖子的 HTTP 请求
// @Summary      创建新帖子
// @Description  创建一个新帖子，新帖子总是以草稿状态落库。作者身份取自网关透传的请求头。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePostRequest true "帖子内容"
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子创建成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求负载"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      409 {object} vo.BaseResponseWrapper "slug 已被占用"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts [post]
func (ctrl *PostController) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "绑定请求数据失败: "+err.Error())
		return
	}

	actor := middleware.GetActor(c)
	if actor.UserID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "创建帖子需要登录")
		return
	}

	detail, err := ctrl.postService.CreatePost(c.Request.Context(), actor, &req)
	if err != nil {
		respondServiceError(c, err, "创建帖子失败")
		return
	}
	response.RespondSuccess(c, detail, "帖子创建成功")
}

// GetPostByID 处理获取帖子详情的 HTTP 请求
// @Summary      获取指定ID的帖子详情
// @Description  通过帖子的 ID 检索帖子详情。对操作者不可见的帖子返回 404。已登录用户读取已发布帖子会增加浏览量。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        post_id path uint64 true "帖子 ID" Format(uint64)
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子详情检索成功"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的帖子 ID 格式"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/{post_id} [get]
func (ctrl *PostController) GetPostByID(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	detail, err := ctrl.postService.GetPostByID(c.Request.Context(), middleware.GetActor(c), postID)
	if err != nil {
		respondServiceError(c, err, "检索帖子详情失败")
		return
	}
	response.RespondSuccess(c, detail, "帖子详情检索成功")
}

// GetPostBySlug 处理按 slug 获取帖子详情的 HTTP 请求
// @Summary      按 slug 获取帖子详情
// @Description  通过帖子的 slug 检索帖子详情，可见性规则与按 ID 读取一致。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        slug path string true "帖子 slug"
// @Success      200 {object} vo.PostDetailResponseWrapper "帖子详情检索成功"
// @Failure      404 {object} vo.BaseResponseWrapper "帖子不存在或不可见"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/slug/{slug} [get]
func (ctrl *PostController) GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "slug 不能为空")
		return
	}

	detail, err := ctrl.postService.GetPostBySlug(c.Request.Context(), middleware.GetActor(c), slug)
	if err != nil {
		respondServiceError(c, err, "检索帖子详情失败")
		return
	}
	response.RespondSuccess(c, detail, "帖子详情检索成功")
}

// GetPostsTimeline 获取帖子时间线列表 (游标分页)
// @Summary      获取帖子时间线列表 (公开)
// @Description  游标分页获取已发布帖子，按创建时间倒序。可按分类或标签的 slug 筛选。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        last_created_at query string false "上一页最后一条记录的创建时间 (RFC3339格式)" format(date-time)
// @Param        last_post_id query uint64 false "上一页最后一条记录的帖子ID" format(uint64) minimum(1)
// @Param        category_slug query string false "分类 slug 筛选"
// @Param        tag_slug query string false "标签 slug 筛选"
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(50) default(10)
// @Success      200 {object} vo.PostTimelinePageResponseWrapper "成功响应，包含帖子列表和下一页游标信息"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/timeline [get]
func (ctrl *PostController) GetPostsTimeline(c *gin.Context) {
	var reqDTO dto.TimelineQueryDTO
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	timelinePageVO, err := ctrl.postService.GetPostsTimeline(c.Request.Context(), &reqDTO)
	if err != nil {
		respondServiceError(c, err, "获取帖子列表失败")
		return
	}
	response.RespondSuccess(c, timelinePageVO, "帖子时间线获取成功")
}

// GetMyPosts 获取当前用户自己的帖子列表 (分页)
// @Summary      获取我的帖子列表
// @Description  获取当前登录用户的帖子列表（任何状态），支持按状态筛选，分页加载。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        page query int true "页码 (从1开始)" format(int32) minimum(1) default(1)
// @Param        page_size query int true "每页数量" format(int32) minimum(1) maximum(100) default(10)
// @Param        status query int false "帖子状态 (0:草稿, 1:待审核, 2:已发布, 3:已驳回)" format(int32) Enums(0,1,2,3)
// @Success      200 {object} vo.ListUserPostPageResponseWrapper "成功响应，包含帖子列表和总记录数"
// @Failure      400 {object} vo.BaseResponseWrapper "无效的请求参数"
// @Failure      401 {object} vo.BaseResponseWrapper "用户未登录"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/mine [get]
func (ctrl *PostController) GetMyPosts(c *gin.Context) {
	var reqDTO dto.ListMyPostsRequest
	if err := c.ShouldBindQuery(&reqDTO); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的查询参数: "+err.Error())
		return
	}

	actor := middleware.GetActor(c)
	if actor.UserID == "" {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "查看自己的帖子需要登录")
		return
	}

	pageVO, err := ctrl.postService.ListMyPosts(c.Request.Context(), actor, &reqDTO)
	if err != nil {
		respondServiceError(c, err, "获取用户帖子列表失败")
		return
	}
	response.RespondSuccess(c, pageVO, "用户帖子列表获取成功")
}

// GetHotPosts 获取热门帖子列表
// @Summary      获取热门帖子列表 (公开)
// @Description  从 Redis 热榜获取浏览量最高的已发布帖子。
// @Tags         posts (帖子)
// @Accept       json
// @Produce      json
// @Param        limit query int false "返回数量上限" format(int32) minimum(1) maximum(50) default(10)
// @Success      200 {object} vo.BaseResponseWrapper "热门帖子列表获取成功"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/blog/posts/hot [get]
func (ctrl *PostController) GetHotPosts(c *gin.Context) {
	limit := int64(10)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 || parsed > 50 {
			response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 limit 参数")
			return
		}
		limit = parsed
	}

	posts, err := ctrl.postService.ListHotPosts(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err, "获取热门帖子失败")
		return
	}
	response.RespondSuccess(c, posts, "热门帖子列表获取成功")
}

// RegisterRoutes 注册 PostController 的路由
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	posts := group.Group("/posts")
	{
		posts.POST("", ctrl.CreatePost)               // POST   /api/v1/blog/posts
		posts.GET("/timeline", ctrl.GetPostsTimeline) // GET    /api/v1/blog/posts/timeline
		posts.GET("/mine", ctrl.GetMyPosts)           // GET    /api/v1/blog/posts/mine
		posts.GET("/hot", ctrl.GetHotPosts)           // GET    /api/v1/blog/posts/hot
		posts.GET("/slug/:slug", ctrl.GetPostBySlug)  // GET    /api/v1/blog/posts/slug/:slug
		posts.GET("/:post_id", ctrl.GetPostByID)      // GET    /api/v1/blog/posts/:post_id
	}
}
