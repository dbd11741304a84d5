package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/myErrors"
)

// respondServiceError 把服务层错误统一映射为 HTTP 响应。
// - 可见性判定产生的"不可见即不存在"在这里自然表现为 404。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, "资源不存在")
	case errors.Is(err, myErrors.ErrUnauthorized):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "没有执行该操作的权限")
	case errors.Is(err, myErrors.ErrRejectReasonRequired):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "驳回必须给出非空理由")
	case errors.Is(err, myErrors.ErrInvalidReviewer):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "指派的审核人无效")
	case errors.Is(err, myErrors.ErrSlugTaken):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "slug 已被占用")
	case errors.Is(err, myErrors.ErrInvalidState):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "帖子当前状态不允许该操作")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, fallbackMsg+": "+err.Error())
	}
}

// parseIDParam 解析路径中的 uint64 ID 参数，失败时已写出 400 响应。
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 "+name+" 格式")
		return 0, false
	}
	return id, true
}
