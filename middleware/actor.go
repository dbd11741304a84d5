package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/workflow"
)

const (
	// HeaderUserID 网关透传的用户ID请求头，未登录请求不携带
	HeaderUserID = "X-User-ID"
	// HeaderUserRole 网关透传的用户角色请求头，取值 guest/user/reviewer/admin
	HeaderUserRole = "X-User-Role"

	// ActorContextKey 操作者身份在 gin.Context 中的键
	ActorContextKey = "blog_actor"
)

// ActorMiddleware 把网关透传的认证头解析为操作者身份，注入请求上下文。
// - 缺失或无法识别的头一律降级为游客，鉴权判定由服务层完成。
// - 带角色但没有用户ID的请求视为非法透传，同样按游客处理。
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		role := enums.ParseUserRole(c.GetHeader(HeaderUserRole))

		actor := workflow.Guest()
		if userID != "" {
			actor = workflow.Actor{UserID: userID, Role: role}
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// GetActor 从 gin.Context 中取出操作者身份，取不到时返回游客。
func GetActor(c *gin.Context) workflow.Actor {
	value, exists := c.Get(ActorContextKey)
	if !exists {
		return workflow.Guest()
	}
	actor, ok := value.(workflow.Actor)
	if !ok {
		return workflow.Guest()
	}
	return actor
}
