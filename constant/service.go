package constant

import "time"

// ServiceName 服务名，用于链路追踪与日志标识
const ServiceName = "blog_service"

// ServiceVersion 服务版本号
const ServiceVersion = "v1.0.0"

// 定时任务相关常量
const (
	// HotPostsCacheCronSpec 热门帖子榜单刷新任务的 cron 表达式（每5分钟）
	HotPostsCacheCronSpec = "0 */5 * * * *"

	// ViewCountSyncCronSpec 浏览量落库任务的 cron 表达式（每10分钟）
	ViewCountSyncCronSpec = "0 */10 * * * *"

	// HotPostsCacheSize 热门榜单保留的帖子数量
	HotPostsCacheSize = 50
)

// 浏览量相关常量
const (
	// PostViewDedupTTL 浏览去重标记的有效期，窗口内同一操作者重复浏览不重复计数
	PostViewDedupTTL = 24 * time.Hour

	// PostDetailCacheTTL 已发布帖子详情缓存的有效期
	PostDetailCacheTTL = 10 * time.Minute
)

// COSObjectKeyPrefixImageLibrary 图片库文件在 COS 中的对象键前缀
const COSObjectKeyPrefixImageLibrary = "image_library/"
