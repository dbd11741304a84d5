package constant

// Redis Key 相关常量 (导出)
const (
	// --- Key 前缀 (用于动态生成 Key) ---

	// PostViewDedupPrefix 是帖子浏览去重标记的 Key 前缀。
	// 每个 (帖子, 操作者) 组合会有一个带 TTL 的标记 Key，
	// 用 SETNX 实现同一操作者在时间窗口内重复浏览不重复计数。
	// 示例 Key: "post_view_seen:123:user-uuid" (123 是 postID)
	// Redis 类型: String
	PostViewDedupPrefix = "post_view_seen:"

	// PostViewCountPrefix 是帖子浏览量计数器的 Key 前缀。
	// 每个帖子会有一个对应的 String 类型的 Key，用于原子性计数。
	// 示例 Key: "post_view_count:123" (其中 123 是 postID)
	// Redis 类型: String
	PostViewCountPrefix = "post_view_count:"

	// PostDetailCacheKeyPrefix 是已发布帖子详情缓存的 Key 前缀。
	// 只缓存已发布帖子；草稿/待审核/已驳回的读取每次都需要重新鉴权，不进缓存。
	// 示例 Key: "post_detail:123" (其中 123 是 postID)
	// Redis 类型: String (存储 JSON 序列化的详情视图)
	PostDetailCacheKeyPrefix = "post_detail:"

	// --- 固定 Key 名称 (全局使用的 Key) ---

	// PostsRankKey 是全局已发布帖子排行榜的 Key 名称。
	// Sorted Set，成员是帖子 ID，分数是浏览量。
	// Redis 类型: Sorted Set
	PostsRankKey = "post_rank"

	// HotPostsRankKey 是热门帖子榜单的 Key 名称。
	// 由定时任务从 PostsRankKey 截取 Top N 生成。
	// Redis 类型: Sorted Set
	HotPostsRankKey = "hot_post_rank"
)
