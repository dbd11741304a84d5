package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/constant"
)

// PostViewRepository 定义了与帖子浏览、排名相关的 Redis 操作接口。
// - 目标: 提供高性能的接口来处理帖子浏览计数（防刷）、热门榜单以及浏览量同步。
type PostViewRepository interface {
	// IncrementViewCount 原子性地增加指定帖子的浏览量，并更新其在排行榜中的分数。
	// - 使用带 TTL 的 SETNX 标记防止同一操作者在时间窗口内重复计数；
	//   游客按网关透传的匿名标识去重。
	// - 使用 Lua 脚本保证计数器与 ZSet 的原子性更新。
	// - 输出: error 操作错误。如果去重标记已存在，返回 nil 且不执行计数增加。
	IncrementViewCount(ctx context.Context, postID uint64, viewerID string) error

	// GetAllViewCounts 使用 SCAN 命令分批获取 Redis 中所有帖子的浏览量计数。
	// - 作为定时任务同步到 MySQL 的数据源；SCAN 避免 KEYS 阻塞，MGET 批量取值。
	GetAllViewCounts(ctx context.Context) (map[uint64]int64, error)
}

// postViewRepository 是 PostViewRepository 接口的 Redis 实现。
type postViewRepository struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
	viewSyncCfg config.ViewSyncConfig
}

// NewPostViewRepository 创建 PostViewRepository 实例。
func NewPostViewRepository(redisClient *redis.Client, logger *core.ZapLogger, viewSyncCfg config.ViewSyncConfig) PostViewRepository {
	return &postViewRepository{
		redisClient: redisClient,
		logger:      logger,
		viewSyncCfg: viewSyncCfg,
	}
}

// IncrementViewCount 实现增加帖子浏览量的逻辑。
func (r *postViewRepository) IncrementViewCount(ctx context.Context, postID uint64, viewerID string) error {
	if viewerID == "" {
		// 没有任何可用的操作者标识，无法去重，直接跳过计数
		r.logger.Debug("浏览者标识为空，跳过浏览计数", zap.Uint64("postID", postID))
		return nil
	}

	dedupKey := fmt.Sprintf("%s%d:%s", constant.PostViewDedupPrefix, postID, viewerID)
	viewCountKey := fmt.Sprintf("%s%d", constant.PostViewCountPrefix, postID)
	postsRankKey := constant.PostsRankKey

	// 1. SETNX 防刷：标记已存在说明该操作者在窗口内已计过数
	firstView, err := r.redisClient.SetNX(ctx, dedupKey, 1, constant.PostViewDedupTTL).Result()
	if err != nil {
		r.logger.Error("写入浏览去重标记失败", zap.Error(err), zap.String("dedupKey", dedupKey))
		return fmt.Errorf("写入浏览去重标记 '%s' 失败: %w", dedupKey, err)
	}
	if !firstView {
		r.logger.Debug("操作者已在去重窗口内浏览过，跳过计数",
			zap.Uint64("postID", postID),
			zap.String("viewerID", viewerID),
		)
		return nil
	}

	// 2. 原子性增加浏览量并更新排行榜 (Lua 脚本)
	luaScript := redis.NewScript(`
        local viewCount = redis.call("INCR", KEYS[1])
        redis.call("ZADD", KEYS[2], viewCount, ARGV[1])
        return viewCount
    `)

	_, err = luaScript.Run(ctx, r.redisClient, []string{viewCountKey, postsRankKey}, postID).Result()
	if err != nil {
		r.logger.Error("Lua 脚本执行失败：增加浏览量和更新排名", zap.Error(err), zap.Uint64("postID", postID))
		return fmt.Errorf("原子性增加浏览量失败 (PostID: %d): %w", postID, err)
	}

	r.logger.Debug("成功增加浏览量并更新排名", zap.Uint64("postID", postID))
	return nil
}

// GetAllViewCounts 使用 SCAN 命令安全地迭代并获取所有帖子的浏览量。
func (r *postViewRepository) GetAllViewCounts(ctx context.Context) (map[uint64]int64, error) {
	viewCounts := make(map[uint64]int64)
	var cursor uint64
	matchPattern := constant.PostViewCountPrefix + "*"

	scanCount := r.viewSyncCfg.ScanBatchSize
	if scanCount <= 0 {
		scanCount = 1000
		r.logger.Warn("GetAllViewCounts: 配置中的 ScanBatchSize 无效或为零，使用默认值。",
			zap.Int64("defaultScanBatchSize", scanCount),
			zap.Int64("configuredScanBatchSize", r.viewSyncCfg.ScanBatchSize),
		)
	}

	r.logger.Info("开始扫描 Redis 获取所有帖子浏览量",
		zap.String("pattern", matchPattern),
		zap.Int64("scan_batch_size", scanCount),
	)
	startTime := time.Now()

	for {
		keys, nextCursor, err := r.redisClient.Scan(ctx, cursor, matchPattern, scanCount).Result()
		if err != nil {
			r.logger.Error("执行 Redis SCAN 命令失败",
				zap.Error(err),
				zap.Uint64("cursor", cursor),
				zap.String("pattern", matchPattern),
			)
			return nil, fmt.Errorf("扫描 Redis Keys 失败 (模式: %s): %w", matchPattern, err)
		}

		if len(keys) > 0 {
			values, mgetErr := r.redisClient.MGet(ctx, keys...).Result()
			if mgetErr != nil {
				r.logger.Error("执行 Redis MGET 命令批量获取浏览量失败",
					zap.Error(mgetErr),
					zap.Strings("keys_in_batch", keys),
				)
				return nil, fmt.Errorf("批量获取浏览量值失败 (%d keys): %w", len(keys), mgetErr)
			}

			for i, key := range keys {
				postIDStr := strings.TrimPrefix(key, constant.PostViewCountPrefix)
				postID, parseErr := strconv.ParseUint(postIDStr, 10, 64)
				if parseErr != nil {
					r.logger.Error("从 Redis Key 解析 PostID 失败，已跳过该 Key。",
						zap.Error(parseErr),
						zap.String("key", key),
					)
					continue
				}

				viewCount := int64(0)
				if i < len(values) && values[i] != nil {
					if valueStr, ok := values[i].(string); ok && valueStr != "" {
						parsedCount, parseCountErr := strconv.ParseInt(valueStr, 10, 64)
						if parseCountErr != nil {
							r.logger.Error("解析 Redis 中的浏览量值失败，该帖子浏览量将视为 0。",
								zap.Error(parseCountErr),
								zap.String("key", key),
								zap.String("value_str", valueStr),
							)
						} else {
							viewCount = parsedCount
						}
					}
				}
				viewCounts[postID] = viewCount
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	r.logger.Info("完成扫描 Redis 帖子浏览量",
		zap.Int("total_unique_posts_found", len(viewCounts)),
		zap.Duration("duration", time.Since(startTime)),
	)
	return viewCounts, nil
}
