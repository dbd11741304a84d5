package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
)

// Cache 定义了帖子相关的缓存操作接口。
// - 目标: 为已发布帖子的详情与热门榜单提供 Redis 缓存层，减轻数据库压力。
// - 只缓存已发布帖子：其余状态的读取每次都要重新鉴权，不进缓存。
type Cache interface {
	// GetPostDetail 获取单个已发布帖子详情的缓存。
	// - 缓存未命中时返回 myErrors.ErrCacheMiss，上层服务需要处理回源。
	GetPostDetail(ctx context.Context, postID uint64) (*vo.PostDetailVO, error)

	// SetPostDetail 写入已发布帖子详情缓存，带 TTL。
	SetPostDetail(ctx context.Context, detail *vo.PostDetailVO) error

	// InvalidatePostDetail 删除帖子详情缓存。
	// - 帖子被编辑、驳回、删除或状态被管理员覆写时必须调用，
	//   保证不可见的内容不会从缓存泄露出去。
	InvalidatePostDetail(ctx context.Context, postID uint64) error

	// GetHotPostIDsByRange 从热门榜单 ZSet 获取指定排名范围内的帖子 ID 列表。
	// - start, stop 是基于 0 的排名索引，按分数从高到低排列。
	GetHotPostIDsByRange(ctx context.Context, start, stop int64) ([]uint64, error)

	// RefreshHotPostsRank 用全局排行榜的 Top N 重建热门榜单。
	// - 由定时任务调用。
	RefreshHotPostsRank(ctx context.Context, topN int64) error
}

// cacheImpl 是 Cache 接口的 Redis 实现。
type cacheImpl struct {
	redisClient *redis.Client
	logger      *core.ZapLogger
}

// NewCache 是 cacheImpl 的构造函数。
func NewCache(redisClient *redis.Client, logger *core.ZapLogger) Cache {
	return &cacheImpl{
		redisClient: redisClient,
		logger:      logger,
	}
}

// GetPostDetail 从 Redis 获取单个帖子详情。
func (c *cacheImpl) GetPostDetail(ctx context.Context, postID uint64) (*vo.PostDetailVO, error) {
	key := fmt.Sprintf("%s%d", constant.PostDetailCacheKeyPrefix, postID)

	jsonData, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.logger.Debug("帖子详情缓存未命中", zap.String("key", key), zap.Uint64("postID", postID))
			return nil, myErrors.ErrCacheMiss
		}
		c.logger.Error("从 Redis 获取帖子详情失败",
			zap.Error(err),
			zap.String("key", key),
			zap.Uint64("postID", postID),
		)
		return nil, fmt.Errorf("获取帖子(ID: %d)详情缓存 (key: %s) 失败: %w", postID, key, err)
	}

	var postDetailVO vo.PostDetailVO
	if jsonErr := json.Unmarshal([]byte(jsonData), &postDetailVO); jsonErr != nil {
		c.logger.Error("反序列化帖子详情缓存数据失败",
			zap.Error(jsonErr),
			zap.String("key", key),
			zap.Uint64("postID", postID),
		)
		return nil, fmt.Errorf("解析帖子(ID: %d)详情缓存 (key: %s) 数据失败: %w", postID, key, jsonErr)
	}

	return &postDetailVO, nil
}

// SetPostDetail 写入帖子详情缓存。
func (c *cacheImpl) SetPostDetail(ctx context.Context, detail *vo.PostDetailVO) error {
	if detail == nil {
		return nil
	}
	key := fmt.Sprintf("%s%d", constant.PostDetailCacheKeyPrefix, detail.ID)

	jsonData, err := json.Marshal(detail)
	if err != nil {
		c.logger.Error("序列化帖子详情缓存数据失败", zap.Error(err), zap.Uint64("postID", detail.ID))
		return err
	}

	if err := c.redisClient.Set(ctx, key, jsonData, constant.PostDetailCacheTTL).Err(); err != nil {
		c.logger.Error("写入帖子详情缓存失败", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("写入帖子(ID: %d)详情缓存失败: %w", detail.ID, err)
	}

	return nil
}

// InvalidatePostDetail 删除帖子详情缓存。
func (c *cacheImpl) InvalidatePostDetail(ctx context.Context, postID uint64) error {
	key := fmt.Sprintf("%s%d", constant.PostDetailCacheKeyPrefix, postID)

	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.logger.Error("删除帖子详情缓存失败", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("删除帖子(ID: %d)详情缓存失败: %w", postID, err)
	}
	return nil
}

// GetHotPostIDsByRange 实现按排名范围获取帖子 ID。
func (c *cacheImpl) GetHotPostIDsByRange(ctx context.Context, start, stop int64) ([]uint64, error) {
	key := constant.HotPostsRankKey

	if start < 0 {
		c.logger.Warn("GetHotPostIDsByRange: start 参数为负数，视为无效请求，返回空列表。",
			zap.Int64("start", start),
			zap.Int64("stop", stop),
		)
		return []uint64{}, nil
	}
	if start > stop && stop != -1 {
		return []uint64{}, nil
	}

	idStrs, err := c.redisClient.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []uint64{}, nil
		}
		c.logger.Error("从 Redis ZRevRange 按排名范围获取帖子 ID 失败",
			zap.Error(err),
			zap.Int64("start", start),
			zap.Int64("stop", stop),
			zap.String("key", key),
		)
		return nil, fmt.Errorf("获取排名 %d-%d 的帖子 ID 失败 (key: %s): %w", start, stop, key, err)
	}

	ids := make([]uint64, 0, len(idStrs))
	for _, idStr := range idStrs {
		id, parseErr := strconv.ParseUint(idStr, 10, 64)
		if parseErr != nil {
			// ZSet 数据被污染时跳过该成员，保证其余 ID 仍能被处理
			c.logger.Warn("解析 ZSet 中的帖子 ID 字符串失败，已跳过该 ID。",
				zap.Error(parseErr),
				zap.String("idStr", idStr),
				zap.String("rankKey", key),
			)
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// RefreshHotPostsRank 用全局排行榜 Top N 重建热门榜单。
// - ZRANGESTORE 在 Redis 端完成拷贝与截断，避免把整个榜单拉回应用层。
func (c *cacheImpl) RefreshHotPostsRank(ctx context.Context, topN int64) error {
	if topN <= 0 {
		topN = int64(constant.HotPostsCacheSize)
	}

	err := c.redisClient.ZRangeStore(ctx, constant.HotPostsRankKey, redis.ZRangeArgs{
		Key:   constant.PostsRankKey,
		Start: 0,
		Stop:  topN - 1,
		Rev:   true,
	}).Err()
	if err != nil {
		c.logger.Error("重建热门榜单失败",
			zap.Error(err),
			zap.Int64("topN", topN),
		)
		return fmt.Errorf("重建热门榜单 (top %d) 失败: %w", topN, err)
	}

	c.logger.Info("热门榜单已重建", zap.Int64("topN", topN))
	return nil
}
