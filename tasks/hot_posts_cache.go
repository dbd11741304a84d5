package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// HotPostsCacheTask 负责定时刷新 Redis 中的热门帖子榜单，并预热榜单内帖子的详情缓存。
type HotPostsCacheTask struct {
	cache        redis.Cache
	batchRepo    mysql.PostBatchOperationsRepository
	taxonomyRepo mysql.TaxonomyRepository
	cron         *cron.Cron
	logger       *core.ZapLogger
}

// NewHotPostsCacheTask 初始化并启动热门帖子缓存的定时任务。
func NewHotPostsCacheTask(
	cache redis.Cache,
	batchRepo mysql.PostBatchOperationsRepository,
	taxonomyRepo mysql.TaxonomyRepository,
	logger *core.ZapLogger,
) *HotPostsCacheTask {
	cronV3 := cron.New(cron.WithSeconds())

	task := &HotPostsCacheTask{
		cache:        cache,
		batchRepo:    batchRepo,
		taxonomyRepo: taxonomyRepo,
		cron:         cronV3,
		logger:       logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *HotPostsCacheTask) startCronJob() {
	schedule := constant.HotPostsCacheCronSpec
	t.logger.Info("准备启动热门帖子缓存刷新定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("热门帖子缓存刷新任务开始执行...")
		startTime := time.Now()
		// 单次任务执行超时，防止任务卡死
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		t.syncHotCaches(ctx)

		duration := time.Since(startTime)
		t.logger.Info("热门帖子缓存刷新任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加热门帖子缓存刷新 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("热门帖子缓存刷新定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncHotCaches 是定时任务执行的实际同步逻辑。
// 1. 用全局排行榜的 Top N 重建热门榜单快照。
// 2. 基于快照预热榜单内已发布帖子的详情缓存。
func (t *HotPostsCacheTask) syncHotCaches(ctx context.Context) {
	t.logger.Info("任务步骤1: 开始重建热门榜单快照...")
	if err := t.cache.RefreshHotPostsRank(ctx, int64(constant.HotPostsCacheSize)); err != nil {
		// 快照重建失败时旧快照仍然可用，预热步骤基于旧快照继续
		t.logger.Error("重建热门榜单快照失败，预热将基于旧快照进行", zap.Error(err))
	} else {
		t.logger.Info("任务步骤1: 热门榜单快照重建完成")
	}

	t.logger.Info("任务步骤2: 开始预热热门帖子详情缓存...")
	ids, err := t.cache.GetHotPostIDsByRange(ctx, 0, int64(constant.HotPostsCacheSize)-1)
	if err != nil {
		t.logger.Error("读取热门榜单失败，本次预热中止", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		t.logger.Info("热门榜单为空，无需预热")
		return
	}

	posts, err := t.batchRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		t.logger.Error("批量读取热门帖子失败，本次预热中止", zap.Error(err))
		return
	}

	warmed := 0
	for _, post := range posts {
		// 榜单分数滞后于状态变化，只有仍然公开的帖子才进缓存
		if post.Status != enums.PostStatusPublished {
			continue
		}
		tags, tagErr := t.taxonomyRepo.GetTagsByPostID(ctx, post.ID)
		if tagErr != nil {
			t.logger.Warn("预热时读取帖子标签失败，已跳过该帖子", zap.Error(tagErr), zap.Uint64("postID", post.ID))
			continue
		}
		if cacheErr := t.cache.SetPostDetail(ctx, vo.NewPostDetailVOFromEntity(post, tags)); cacheErr != nil {
			t.logger.Warn("预热帖子详情缓存失败", zap.Error(cacheErr), zap.Uint64("postID", post.ID))
			continue
		}
		warmed++
	}
	t.logger.Info("任务步骤2: 热门帖子详情预热完成",
		zap.Int("榜单数量", len(ids)),
		zap.Int("预热数量", warmed),
	)
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *HotPostsCacheTask) Stop() context.Context {
	t.logger.Info("正在停止热门帖子缓存刷新定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("热门帖子缓存刷新定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
