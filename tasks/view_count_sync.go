package tasks

import (
	"context"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/constant"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
)

// ViewCountSyncTask 负责定时将 Redis 中的帖子浏览量同步到 MySQL 数据库。
type ViewCountSyncTask struct {
	postViewRepo  redis.PostViewRepository            // Redis 仓库，用于获取浏览量
	postBatchRepo mysql.PostBatchOperationsRepository // MySQL 批量操作仓库，用于更新浏览量
	cron          *cron.Cron
	logger        *core.ZapLogger
}

// NewViewCountSyncTask 初始化并启动浏览量同步的定时任务。
func NewViewCountSyncTask(
	postViewRepo redis.PostViewRepository,
	postBatchRepo mysql.PostBatchOperationsRepository,
	logger *core.ZapLogger,
) *ViewCountSyncTask {
	cronV3 := cron.New(cron.WithSeconds())
	task := &ViewCountSyncTask{
		postViewRepo:  postViewRepo,
		postBatchRepo: postBatchRepo,
		cron:          cronV3,
		logger:        logger,
	}
	task.startCronJob()
	return task
}

// startCronJob 配置并启动 cron 作业。
func (t *ViewCountSyncTask) startCronJob() {
	schedule := constant.ViewCountSyncCronSpec
	t.logger.Info("准备启动帖子浏览量同步MySQL定时任务", zap.String("schedule", schedule))

	entryID, err := t.cron.AddFunc(schedule, func() {
		t.logger.Info("帖子浏览量同步MySQL任务开始执行...")
		startTime := time.Now()
		// 超时应覆盖 Redis 全量读取与 MySQL 批量更新
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		t.syncViewCountsToDB(ctx)

		duration := time.Since(startTime)
		t.logger.Info("帖子浏览量同步MySQL任务执行完毕", zap.Duration("duration", duration))
	})

	if err != nil {
		t.logger.Fatal("添加帖子浏览量同步 cron 作业失败", zap.Error(err), zap.String("schedule", schedule))
	}

	t.cron.Start()
	t.logger.Info("帖子浏览量同步MySQL定时任务已启动", zap.Uint("cronEntryID", uint(entryID)))
}

// syncViewCountsToDB 是定时任务执行的实际同步逻辑。
// 1. 从 Redis 获取全量的帖子浏览量数据。
// 2. 调用 MySQL 仓库批量更新到数据库。
func (t *ViewCountSyncTask) syncViewCountsToDB(ctx context.Context) {
	t.logger.Info("任务步骤1: 开始从 Redis 获取全量帖子浏览量...")
	viewCounts, err := t.postViewRepo.GetAllViewCounts(ctx)
	if err != nil {
		t.logger.Error("从 Redis 获取全量浏览量失败，本次同步中止。", zap.Error(err))
		return
	}

	countFromRedis := len(viewCounts)
	if countFromRedis == 0 {
		t.logger.Info("从 Redis 获取到的浏览量数据为空，无需同步到 MySQL。")
		return
	}
	t.logger.Info("任务步骤1: 成功从 Redis 获取到浏览量数据。", zap.Int("帖子数量", countFromRedis))

	t.logger.Info("任务步骤2: 开始将浏览量批量更新到 MySQL...")
	if err := t.postBatchRepo.BatchUpdatePostViewCounts(ctx, viewCounts); err != nil {
		t.logger.Error("MySQL 批量更新浏览量失败",
			zap.Error(err),
			zap.Int("提交数量", countFromRedis),
		)
	} else {
		t.logger.Info("任务步骤2: MySQL 批量更新浏览量完成。", zap.Int("提交数量", countFromRedis))
	}
}

// Stop 优雅地停止 cron 调度器。
// 返回一个 context，调用者可以使用它来等待正在运行的任务完成。
func (t *ViewCountSyncTask) Stop() context.Context {
	t.logger.Info("正在停止帖子浏览量同步MySQL定时任务...")
	stopCtx := t.cron.Stop()
	t.logger.Info("帖子浏览量同步MySQL定时任务已停止调度。等待正在执行的任务完成...")
	return stopCtx
}
