package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/vo"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/repo/redis"
	"github.com/Xushengqwer/blog_service/workflow"
)

// PostService 定义了帖子读路径与创建的业务逻辑接口。
// - 状态流转（提交/通过/驳回）与内容编辑在 ReviewWorkflowService 中，
//   这里只处理创建与各种读取场景。
// - 所有读取都以显式传入的 workflow.Actor 为准做可见性判定；
//   对操作者不可见的帖子一律按不存在处理（返回 commonerrors.ErrRepoNotFound），
//   避免通过错误差异探测私密帖子的存在。
type PostService interface {
	// CreatePost 处理用户创建新帖子的业务流程。
	// - 新帖子总是以草稿状态落库，作者为操作者本人。
	// - slug 留空时由标题生成并保证唯一；显式指定且冲突时返回 myErrors.ErrSlugTaken。
	CreatePost(ctx context.Context, actor workflow.Actor, req *dto.CreatePostRequest) (*vo.PostDetailVO, error)

	// GetPostByID 获取单个帖子详情。
	// - 已发布帖子的读取优先走 Redis 缓存，未命中回源后写缓存；
	// - 读取已发布帖子会异步增加浏览计数。
	GetPostByID(ctx context.Context, actor workflow.Actor, postID uint64) (*vo.PostDetailVO, error)

	// GetPostBySlug 按 slug 获取单个帖子详情，规则与 GetPostByID 一致。
	GetPostBySlug(ctx context.Context, actor workflow.Actor, slug string) (*vo.PostDetailVO, error)

	// GetPostsTimeline 公开时间线：只返回已发布帖子，游标分页。
	GetPostsTimeline(ctx context.Context, query *dto.TimelineQueryDTO) (*vo.PostTimelinePageVO, error)

	// ListMyPosts 作者查看自己的帖子列表（任何状态），可按状态筛选。
	ListMyPosts(ctx context.Context, actor workflow.Actor, req *dto.ListMyPostsRequest) (*vo.ListUserPostPageVO, error)

	// ListReviewQueue 审核队列：待审核帖子按创建时间降序排列。
	// - 仅审核人员与管理员可访问。
	ListReviewQueue(ctx context.Context, actor workflow.Actor, page, pageSize int) (*vo.ReviewQueuePageVO, error)

	// GetPostStats 各状态帖子数量统计。
	// - 审核人员/管理员统计全站，普通用户统计自己的帖子；游客不可访问。
	GetPostStats(ctx context.Context, actor workflow.Actor) (*vo.PostStatsVO, error)

	// ListHotPosts 热门已发布帖子列表，数据来自 Redis 热榜。
	ListHotPosts(ctx context.Context, limit int64) ([]*vo.PostResponse, error)
}

// postService 是 PostService 接口的具体实现。
type postService struct {
	db           *gorm.DB
	postRepo     mysql.PostRepository
	userRepo     mysql.UserRepository
	taxonomyRepo mysql.TaxonomyRepository
	batchRepo    mysql.PostBatchOperationsRepository
	postViewRepo redis.PostViewRepository
	cache        redis.Cache
	logger       *core.ZapLogger
}

// NewPostService 是 postService 的构造函数，通过依赖注入初始化服务实例。
func NewPostService(
	db *gorm.DB,
	postRepo mysql.PostRepository,
	userRepo mysql.UserRepository,
	taxonomyRepo mysql.TaxonomyRepository,
	batchRepo mysql.PostBatchOperationsRepository,
	postViewRepo redis.PostViewRepository,
	cache redis.Cache,
	logger *core.ZapLogger,
) PostService {
	return &postService{
		db:           db,
		postRepo:     postRepo,
		userRepo:     userRepo,
		taxonomyRepo: taxonomyRepo,
		batchRepo:    batchRepo,
		postViewRepo: postViewRepo,
		cache:        cache,
		logger:       logger,
	}
}

// CreatePost 实现帖子创建。
func (s *postService) CreatePost(ctx context.Context, actor workflow.Actor, req *dto.CreatePostRequest) (*vo.PostDetailVO, error) {
	// 游客不能创建帖子
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	// 作者必须是本服务已知的账号
	if _, err := s.userRepo.GetUserByUserID(ctx, actor.UserID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("创建帖子：作者账号不存在", zap.String("authorID", actor.UserID))
		}
		return nil, err
	}

	// slug：显式指定时校验冲突，留空时由标题生成
	var slug string
	if req.Slug != "" {
		taken, err := s.postRepo.SlugExists(ctx, req.Slug, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, myErrors.ErrSlugTaken
		}
		slug = req.Slug
	} else {
		generated, err := uniqueSlug(ctx, s.postRepo, req.Title, 0)
		if err != nil {
			return nil, err
		}
		slug = generated
	}

	var createdPost *entities.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &entities.Post{
			Title:            req.Title,
			Slug:             slug,
			Content:          req.Content,
			Excerpt:          req.Excerpt,
			AuthorID:         actor.UserID,
			CategoryID:       req.CategoryID,
			FeaturedImageURL: req.FeaturedImageURL,
			Status:           enums.PostStatusDraft,
		}
		if repoErr := s.postRepo.CreatePost(ctx, tx, post); repoErr != nil {
			return fmt.Errorf("创建帖子失败: %w", repoErr)
		}
		createdPost = post

		if len(req.TagIDs) > 0 {
			if repoErr := s.taxonomyRepo.ReplacePostTags(ctx, tx, post.ID, req.TagIDs); repoErr != nil {
				return fmt.Errorf("写入帖子标签失败: %w", repoErr)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建帖子事务失败", zap.Error(err), zap.String("authorID", actor.UserID))
		return nil, err
	}

	s.logger.Info("帖子创建成功（草稿）",
		zap.Uint64("postID", createdPost.ID),
		zap.String("slug", createdPost.Slug),
		zap.String("authorID", actor.UserID),
	)

	tags, err := s.taxonomyRepo.GetTagsByPostID(ctx, createdPost.ID)
	if err != nil {
		// 标签读取失败不影响创建结果，返回空标签列表
		s.logger.Warn("创建帖子后读取标签失败", zap.Error(err), zap.Uint64("postID", createdPost.ID))
		tags = nil
	}
	return vo.NewPostDetailVOFromEntity(createdPost, tags), nil
}

// GetPostByID 实现按 ID 获取帖子详情。
func (s *postService) GetPostByID(ctx context.Context, actor workflow.Actor, postID uint64) (*vo.PostDetailVO, error) {
	// 已发布帖子优先走缓存；命中后仍需触发浏览计数
	if detail, err := s.cache.GetPostDetail(ctx, postID); err == nil {
		s.incrementViewAsync(postID, actor)
		return detail, nil
	} else if !errors.Is(err, myErrors.ErrCacheMiss) {
		// 缓存故障时降级回源，不向上抛错
		s.logger.Warn("读取帖子详情缓存失败，回源数据库", zap.Error(err), zap.Uint64("postID", postID))
	}

	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.buildVisibleDetail(ctx, actor, post)
}

// GetPostBySlug 实现按 slug 获取帖子详情。
func (s *postService) GetPostBySlug(ctx context.Context, actor workflow.Actor, slug string) (*vo.PostDetailVO, error) {
	post, err := s.postRepo.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// slug 路径无法在查库前判断缓存键，命中数据库后复用统一的详情组装
	return s.buildVisibleDetail(ctx, actor, post)
}

// buildVisibleDetail 做可见性判定、组装详情 VO，并处理缓存与浏览计数。
func (s *postService) buildVisibleDetail(ctx context.Context, actor workflow.Actor, post *entities.Post) (*vo.PostDetailVO, error) {
	// 不可见与不存在不可区分
	if !workflow.CanView(actor, post) {
		s.logger.Debug("帖子对操作者不可见，按不存在处理",
			zap.Uint64("postID", post.ID),
			zap.String("actorID", actor.UserID),
			zap.Stringer("actorRole", actor.Role),
		)
		return nil, commonerrors.ErrRepoNotFound
	}

	tags, err := s.taxonomyRepo.GetTagsByPostID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	detail := vo.NewPostDetailVOFromEntity(post, tags)

	if post.Status == enums.PostStatusPublished {
		// 只缓存公开内容
		if cacheErr := s.cache.SetPostDetail(ctx, detail); cacheErr != nil {
			s.logger.Warn("写入帖子详情缓存失败", zap.Error(cacheErr), zap.Uint64("postID", post.ID))
		}
		s.incrementViewAsync(post.ID, actor)
	}

	return detail, nil
}

// incrementViewAsync 异步增加浏览计数，不阻塞读请求。
func (s *postService) incrementViewAsync(postID uint64, actor workflow.Actor) {
	if actor.UserID == "" {
		s.logger.Debug("游客无标识，跳过增加浏览量", zap.Uint64("postID", postID))
		return
	}
	go func(pID uint64, viewerID string) {
		// 浏览计数生命周期独立于原始请求
		if redisErr := s.postViewRepo.IncrementViewCount(context.Background(), pID, viewerID); redisErr != nil {
			s.logger.Error("异步增加浏览量失败",
				zap.Error(redisErr),
				zap.Uint64("post_id", pID),
				zap.String("viewer_id", viewerID))
		}
	}(postID, actor.UserID)
}

// GetPostsTimeline 实现公开时间线查询。
func (s *postService) GetPostsTimeline(ctx context.Context, query *dto.TimelineQueryDTO) (*vo.PostTimelinePageVO, error) {
	var lastCreatedAt *time.Time
	if query.LastCreatedAt != nil && *query.LastCreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, *query.LastCreatedAt)
		if err != nil {
			s.logger.Warn("时间线游标解析失败", zap.String("lastCreatedAt", *query.LastCreatedAt), zap.Error(err))
			return nil, fmt.Errorf("无效的时间游标 %q: %w", *query.LastCreatedAt, err)
		}
		lastCreatedAt = &parsed
	}

	// slug 筛选转为 ID 筛选；slug 不存在时返回空页而不是报错
	var categoryID, tagID *uint64
	if query.CategorySlug != nil && *query.CategorySlug != "" {
		category, err := s.taxonomyRepo.GetCategoryBySlug(ctx, *query.CategorySlug)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				return &vo.PostTimelinePageVO{Posts: []*vo.PostResponse{}}, nil
			}
			return nil, err
		}
		categoryID = &category.ID
	}
	if query.TagSlug != nil && *query.TagSlug != "" {
		tag, err := s.taxonomyRepo.GetTagBySlug(ctx, *query.TagSlug)
		if err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				return &vo.PostTimelinePageVO{Posts: []*vo.PostResponse{}}, nil
			}
			return nil, err
		}
		tagID = &tag.ID
	}

	posts, nextCreatedAt, nextPostID, err := s.postRepo.GetPublishedByCursor(ctx,
		mysql.NewTimelineQuery(lastCreatedAt, query.LastPostID, categoryID, tagID, query.PageSize))
	if err != nil {
		return nil, err
	}

	return &vo.PostTimelinePageVO{
		Posts:         vo.MapPostsToPostResponsesVO(posts),
		NextCreatedAt: nextCreatedAt,
		NextPostID:    nextPostID,
	}, nil
}

// ListMyPosts 实现作者的帖子列表查询。
func (s *postService) ListMyPosts(ctx context.Context, actor workflow.Actor, req *dto.ListMyPostsRequest) (*vo.ListUserPostPageVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	var status *enums.PostStatus
	if req.Status != nil {
		st := enums.PostStatus(*req.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("无效的状态筛选值: %d", *req.Status)
		}
		status = &st
	}

	offset := (req.Page - 1) * req.PageSize
	posts, total, err := s.postRepo.GetPostsByAuthor(ctx, actor.UserID, status, offset, req.PageSize)
	if err != nil {
		return nil, err
	}

	return &vo.ListUserPostPageVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}

// ListReviewQueue 实现审核队列查询。
func (s *postService) ListReviewQueue(ctx context.Context, actor workflow.Actor, page, pageSize int) (*vo.ReviewQueuePageVO, error) {
	if !actor.IsStaff() {
		return nil, myErrors.ErrUnauthorized
	}

	offset := (page - 1) * pageSize
	posts, total, err := s.postRepo.GetPendingPosts(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}

	return &vo.ReviewQueuePageVO{
		Posts: vo.MapPostsToPostResponsesVO(posts),
		Total: total,
	}, nil
}

// GetPostStats 实现各状态帖子数量统计。
// - 审核人员/管理员拿到全站统计，普通用户拿到自己帖子的统计。
func (s *postService) GetPostStats(ctx context.Context, actor workflow.Actor) (*vo.PostStatsVO, error) {
	if actor.UserID == "" {
		return nil, myErrors.ErrUnauthorized
	}

	var authorID *string
	if !actor.IsStaff() {
		authorID = &actor.UserID
	}

	counts, err := s.postRepo.CountByStatus(ctx, authorID)
	if err != nil {
		return nil, err
	}

	stats := &vo.PostStatsVO{
		Draft:     counts[enums.PostStatusDraft],
		Pending:   counts[enums.PostStatusPending],
		Published: counts[enums.PostStatusPublished],
		Rejected:  counts[enums.PostStatusRejected],
	}
	stats.Total = stats.Draft + stats.Pending + stats.Published + stats.Rejected
	return stats, nil
}

// ListHotPosts 实现热门帖子列表查询。
func (s *postService) ListHotPosts(ctx context.Context, limit int64) ([]*vo.PostResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := s.cache.GetHotPostIDsByRange(ctx, 0, limit-1)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*vo.PostResponse{}, nil
	}

	posts, err := s.batchRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 热榜分数滞后于状态变化，过滤掉已经不再公开的帖子
	visible := make([]*entities.Post, 0, len(posts))
	for _, post := range posts {
		if post.Status == enums.PostStatusPublished {
			visible = append(visible, post)
		}
	}

	return vo.MapPostsToPostResponsesVO(visible), nil
}
