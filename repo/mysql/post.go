package mysql

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
	"github.com/Xushengqwer/blog_service/myErrors"
)

// PostRepository 定义了帖子数据在 MySQL 中的持久化操作接口。
// 接口的设计旨在将数据访问逻辑与业务逻辑（服务层）解耦。
type PostRepository interface {
	// CreatePost 持久化一个新的帖子记录。
	// - 这是帖子生命周期的起点，新帖子总是以草稿状态落库。
	CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error

	// GetPostByID 根据单个 ID 检索帖子信息。
	// - 如果未找到帖子，返回 commonerrors.ErrRepoNotFound 错误。
	// - 仓库层不做可见性判定，调用方必须在返回结果上执行鉴权。
	GetPostByID(ctx context.Context, id uint64) (*entities.Post, error)

	// GetPostBySlug 根据 slug 检索帖子信息。
	// - 如果未找到帖子，返回 commonerrors.ErrRepoNotFound 错误。
	GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error)

	// SlugExists 判断 slug 是否已被占用。
	// - excludeID 非 0 时排除指定帖子自身（编辑场景）。
	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)

	// UpdatePostFields 按字段映射更新帖子内容，并将乐观锁版本号加一。
	// - updateMap 的键为数据库列名；总是会自动更新 updated_at。
	// - 未找到记录时返回 commonerrors.ErrRepoNotFound。
	UpdatePostFields(ctx context.Context, db *gorm.DB, postID uint64, updateMap map[string]interface{}) error

	// UpdateStatusIfCurrent 条件更新帖子状态（CAS）。
	// - 只有当帖子当前状态等于 expected 时才写入 updateMap 中的字段，
	//   用一条带状态谓词的 UPDATE 在数据库层消除“读取-判定-写入”间隙的竞态。
	// - RowsAffected == 0 时回查帖子是否存在：
	//   不存在返回 commonerrors.ErrRepoNotFound，存在说明状态已被并发修改，
	//   返回 myErrors.ErrInvalidState。两个并发的同一流转请求只有一个会成功。
	UpdateStatusIfCurrent(ctx context.Context, db *gorm.DB, postID uint64, expected enums.PostStatus, updateMap map[string]interface{}) error

	// DeletePost 物理删除指定帖子及其标签关联。
	// - 删除是不可恢复的硬删除；调用方负责先完成鉴权。
	// - 未找到记录时返回 commonerrors.ErrRepoNotFound。
	DeletePost(ctx context.Context, db *gorm.DB, id uint64) error

	// GetPostsByAuthor 分页查询指定作者的帖子列表，支持状态筛选。
	// - 返回: 帖子列表, 符合条件的总记录数, 错误。
	GetPostsByAuthor(ctx context.Context, authorID string, status *enums.PostStatus, offset, limit int) ([]*entities.Post, int64, error)

	// GetPublishedByCursor 实现公开时间线的游标分页查询。
	// - 只返回已发布帖子，按 (created_at, id) 双字段降序。
	// - 返回: 帖子列表, 下一页游标时间, 下一页游标ID, 错误。
	GetPublishedByCursor(ctx context.Context, params *timelineQuery) ([]*entities.Post, *time.Time, *uint64, error)

	// GetPendingPosts 分页查询待审核帖子，按创建时间降序。
	// - 排序键选创建时间而不是更新时间：编辑待审核帖子会刷新 updated_at，
	//   但不应因此改变它在审核队列里的位置。
	GetPendingPosts(ctx context.Context, offset, limit int) ([]*entities.Post, int64, error)

	// CountByStatus 统计各状态的帖子数量，用于后台仪表盘。
	// - authorID 非 nil 时只统计该作者的帖子（普通用户的个人仪表盘）。
	CountByStatus(ctx context.Context, authorID *string) (map[enums.PostStatus]int64, error)

	// ListPostsByCondition 管理员按条件分页查询帖子，不做可见性过滤。
	ListPostsByCondition(ctx context.Context, req *dto.ListPostsByConditionRequest) ([]*entities.Post, int64, error)
}

// timelineQuery 是时间线查询在仓库层的参数形式。
// - 服务层负责把 DTO 中的字符串游标解析为 time.Time 后再下传。
type timelineQuery struct {
	LastCreatedAt *time.Time
	LastPostID    *uint64
	CategoryID    *uint64
	TagID         *uint64
	PageSize      int
}

// NewTimelineQuery 构造时间线查询参数。
func NewTimelineQuery(lastCreatedAt *time.Time, lastPostID *uint64, categoryID, tagID *uint64, pageSize int) *timelineQuery {
	return &timelineQuery{
		LastCreatedAt: lastCreatedAt,
		LastPostID:    lastPostID,
		CategoryID:    categoryID,
		TagID:         tagID,
		PageSize:      pageSize,
	}
}

// postRepository 是 PostRepository 接口针对 MySQL 的具体实现。
type postRepository struct {
	db     *gorm.DB
	logger *core.ZapLogger
}

// NewPostRepository 是 postRepository 的构造函数。
func NewPostRepository(db *gorm.DB, logger *core.ZapLogger) PostRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePost 实现帖子的数据库插入操作。
func (r *postRepository) CreatePost(ctx context.Context, db *gorm.DB, post *entities.Post) error {
	// 使用传入的 db 对象（可能是事务 tx）执行数据库操作。
	if err := db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	// 创建成功后，post 对象会包含 GORM 自动生成的 ID 和时间戳。
	return nil
}

// GetPostByID 实现根据单个 ID 获取帖子。
func (r *postRepository) GetPostByID(ctx context.Context, id uint64) (*entities.Post, error) {
	var post entities.Post

	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Warn("根据 ID 获取帖子未找到", zap.Uint64("postID", id))
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 ID 获取帖子数据库查询失败", zap.Uint64("postID", id), zap.Error(err))
		return nil, err
	}

	return &post, nil
}

// GetPostBySlug 实现根据 slug 获取帖子。
func (r *postRepository) GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	var post entities.Post

	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		r.logger.Error("根据 slug 获取帖子数据库查询失败", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	return &post, nil
}

// SlugExists 实现 slug 占用检查。
func (r *postRepository) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		r.logger.Error("检查 slug 占用失败", zap.String("slug", slug), zap.Error(err))
		return false, err
	}

	return count > 0, nil
}

// UpdatePostFields 实现帖子内容字段的更新。
func (r *postRepository) UpdatePostFields(ctx context.Context, db *gorm.DB, postID uint64, updateMap map[string]interface{}) error {
	if len(updateMap) == 0 {
		r.logger.Info("没有提供任何有效的字段来更新帖子", zap.Uint64("postID", postID))
		return nil
	}

	updateMap["updated_at"] = time.Now()
	// 每次内容更新把版本号加一，供并发冲突排查
	updateMap["version"] = gorm.Expr("version + 1")

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND deleted_at IS NULL", postID).
		Updates(updateMap)

	if result.Error != nil {
		r.logger.Error("更新帖子数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("postID", postID),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("尝试更新帖子但未找到记录或记录已被删除", zap.Uint64("postID", postID))
		return commonerrors.ErrRepoNotFound
	}

	return nil
}

// UpdateStatusIfCurrent 实现状态的条件更新（CAS）。
func (r *postRepository) UpdateStatusIfCurrent(ctx context.Context, db *gorm.DB, postID uint64, expected enums.PostStatus, updateMap map[string]interface{}) error {
	updateMap["updated_at"] = time.Now()
	updateMap["version"] = gorm.Expr("version + 1")

	result := db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("id = ? AND status = ? AND deleted_at IS NULL", postID, expected).
		Updates(updateMap)

	if result.Error != nil {
		r.logger.Error("条件更新帖子状态数据库操作失败",
			zap.Error(result.Error),
			zap.Uint64("postID", postID),
			zap.Stringer("expectedStatus", expected),
		)
		return result.Error
	}

	if result.RowsAffected == 0 {
		// 区分“帖子不存在”和“状态已被并发修改”
		var count int64
		if err := db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return commonerrors.ErrRepoNotFound
		}
		r.logger.Warn("条件更新帖子状态失败：状态已被并发修改",
			zap.Uint64("postID", postID),
			zap.Stringer("expectedStatus", expected),
		)
		return myErrors.ErrInvalidState
	}

	return nil
}

// DeletePost 实现帖子的物理删除，并级联清理标签关联。
func (r *postRepository) DeletePost(ctx context.Context, db *gorm.DB, id uint64) error {
	result := db.WithContext(ctx).Unscoped().Delete(&entities.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}

	if err := db.WithContext(ctx).Where("post_id = ?", id).Delete(&entities.PostTag{}).Error; err != nil {
		return err
	}
	return nil
}

// GetPostsByAuthor 实现作者帖子列表的分页查询。
func (r *postRepository) GetPostsByAuthor(ctx context.Context, authorID string, status *enums.PostStatus, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("author_id = ?", authorID)
	countQuery := r.db.WithContext(ctx).Model(&entities.Post{}).Where("author_id = ?", authorID)

	if status != nil {
		query = query.Where("status = ?", *status)
		countQuery = countQuery.Where("status = ?", *status)
	}

	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取作者帖子列表：计数查询失败",
			zap.Error(err),
			zap.String("authorID", authorID),
		)
		return nil, 0, fmt.Errorf("计数作者帖子失败: %w", err)
	}

	if totalCount == 0 {
		return posts, 0, nil
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if err := query.Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		r.logger.Error("获取作者帖子列表：列表查询失败",
			zap.Error(err),
			zap.String("authorID", authorID),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, 0, fmt.Errorf("查询作者帖子列表失败: %w", err)
	}

	return posts, totalCount, nil
}

// GetPublishedByCursor 实现公开时间线的游标分页查询。
func (r *postRepository) GetPublishedByCursor(ctx context.Context, params *timelineQuery) ([]*entities.Post, *time.Time, *uint64, error) {
	var posts []*entities.Post

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 20
		r.logger.Warn("GetPublishedByCursor 接收到的 PageSize 无效，使用默认值",
			zap.Int("receivedPageSize", params.PageSize),
			zap.Int("defaultPageSize", pageSize),
		)
	}

	query := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("posts.status = ?", enums.PostStatusPublished)

	if params.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *params.CategoryID)
	}
	if params.TagID != nil {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", *params.TagID)
	}

	// 游标条件：双字段比较保证同一秒创建的帖子也有稳定顺序
	if params.LastCreatedAt != nil && params.LastPostID != nil {
		query = query.Where("(posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?))",
			*params.LastCreatedAt, *params.LastCreatedAt, *params.LastPostID)
	}

	query = query.Order("posts.created_at DESC").Order("posts.id DESC")

	// 查询 pageSize + 1 条记录，用于判断是否还有下一页
	err := query.Limit(pageSize + 1).Find(&posts).Error
	if err != nil {
		r.logger.Error("按时间线获取已发布帖子列表数据库查询失败", zap.Error(err))
		return nil, nil, nil, err
	}

	var nextCreatedAt *time.Time
	var nextPostID *uint64

	if len(posts) > pageSize {
		lastPostInPage := posts[pageSize-1]
		nextCreatedAt = &lastPostInPage.CreatedAt
		nextPostID = &lastPostInPage.ID
		posts = posts[:pageSize]
	}

	return posts, nextCreatedAt, nextPostID, nil
}

// GetPendingPosts 实现审核队列的分页查询。
func (r *postRepository) GetPendingPosts(ctx context.Context, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var totalCount int64

	countQuery := r.db.WithContext(ctx).Model(&entities.Post{}).Where("status = ?", enums.PostStatusPending)
	if err := countQuery.Count(&totalCount).Error; err != nil {
		r.logger.Error("获取审核队列：计数查询失败", zap.Error(err))
		return nil, 0, fmt.Errorf("计数待审核帖子失败: %w", err)
	}

	if totalCount == 0 {
		return posts, 0, nil
	}

	err := r.db.WithContext(ctx).
		Where("status = ?", enums.PostStatusPending).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("获取审核队列：列表查询失败", zap.Error(err))
		return nil, 0, fmt.Errorf("查询待审核帖子失败: %w", err)
	}

	return posts, totalCount, nil
}

// CountByStatus 实现按状态统计帖子数量。
func (r *postRepository) CountByStatus(ctx context.Context, authorID *string) (map[enums.PostStatus]int64, error) {
	type statusCount struct {
		Status enums.PostStatus
		Count  int64
	}
	var rows []statusCount

	query := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}
	err := query.Scan(&rows).Error
	if err != nil {
		r.logger.Error("按状态统计帖子数量失败", zap.Error(err))
		return nil, err
	}

	counts := make(map[enums.PostStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ListPostsByCondition 实现管理员条件查询。
func (r *postRepository) ListPostsByCondition(ctx context.Context, req *dto.ListPostsByConditionRequest) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&entities.Post{})

	if req.ID != nil {
		query = query.Where("id = ?", *req.ID)
	}
	if req.Title != nil && *req.Title != "" {
		query = query.Where("title LIKE ?", "%"+*req.Title+"%")
	}
	if req.AuthorID != nil && *req.AuthorID != "" {
		query = query.Where("author_id = ?", *req.AuthorID)
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}
	if req.CategoryID != nil {
		query = query.Where("category_id = ?", *req.CategoryID)
	}
	if req.ViewCountMin != nil {
		query = query.Where("view_count >= ?", *req.ViewCountMin)
	}
	if req.ViewCountMax != nil {
		query = query.Where("view_count <= ?", *req.ViewCountMax)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		r.logger.Error("管理员条件查询：计数失败", zap.Error(err))
		return nil, 0, fmt.Errorf("计数帖子失败: %w", err)
	}

	if totalCount == 0 {
		return posts, 0, nil
	}

	orderBy := "created_at"
	if req.OrderBy == "updated_at" {
		orderBy = "updated_at"
	}
	direction := "ASC"
	if req.OrderDesc {
		direction = "DESC"
	}

	offset := (req.Page - 1) * req.PageSize
	err := query.Order(fmt.Sprintf("%s %s", orderBy, direction)).Order("id DESC").
		Offset(offset).Limit(req.PageSize).
		Find(&posts).Error
	if err != nil {
		r.logger.Error("管理员条件查询：列表查询失败", zap.Error(err))
		return nil, 0, fmt.Errorf("条件查询帖子失败: %w", err)
	}

	return posts, totalCount, nil
}
