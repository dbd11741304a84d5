package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/Xushengqwer/go-common/core"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/repo/mysql"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/workflow"
)

// Seed 通过服务层填充测试数据：账号、分类、标签，以及走完审核工作流各个分支的帖子。
// - 帖子的状态分布：约 1/4 停留在草稿，其余提交审核后随机通过 / 驳回 / 保持待审核。
// - 所有写操作都经由服务层，保证 slug 生成、状态机和事件发布与线上行为一致。
func Seed(
	ctx context.Context,
	db *gorm.DB,
	userRepo mysql.UserRepository,
	taxonomySvc service.TaxonomyService,
	postSvc service.PostService,
	workflowSvc service.ReviewWorkflowService,
	logger *core.ZapLogger,
	numPosts int,
) {
	logger.Info("开始填充测试数据 (通过服务层)...", zap.Int("帖子数量", numPosts))

	// --- 1. 账号：1 个管理员、2 个审核员、8 个作者 ---
	seedUser := func(role enums.UserRole) *workflow.Actor {
		user := &entities.User{
			UserID:   uuid.New().String(),
			Email:    gofakeit.Email(),
			Nickname: gofakeit.Username(),
			Avatar:   gofakeit.ImageURL(100, 100),
			Role:     role,
		}
		if err := userRepo.CreateUser(ctx, db, user); err != nil {
			logger.Error("创建测试账号失败", zap.Error(err), zap.String("email", user.Email))
			return nil
		}
		return &workflow.Actor{UserID: user.UserID, Role: role}
	}

	admin := seedUser(enums.RoleAdmin)
	if admin == nil {
		logger.Error("管理员账号创建失败，数据填充中止")
		return
	}

	var reviewers []*workflow.Actor
	for i := 0; i < 2; i++ {
		if reviewer := seedUser(enums.RoleReviewer); reviewer != nil {
			reviewers = append(reviewers, reviewer)
		}
	}
	var authors []*workflow.Actor
	for i := 0; i < 8; i++ {
		if author := seedUser(enums.RoleUser); author != nil {
			authors = append(authors, author)
		}
	}
	if len(reviewers) == 0 || len(authors) == 0 {
		logger.Error("审核员或作者账号不足，数据填充中止")
		return
	}
	logger.Info("测试账号创建完毕",
		zap.Int("审核员数量", len(reviewers)),
		zap.Int("作者数量", len(authors)),
	)

	// --- 2. 分类与标签（管理员操作）---
	var categoryIDs []uint64
	for i := 0; i < 5; i++ {
		// 名称追加序号，避免 gofakeit 撞词导致 slug 冲突
		name := fmt.Sprintf("%s-%d", gofakeit.BuzzWord(), i+1)
		categoryVO, err := taxonomySvc.CreateCategory(ctx, *admin, &dto.CreateCategoryRequest{Name: name})
		if err != nil {
			logger.Warn("创建测试分类失败，已跳过", zap.Error(err), zap.String("name", name))
			continue
		}
		categoryIDs = append(categoryIDs, categoryVO.ID)
	}

	var tagIDs []uint64
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("%s-%d", gofakeit.HackerNoun(), i+1)
		tagVO, err := taxonomySvc.CreateTag(ctx, *admin, &dto.CreateTagRequest{Name: name})
		if err != nil {
			logger.Warn("创建测试标签失败，已跳过", zap.Error(err), zap.String("name", name))
			continue
		}
		tagIDs = append(tagIDs, tagVO.ID)
	}
	logger.Info("分类与标签创建完毕",
		zap.Int("分类数量", len(categoryIDs)),
		zap.Int("标签数量", len(tagIDs)),
	)

	// --- 3. 帖子：创建后按概率走完审核流程的不同分支 ---
	var wg sync.WaitGroup
	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			author := authors[rand.Intn(len(authors))]
			reviewer := reviewers[rand.Intn(len(reviewers))]

			createReq := &dto.CreatePostRequest{
				Title:            gofakeit.Sentence(gofakeit.Number(5, 12)),
				Content:          gofakeit.Paragraph(3, 5, 20, "\n\n"),
				Excerpt:          gofakeit.Sentence(15),
				FeaturedImageURL: gofakeit.ImageURL(800, 450),
			}
			if len(categoryIDs) > 0 && gofakeit.Bool() {
				categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
				createReq.CategoryID = &categoryID
			}
			if len(tagIDs) > 0 {
				tagCount := gofakeit.Number(1, 3)
				if tagCount > len(tagIDs) {
					tagCount = len(tagIDs)
				}
				for _, idx := range rand.Perm(len(tagIDs))[:tagCount] {
					createReq.TagIDs = append(createReq.TagIDs, tagIDs[idx])
				}
			}

			detail, err := postSvc.CreatePost(ctx, *author, createReq)
			if err != nil {
				logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", itemIndex+1, numPosts),
					zap.Error(err),
					zap.String("title", createReq.Title),
					zap.String("author_id", author.UserID))
				return
			}

			// 约 1/4 的帖子停留在草稿
			if gofakeit.Number(1, 4) == 1 {
				logger.Info(fmt.Sprintf("帖子 %d/%d 保持草稿", itemIndex+1, numPosts),
					zap.Uint64("post_id", detail.ID))
				return
			}

			if _, err := workflowSvc.SubmitForReview(ctx, *author, detail.ID, &dto.SubmitForReviewRequest{}); err != nil {
				logger.Error("提交审核失败", zap.Error(err), zap.Uint64("post_id", detail.ID))
				return
			}

			// 提交后：50% 通过，30% 驳回，20% 保持待审核
			switch roll := gofakeit.Number(1, 10); {
			case roll <= 5:
				comments := gofakeit.Sentence(8)
				if _, err := workflowSvc.ApprovePost(ctx, *reviewer, detail.ID, &dto.ApprovePostRequest{Comments: &comments}); err != nil {
					logger.Error("审核通过失败", zap.Error(err), zap.Uint64("post_id", detail.ID))
					return
				}
				logger.Info(fmt.Sprintf("帖子 %d/%d 已发布", itemIndex+1, numPosts),
					zap.Uint64("post_id", detail.ID), zap.String("title", detail.Title))
			case roll <= 8:
				rejectReq := &dto.RejectPostRequest{Comments: gofakeit.Sentence(10)}
				if _, err := workflowSvc.RejectPost(ctx, *reviewer, detail.ID, rejectReq); err != nil {
					logger.Error("审核驳回失败", zap.Error(err), zap.Uint64("post_id", detail.ID))
					return
				}
				logger.Info(fmt.Sprintf("帖子 %d/%d 已驳回", itemIndex+1, numPosts),
					zap.Uint64("post_id", detail.ID))
			default:
				logger.Info(fmt.Sprintf("帖子 %d/%d 保持待审核", itemIndex+1, numPosts),
					zap.Uint64("post_id", detail.ID))
			}
		}(i)
	}

	wg.Wait()
	logger.Info("测试数据填充完毕 (通过服务层)。")
}
