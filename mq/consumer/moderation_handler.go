package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/models/dto"
	"github.com/Xushengqwer/blog_service/models/enums"
	"github.com/Xushengqwer/blog_service/models/events"
	"github.com/Xushengqwer/blog_service/myErrors"
	"github.com/Xushengqwer/blog_service/service"
	"github.com/Xushengqwer/blog_service/workflow"
)

// todo  未配置死信队列

// MessageHandler 定义了处理 Kafka 消息的接口
type MessageHandler interface {
	Handle(ctx context.Context, msg kafka.Message) error
}

// --- ModerationApprovedHandler ---

// ModerationApprovedHandler 消费内容安全服务回发的机审通过事件，
// 以事件中的机审账号身份走正常的审核通过流程。
type ModerationApprovedHandler struct {
	logger          *core.ZapLogger
	workflowService service.ReviewWorkflowService
}

func NewModerationApprovedHandler(logger *core.ZapLogger, workflowService service.ReviewWorkflowService) *ModerationApprovedHandler {
	return &ModerationApprovedHandler{
		logger:          logger,
		workflowService: workflowService,
	}
}

func (h *ModerationApprovedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	h.logger.Debug("ModerationApprovedHandler: 开始处理 Kafka 消息", zap.String("topic", msg.Topic))

	var event events.ModerationApprovedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("ModerationApprovedHandler: 反序列化 Kafka 消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}

	h.logger.Info("ModerationApprovedHandler: 成功解析机审通过消息",
		zap.String("event_id", event.EventID),
		zap.Uint64("post_id", event.PostID))

	actor := workflow.Actor{
		UserID: event.ReviewerID,
		Role:   enums.RoleReviewer,
	}

	_, err := h.workflowService.ApprovePost(ctx, actor, event.PostID, &dto.ApprovePostRequest{})
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			h.logger.Warn("ModerationApprovedHandler: 帖子不存在或已删除，跳过", zap.Uint64("post_id", event.PostID))
			return nil // 不再重试
		}
		if errors.Is(err, myErrors.ErrInvalidState) {
			// 帖子已不在待审核状态（人工审核先一步裁定），跳过
			h.logger.Warn("ModerationApprovedHandler: 帖子状态已变更，跳过", zap.Uint64("post_id", event.PostID))
			return nil
		}
		h.logger.Error("ModerationApprovedHandler: 审核通过处理失败", zap.Error(err), zap.Uint64("post_id", event.PostID))
		return fmt.Errorf("ModerationApprovedHandler: 调用 ApprovePost 失败: %w", err)
	}

	h.logger.Info("ModerationApprovedHandler: 帖子已发布", zap.Uint64("post_id", event.PostID))
	return nil
}

// --- ModerationRejectedHandler ---

// ModerationRejectedHandler 消费机审驳回事件，理由回写为审核意见。
type ModerationRejectedHandler struct {
	logger          *core.ZapLogger
	workflowService service.ReviewWorkflowService
}

func NewModerationRejectedHandler(logger *core.ZapLogger, workflowService service.ReviewWorkflowService) *ModerationRejectedHandler {
	return &ModerationRejectedHandler{
		logger:          logger,
		workflowService: workflowService,
	}
}

func (h *ModerationRejectedHandler) Handle(ctx context.Context, msg kafka.Message) error {
	h.logger.Debug("ModerationRejectedHandler: 开始处理 Kafka 消息", zap.String("topic", msg.Topic))

	var event events.ModerationRejectedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Error("ModerationRejectedHandler: 反序列化 Kafka 消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil // 不重试无法解析的消息
	}

	h.logger.Info("ModerationRejectedHandler: 成功解析机审驳回消息",
		zap.String("event_id", event.EventID),
		zap.Uint64("post_id", event.PostID),
		zap.String("reason", event.Reason))

	actor := workflow.Actor{
		UserID: event.ReviewerID,
		Role:   enums.RoleReviewer,
	}

	_, err := h.workflowService.RejectPost(ctx, actor, event.PostID, &dto.RejectPostRequest{Comments: event.Reason})
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			h.logger.Warn("ModerationRejectedHandler: 帖子不存在或已删除，跳过", zap.Uint64("post_id", event.PostID))
			return nil // 不再重试
		}
		if errors.Is(err, myErrors.ErrInvalidState) {
			h.logger.Warn("ModerationRejectedHandler: 帖子状态已变更，跳过", zap.Uint64("post_id", event.PostID))
			return nil
		}
		if errors.Is(err, myErrors.ErrRejectReasonRequired) {
			// 机审没给理由的驳回事件属于上游契约违规，重试不会成功
			h.logger.Error("ModerationRejectedHandler: 驳回事件缺少理由，丢弃", zap.Uint64("post_id", event.PostID))
			return nil
		}
		h.logger.Error("ModerationRejectedHandler: 审核驳回处理失败",
			zap.Error(err),
			zap.Uint64("post_id", event.PostID),
			zap.String("reason", event.Reason))
		return fmt.Errorf("ModerationRejectedHandler: 调用 RejectPost 失败: %w", err)
	}

	h.logger.Info("ModerationRejectedHandler: 帖子已驳回", zap.Uint64("post_id", event.PostID))
	return nil
}
