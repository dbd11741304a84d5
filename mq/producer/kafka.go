package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/entities"
	"github.com/Xushengqwer/blog_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// snapshotFromPost 把帖子实体转为事件中的数据快照。
func snapshotFromPost(post *entities.Post) events.PostEventData {
	data := events.PostEventData{
		ID:       post.ID,
		Title:    post.Title,
		Slug:     post.Slug,
		Content:  post.Content,
		Excerpt:  post.Excerpt,
		AuthorID: post.AuthorID,
		Status:   int(post.Status),
	}
	if post.CategoryID != nil {
		data.CategoryID = *post.CategoryID
	}
	return data
}

// SendPostSubmittedEvent 发送帖子提交审核事件到 Kafka
// - 意图: 将进入待审核状态的帖子发送给内容安全服务做机器审核
func (p *KafkaProducer) SendPostSubmittedEvent(ctx context.Context, post *entities.Post) error {
	event := events.PostSubmittedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      snapshotFromPost(post),
	}
	return p.SendEvent(ctx, p.topics.PostSubmitted, event)
}

// SendPostPublishedEvent 发送帖子发布事件到 Kafka
// - 意图: 通知搜索/推荐服务更新索引
func (p *KafkaProducer) SendPostPublishedEvent(ctx context.Context, post *entities.Post, reviewerID string) error {
	event := events.PostPublishedEvent{
		EventID:    uuid.New().String(),
		Timestamp:  time.Now(),
		Post:       snapshotFromPost(post),
		ReviewerID: reviewerID,
	}
	return p.SendEvent(ctx, p.topics.PostPublished, event)
}

// SendPostRejectedEvent 发送帖子驳回事件到 Kafka
// - 意图: 通知服务据此告知作者驳回理由
func (p *KafkaProducer) SendPostRejectedEvent(ctx context.Context, postID uint64, authorID, reviewerID, reason string) error {
	event := events.PostRejectedEvent{
		EventID:    uuid.New().String(),
		Timestamp:  time.Now(),
		PostID:     postID,
		AuthorID:   authorID,
		ReviewerID: reviewerID,
		Reason:     reason,
	}
	return p.SendEvent(ctx, p.topics.PostRejected, event)
}

// SendPostDeleteEvent 发送帖子删除事件到 Kafka
// - 意图: 下游服务清理索引与缓存
func (p *KafkaProducer) SendPostDeleteEvent(ctx context.Context, postID uint64) error {
	event := events.PostDeletedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		PostID:    postID,
	}
	return p.SendEvent(ctx, p.topics.PostDeleted, event)
}

// Close 关闭底层的 Kafka Writer。
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
