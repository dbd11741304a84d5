package consumer

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	appConfig "github.com/Xushengqwer/blog_service/config"
)

// handleTimeout 单条消息的处理时限，超时的裁定会被放弃并记录日志。
const handleTimeout = 30 * time.Second

// Consumer 包装一个 kafka.Reader 与它的消息处理器。
// - 每个主题一个 Consumer 实例，各自跑在独立的 goroutine 里
type Consumer struct {
	reader  *kafka.Reader
	handler MessageHandler
	logger  *core.ZapLogger
	topic   string
}

// NewConsumer 创建指定主题的消费者。
func NewConsumer(cfg *appConfig.KafkaConfig, groupID string, topicName string, handler MessageHandler, logger *core.ZapLogger) (*Consumer, error) {
	if topicName == "" {
		return nil, errors.New("kafka topic 名称不能为空")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers 配置不能为空")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topicName,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})

	logger.Info("Kafka 消费者初始化完成",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", topicName),
		zap.String("group_id", groupID))

	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  logger,
		topic:   topicName,
	}, nil
}

// Start 阻塞式消费循环，直到 ctx 取消或 Reader 被关闭。
// - 处理器返回错误只记日志不中断循环；消息是否跳过由处理器自己决定
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Kafka 消费循环启动", zap.String("topic", c.topic))
	defer c.logger.Info("Kafka 消费循环结束", zap.String("topic", c.topic))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			// ctx 取消或 Reader 已关闭属于正常退出路径
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				c.logger.Warn("Kafka 读取循环退出", zap.String("topic", c.topic), zap.Error(err))
				return
			}
			c.logger.Error("读取 Kafka 消息失败，稍后重试", zap.String("topic", c.topic), zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		handleCtx, cancel := context.WithTimeout(ctx, handleTimeout)
		if handleErr := c.handler.Handle(handleCtx, msg); handleErr != nil {
			c.logger.Error("处理 Kafka 消息失败",
				zap.Error(handleErr),
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset))
		}
		cancel()
	}
}

// Close 关闭底层 Reader，让 Start 循环退出。
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("关闭 Kafka Reader 失败", zap.Error(err), zap.String("topic", c.topic))
		return err
	}
	c.logger.Info("Kafka 消费者已关闭", zap.String("topic", c.topic))
	return nil
}
