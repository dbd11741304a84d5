// Package events 定义本服务与外部系统（内容安全、搜索、统计）之间的 Kafka 事件契约。
// - 事件结构独立于数据库实体，字段一旦发布即不可随意变更。
package events

import "time"

// PostEventData 事件中携带的帖子核心数据快照。
type PostEventData struct {
	ID         uint64 `json:"id"`          // 帖子ID
	Title      string `json:"title"`       // 帖子标题
	Slug       string `json:"slug"`        // 帖子 slug
	Content    string `json:"content"`     // 帖子正文
	Excerpt    string `json:"excerpt"`     // 摘要
	AuthorID   string `json:"author_id"`   // 作者ID
	CategoryID uint64 `json:"category_id"` // 分类ID，0 表示未分类
	Status     int    `json:"status"`      // 事件发生后的帖子状态
}

// PostSubmittedEvent 帖子提交审核事件，内容安全服务消费后进行机器审核。
type PostSubmittedEvent struct {
	EventID   string        `json:"event_id"`  // 事件唯一ID（UUID）
	Timestamp time.Time     `json:"timestamp"` // 事件产生时间
	Post      PostEventData `json:"post"`      // 提交审核时的帖子快照
}

// PostPublishedEvent 帖子发布事件，搜索/推荐服务消费后更新索引。
type PostPublishedEvent struct {
	EventID    string        `json:"event_id"`
	Timestamp  time.Time     `json:"timestamp"`
	Post       PostEventData `json:"post"`
	ReviewerID string        `json:"reviewer_id"` // 裁定发布的审核人ID
}

// PostRejectedEvent 帖子驳回事件，通知服务消费后告知作者。
type PostRejectedEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	PostID     uint64    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	ReviewerID string    `json:"reviewer_id"` // 裁定驳回的审核人ID
	Reason     string    `json:"reason"`      // 驳回理由
}

// PostDeletedEvent 帖子删除事件，下游服务消费后清理索引与缓存。
type PostDeletedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    uint64    `json:"post_id"`
}

// ModerationApprovedEvent 内容安全服务回发的机审通过事件，本服务消费。
type ModerationApprovedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	PostID    uint64    `json:"post_id"`
	// ReviewerID 机审系统在平台内的审核账号ID，回写到帖子的审核人字段
	ReviewerID string `json:"reviewer_id"`
}

// ModerationRejectedEvent 内容安全服务回发的机审驳回事件，本服务消费。
type ModerationRejectedEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	PostID     uint64    `json:"post_id"`
	ReviewerID string    `json:"reviewer_id"`
	Reason     string    `json:"reason"` // 机审给出的驳回理由，直接回写为审核意见
}
