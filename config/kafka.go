package config

type KafkaConfig struct {
	Brokers         []string `mapstructure:"brokers" json:"brokers" yaml:"brokers"`
	Topics          Topics   `mapstructure:"topics" json:"topics" yaml:"topics"`
	ConsumerGroupID string   `mapstructure:"consumer_group_id" json:"consumer_group_id" yaml:"consumer_group_id"`
}

type Topics struct {
	PostSubmitted      string `mapstructure:"postSubmitted" yaml:"postSubmitted"`           // 帖子提交审核主题（本服务生产）
	PostPublished      string `mapstructure:"postPublished" yaml:"postPublished"`           // 帖子发布主题（本服务生产）
	PostRejected       string `mapstructure:"postRejected" yaml:"postRejected"`             // 帖子驳回主题（本服务生产）
	PostDeleted        string `mapstructure:"postDeleted" yaml:"postDeleted"`               // 帖子删除主题（本服务生产）
	ModerationApproved string `mapstructure:"moderationApproved" yaml:"moderationApproved"` // 机审通过主题（本服务消费）
	ModerationRejected string `mapstructure:"moderationRejected" yaml:"moderationRejected"` // 机审驳回主题（本服务消费）
}
