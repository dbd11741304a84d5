package config

// COSConfig 腾讯云对象存储配置，用于图片库的文件上传
type COSConfig struct {
	SecretID   string `mapstructure:"secret_id" json:"secret_id" yaml:"secret_id"`       // API 密钥 SecretID
	SecretKey  string `mapstructure:"secret_key" json:"secret_key" yaml:"secret_key"`    // API 密钥 SecretKey
	BucketName string `mapstructure:"bucket_name" json:"bucket_name" yaml:"bucket_name"` // 存储桶名称（不含 AppID 后缀）
	AppID      string `mapstructure:"app_id" json:"app_id" yaml:"app_id"`                // 账号 AppID
	Region     string `mapstructure:"region" json:"region" yaml:"region"`                // 地域，如 ap-guangzhou
	BaseURL    string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`          // 访问域名，可选；为空时按桶与地域拼接
}
