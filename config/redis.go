package config

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Address  string `mapstructure:"address" json:"address" yaml:"address"`    // 地址，host:port
	Password string `mapstructure:"password" json:"password" yaml:"password"` // 密码，可为空
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`                   // 数据库编号
	PoolSize int    `mapstructure:"pool_size" json:"pool_size" yaml:"pool_size"` // 连接池大小
}
