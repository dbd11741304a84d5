package config

// SourceConfig 描述单个数据库实例（主库或某个从库）的连接参数。
// - 连接池字段为指针：nil 表示沿用 MySQLConfig 里的共享默认值
type SourceConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	MaxIdleConns    *int `mapstructure:"max_idle_conns,omitempty" yaml:"max_idle_conns,omitempty"`
	MaxOpenConns    *int `mapstructure:"max_open_conns,omitempty" yaml:"max_open_conns,omitempty"`
	ConnMaxLifetime *int `mapstructure:"conn_max_lifetime,omitempty" yaml:"conn_max_lifetime,omitempty"` // 秒
}

// MySQLConfig 主从库配置。
// - Read 为空时不启用读写分离，所有请求都走 Write
// - 共享连接池参数作用于未单独指定的实例
type MySQLConfig struct {
	Write SourceConfig   `mapstructure:"write" yaml:"write"`
	Read  []SourceConfig `mapstructure:"read" yaml:"read"`

	SharedMaxIdleConns    int `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	SharedMaxOpenConns    int `mapstructure:"max_open_conn" yaml:"max_open_conn"`
	SharedConnMaxLifetime int `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"` // 秒
}
