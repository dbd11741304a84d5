package dependencies

import (
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/entities"
)

const (
	mysqlConnectRetries  = 5
	mysqlConnectInterval = 2 * time.Second
)

// InitMySQL 建立 MySQL 连接：主库带重试，配置了从库时启用 dbresolver 读写分离，
// 随后设置连接池并执行自动迁移。
func InitMySQL(cfg *appConfig.BlogConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	mysqlCfg := cfg.MySQLConfig
	if mysqlCfg.Write.DSN == "" {
		return nil, fmt.Errorf("主数据库 DSN (mysqlConfig.write.dsn) 未配置")
	}

	gormConfig := &gorm.Config{
		Logger: core.NewGormLogger(logger, cfg.GormLogConfig),
	}

	db, err := openWithRetry(mysqlCfg.Write.DSN, gormConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("无法连接到主数据库: %w", err)
	}
	logger.Info("主数据库连接成功")

	// 读写分离：写走主库，读在从库间严格轮询
	replicas := make([]gorm.Dialector, 0, len(mysqlCfg.Read))
	for i, replica := range mysqlCfg.Read {
		if replica.DSN == "" {
			logger.Warn("从库 DSN 为空，已跳过", zap.Int("index", i))
			continue
		}
		replicas = append(replicas, mysql.Open(replica.DSN))
	}
	if len(replicas) > 0 {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Sources:  []gorm.Dialector{mysql.Open(mysqlCfg.Write.DSN)},
			Replicas: replicas,
			Policy:   dbresolver.StrictRoundRobinPolicy(),
		}))
		if err != nil {
			return nil, fmt.Errorf("配置读写分离失败: %w", err)
		}
		logger.Info("读写分离已启用", zap.Int("replicaCount", len(replicas)))
	} else {
		logger.Info("未配置从库，读写均走主库")
	}

	if err := applyPoolSettings(db, &mysqlCfg, logger); err != nil {
		return nil, err
	}

	logger.Info("开始执行数据库自动迁移...")
	err = db.AutoMigrate(
		&entities.Post{},
		&entities.User{},
		&entities.Category{},
		&entities.Tag{},
		&entities.PostTag{},
		&entities.Comment{},
		&entities.Folder{},
		&entities.Image{},
	)
	if err != nil {
		return nil, fmt.Errorf("数据库自动迁移失败: %w", err)
	}
	logger.Info("数据库自动迁移完成")

	return db, nil
}

// openWithRetry 尝试连接并 Ping 主库，失败时按固定间隔重试。
func openWithRetry(dsn string, gormConfig *gorm.Config, logger *core.ZapLogger) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= mysqlConnectRetries; attempt++ {
		db, err := gorm.Open(mysql.Open(dsn), gormConfig)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					return db, nil
				} else {
					err = pingErr
				}
			} else {
				err = dbErr
			}
		}
		lastErr = err
		logger.Warn("连接主数据库失败",
			zap.Int("attempt", attempt),
			zap.Int("maxRetries", mysqlConnectRetries),
			zap.Error(err),
		)
		if attempt < mysqlConnectRetries {
			time.Sleep(mysqlConnectInterval)
		}
	}
	return nil, lastErr
}

// applyPoolSettings 设置连接池参数：主库单独配置优先，缺省回落到共享值。
func applyPoolSettings(db *gorm.DB, mysqlCfg *appConfig.MySQLConfig, logger *core.ZapLogger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层数据库对象失败: %w", err)
	}

	maxIdle := mysqlCfg.SharedMaxIdleConns
	maxOpen := mysqlCfg.SharedMaxOpenConns
	maxLife := mysqlCfg.SharedConnMaxLifetime
	if mysqlCfg.Write.MaxIdleConns != nil {
		maxIdle = *mysqlCfg.Write.MaxIdleConns
	}
	if mysqlCfg.Write.MaxOpenConns != nil {
		maxOpen = *mysqlCfg.Write.MaxOpenConns
	}
	if mysqlCfg.Write.ConnMaxLifetime != nil {
		maxLife = *mysqlCfg.Write.ConnMaxLifetime
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLife) * time.Second)

	logger.Info("数据库连接池已配置",
		zap.Int("maxIdleConns", maxIdle),
		zap.Int("maxOpenConns", maxOpen),
		zap.Int("connMaxLifetimeSeconds", maxLife),
	)
	return nil
}
