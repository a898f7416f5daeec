package sqlstore

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按database.driver选择MySQL/PostgreSQL/SQLite
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 开启TranslateError，唯一索引/外键/CHECK冲突统一为gorm错误
// 5. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	dialector, err := newDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// SQLite只允许单写者；内存库每个连接都是独立的库，必须固定为一个连接
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 6. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本（如golang-migrate）
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// newDialector 根据驱动名创建GORM方言
func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.DSN()
	switch cfg.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		// gorm postgres驱动底层使用pgx/v5
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// AutoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. books必须先于reviews创建（reviews.book_id外键引用books.id）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&ReviewModel{},
	)
}
