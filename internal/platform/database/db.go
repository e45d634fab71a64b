package database

import (
	"fmt"
	"log"
	"os"

	"github.com/mindbridge/mindbridge-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的GORM实例，供项目其他部分使用
var DB *gorm.DB

// InitDB 根据配置初始化数据库连接
func InitDB(cfg config.DatabaseConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{
		Logger:         newLogger,
		TranslateError: true, // 将驱动错误翻译为gorm.ErrDuplicatedKey等统一错误
	}

	// 根据配置选择驱动；本地部署用SQLite，托管部署用PostgreSQL
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.Postgres.DSN), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.Sqlite.Path), gormCfg)
	}

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}

// CloseDB 关闭底层的数据库连接，用于优雅停机的最终步骤。
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
