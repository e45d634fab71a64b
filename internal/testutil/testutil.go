// Package testutil 提供测试专用的数据库初始化助手。
// 每个测试使用独立的内存SQLite库；Redis在测试中不可用，
// 读路径会自动降级到SQL。
package testutil

import (
	"fmt"
	"testing"

	"github.com/mindbridge/mindbridge-backend/internal/checkin"
	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/mindbridge/mindbridge-backend/internal/platform/metadata"
	"github.com/mindbridge/mindbridge-backend/internal/screening"
	"github.com/mindbridge/mindbridge-backend/internal/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB 为一个测试创建全新的内存数据库，完成迁移并替换全局database.DB。
// 测试结束时自动关闭连接。
func SetupDB(t *testing.T) {
	t.Helper()

	// 每个测试一个独立的共享缓存内存库，避免连接池拿到不同的空库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("无法打开内存数据库: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
		database.DB = prev
	})

	if err := db.AutoMigrate(&user.User{}); err != nil {
		t.Fatalf("无法迁移user表: %v", err)
	}
	if err := metadata.PrimeDB(); err != nil {
		t.Fatalf("无法初始化metadata模块: %v", err)
	}
	if err := checkin.PrimeDB(); err != nil {
		t.Fatalf("无法初始化checkin模块: %v", err)
	}
	if err := screening.PrimeDB(); err != nil {
		t.Fatalf("无法初始化screening模块: %v", err)
	}
}
