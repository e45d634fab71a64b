package checkin

import (
	"fmt"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
)

// PrimeDB 负责初始化checkin模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&CheckIn{}); err != nil {
		return fmt.Errorf("无法迁移daily_checkins表: %w", err)
	}
	fmt.Println("CheckIn数据库表迁移成功。")
	return nil
}
