package metadata

import (
	"fmt"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
)

// PrimeDB 负责初始化metadata模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}

	// 确保问卷版本键存在，供screening模块在启动时读取
	version, err := GetQuestionnaireVersion(database.DB)
	if err != nil {
		return fmt.Errorf("无法初始化问卷版本: %w", err)
	}

	fmt.Printf("Metadata数据库表迁移成功。当前问卷版本: %s\n", version)
	return nil
}
