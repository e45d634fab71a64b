package screening

import (
	"fmt"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/mindbridge/mindbridge-backend/internal/platform/metadata"
)

// questionnaireVersion 是启动时从metadata表读出的当前问卷版本，
// 新的ScreeningResult行都会盖上它。
var questionnaireVersion string

// PrimeDB 负责初始化screening模块的数据库部分
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&ScreeningResult{}); err != nil {
		return fmt.Errorf("无法迁移screening_results表: %w", err)
	}

	version, err := metadata.GetQuestionnaireVersion(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取问卷版本: %w", err)
	}
	questionnaireVersion = version

	fmt.Println("ScreeningResult数据库表迁移成功。")
	return nil
}
