package startup

import (
	"fmt"

	"github.com/mindbridge/mindbridge-backend/internal/checkin"
	"github.com/mindbridge/mindbridge-backend/internal/platform/metadata"
	"github.com/mindbridge/mindbridge-backend/internal/screening"
	"github.com/mindbridge/mindbridge-backend/internal/user"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := checkin.PrimeDB(); err != nil {
		return err
	}
	if err := screening.PrimeDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// 仪表盘缓存是易失的，Redis重启后自然为空，无需重建；
// 需要恢复的只有认证中间件依赖的已知用户集合。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
