package screening

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// repoMutex 是一个模块内部的、不导出的全局互斥锁。
// 筛查提交的"读取-判定-写入"序列必须按用户串行化，
// 防止两条并发提交同时通过资格检查后都落库。
var repoMutex sync.Mutex

// LockRepository 封装了对模块全局锁的锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// latestResult 返回某用户按创建时间最近的一条筛查结果，不存在时返回(nil, nil)。
func latestResult(tx *gorm.DB, userID string) (*ScreeningResult, error) {
	var row ScreeningResult
	err := tx.Where("user_id = ?", userID).Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
