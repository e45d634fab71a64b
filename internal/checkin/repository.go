package checkin

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

// repoMutex 是一个模块内部的、不导出的全局互斥锁。
// 签到的"读取-判定-写入"序列必须按用户串行化；单实例部署下用它兜底，
// 多实例部署下由(user_id, date)唯一索引兜底。
var repoMutex sync.Mutex

// LockRepository 封装了对模块全局锁的锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// getForDate 查询某用户在指定日历日的签到，不存在时返回(nil, nil)。
func getForDate(tx *gorm.DB, userID, date string) (*CheckIn, error) {
	var row CheckIn
	err := tx.Where("user_id = ? AND date = ?", userID, date).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// listAll 按日期升序返回某用户的全部签到。
func listAll(tx *gorm.DB, userID string) ([]CheckIn, error) {
	var rows []CheckIn
	if err := tx.Where("user_id = ?", userID).Order("date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// latest 返回某用户按日期最近的一条签到，不存在时返回(nil, nil)。
func latest(tx *gorm.DB, userID string) (*CheckIn, error) {
	var row CheckIn
	err := tx.Where("user_id = ?", userID).Order("date DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
