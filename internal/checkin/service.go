package checkin

import (
	"errors"
	"fmt"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/config"
	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"gorm.io/gorm"
)

// 指标的合法取值范围
const (
	MetricMin = 0
	MetricMax = 10
)

// Metrics 是一次签到提交携带的指标集合。
type Metrics struct {
	Mood   int
	Stress int
	Energy int
	Sleep  int
	Note   string
}

// SubmitResult 描述一次签到提交的结果：新建还是编辑。
type SubmitResult struct {
	Created bool
	Edited  bool
}

// DateOf 将一个绝对时刻换算为服务时区下的日历日。
// "今天"只由服务器时钟决定，绝不信任客户端提交的日期。
func DateOf(now time.Time) string {
	return now.In(config.Location()).Format(DateLayout)
}

// validateMetrics 检查各项指标是否在合法范围内。
func validateMetrics(m Metrics) error {
	for _, v := range []struct {
		name  string
		value int
	}{
		{"mood", m.Mood},
		{"stress", m.Stress},
		{"energy", m.Energy},
		{"sleep", m.Sleep},
	} {
		if v.value < MetricMin || v.value > MetricMax {
			return &ValidationError{Message: fmt.Sprintf("%s 必须在 %d 到 %d 之间", v.name, MetricMin, MetricMax)}
		}
	}
	return nil
}

// SubmitCheckIn 处理一次签到提交。
// 当天没有签到时新建一条；已有且未编辑过时覆盖指标并记一次编辑；
// 已编辑过时返回ErrEditLimitExceeded且不发生任何写入。
func SubmitCheckIn(userID string, now time.Time, m Metrics) (SubmitResult, error) {
	if err := validateMetrics(m); err != nil {
		return SubmitResult{}, err
	}

	date := DateOf(now)

	// 读取-判定-写入必须按用户串行化
	LockRepository()
	defer UnlockRepository()

	var result SubmitResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := getForDate(tx, userID, date)
		if err != nil {
			return fmt.Errorf("无法查询当天签到: %w", err)
		}

		// 当天还没有签到，新建一条
		if existing == nil {
			row := CheckIn{
				UserID:    userID,
				Date:      date,
				Mood:      m.Mood,
				Stress:    m.Stress,
				Energy:    m.Energy,
				Sleep:     m.Sleep,
				Note:      m.Note,
				EditCount: 0,
			}
			if err := tx.Create(&row).Error; err != nil {
				// 唯一索引冲突说明另一条提交抢先落库，
				// 把它翻译成与正常检查一致的编辑上限信号，而不是笼统的失败
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrEditLimitExceeded
				}
				return fmt.Errorf("无法创建签到: %w", err)
			}
			result = SubmitResult{Created: true}
			return nil
		}

		// 已编辑过一次，拒绝并保持存储不变
		if existing.EditCount >= 1 {
			return ErrEditLimitExceeded
		}

		// 允许且仅允许一次编辑：覆盖全部指标并把edit_count置为1。
		// WHERE edit_count = 0 防止跨实例的并发二次编辑
		res := tx.Model(&CheckIn{}).
			Where("id = ? AND edit_count = 0", existing.ID).
			Updates(map[string]interface{}{
				"mood":       m.Mood,
				"stress":     m.Stress,
				"energy":     m.Energy,
				"sleep":      m.Sleep,
				"note":       m.Note,
				"edit_count": 1,
			})
		if res.Error != nil {
			return fmt.Errorf("无法更新签到: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEditLimitExceeded
		}
		result = SubmitResult{Edited: true}
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}
	return result, nil
}

// HasCheckInToday 检查某用户当天是否已有签到，纯查询，无副作用。
func HasCheckInToday(userID string, now time.Time) (bool, error) {
	row, err := getForDate(database.DB, userID, DateOf(now))
	if err != nil {
		return false, fmt.Errorf("无法查询当天签到: %w", err)
	}
	return row != nil, nil
}

// Latest 返回某用户按日期最近的一条签到，没有时返回nil。
func Latest(userID string) (*CheckIn, error) {
	row, err := latest(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("无法查询最近签到: %w", err)
	}
	return row, nil
}

// List 按日期升序返回某用户的全部签到，用于图表展示。
func List(userID string) ([]CheckIn, error) {
	rows, err := listAll(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("无法查询签到列表: %w", err)
	}
	return rows, nil
}
