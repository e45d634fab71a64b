package checkin

import "time"

// DateLayout 是日历日字段的存储格式。
// 按服务配置的时区截断，与时间戳无关。
const DateLayout = "2006-01-02"

// CheckIn 定义了每日签到在数据库中的持久化模型。
// 每个(用户, 日历日)至多一行；行在编辑窗口关闭后不可变，核心逻辑绝不删除它。
type CheckIn struct {
	ID uint `gorm:"primarykey"`

	// UserID 是所属用户的UUID。
	// 与Date构成唯一索引，是"一天一条"规则的最终防线。
	UserID string `gorm:"uniqueIndex:idx_user_date;type:varchar(36);not null"`

	// Date 是签到对应的日历日（YYYY-MM-DD），不是时间戳。
	Date string `gorm:"uniqueIndex:idx_user_date;type:varchar(10);not null"`

	// 四项指标，取值范围0-10
	Mood   int
	Stress int
	Energy int
	Sleep  int

	// Note 是可选的自由文本备注
	Note string

	// EditCount 记录这条签到被编辑的次数，只会从0单调增加到1。
	EditCount int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 沿用线上库的表名。
func (CheckIn) TableName() string {
	return "daily_checkins"
}
