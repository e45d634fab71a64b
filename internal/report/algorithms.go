package report

import (
	"strings"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/config"
)

// consultReason 是触发警报时返回的固定文案。
const consultReason = "High screening level has persisted across screenings at least 5 days apart."

// persistenceMinDays 是两次高风险筛查之间触发警报所需的最小日历日间隔。
const persistenceMinDays = 5

// isBadLevel 判断一个筛查等级是否属于高风险。
// 大小写不敏感；"severe"来自旧版问卷的分档，仍然视为高风险。
func isBadLevel(level string) bool {
	switch strings.ToLower(level) {
	case "high", "severe":
		return true
	}
	return false
}

// wholeDaysBetween 计算两个时刻之间的整日历日差。
// 两个时刻都先按服务时区截断到日历日，再在UTC下做差，
// 因此夏令时造成的23/25小时天不会干扰结果。
func wholeDaysBetween(later, earlier time.Time) int {
	loc := config.Location()
	ly, lm, ld := later.In(loc).Date()
	ey, em, ed := earlier.In(loc).Date()
	l := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(l.Sub(e) / (24 * time.Hour))
}

// evaluateConsultAlert 检查最近的（至多两条）筛查记录，判定是否需要建议就诊。
// records按创建时间降序排列。没有记录时返回nil；只有一条时返回一个
// shouldConsult=false的警报对象；两条都是高风险且间隔至少5个日历日时触发警报。
func evaluateConsultAlert(records []screeningRecord) *ConsultAlert {
	if len(records) == 0 {
		return nil
	}

	latest := records[0]
	alert := &ConsultAlert{
		ShouldConsult: false,
		Reason:        nil,
		AsOf:          latest.CreatedAt,
	}

	if len(records) < 2 {
		return alert
	}

	prev := records[1]
	if isBadLevel(latest.Level) && isBadLevel(prev.Level) &&
		wholeDaysBetween(latest.CreatedAt, prev.CreatedAt) >= persistenceMinDays {
		reason := consultReason
		alert.ShouldConsult = true
		alert.Reason = &reason
	}
	return alert
}
