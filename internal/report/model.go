package report

import "time"

// Averages 是某用户全部签到指标的算术平均值。
// 字段使用指针：没有任何签到时为null，绝不用0或NaN顶替"无数据"。
type Averages struct {
	AvgMood   *float64 `json:"avgMood"`
	AvgStress *float64 `json:"avgStress"`
	AvgEnergy *float64 `json:"avgEnergy"`
	AvgSleep  *float64 `json:"avgSleep"`
}

// ScreeningSummary 是仪表盘上展示的最近一次筛查结果。
type ScreeningSummary struct {
	Score     int       `json:"score"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// ConsultAlert 是持续性风险警报，按需计算，从不持久化。
type ConsultAlert struct {
	ShouldConsult bool      `json:"shouldConsult"`
	Reason        *string   `json:"reason"`
	AsOf          time.Time `json:"asOf"`
}

// Dashboard 是 /stats/dashboard 接口的完整负载。
type Dashboard struct {
	Averages
	Screening      *ScreeningSummary `json:"screening"`
	ScreeningAlert *ConsultAlert     `json:"screeningAlert"`
}

// TrendPoint 是周趋势中的一天。
type TrendPoint struct {
	Date   string `json:"date"`
	Mood   int    `json:"mood"`
	Stress int    `json:"stress"`
	Energy int    `json:"energy"`
	Sleep  int    `json:"sleep"`
}
