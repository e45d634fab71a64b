package report

import (
	"fmt"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
)

const (
	// CacheTTL 是仪表盘缓存的有效期。写入路径会主动失效缓存，
	// TTL只是兜底，保证陈旧条目最终消失。
	CacheTTL = 1 * time.Minute

	// weeklyTrendDays 是周趋势返回的天数
	weeklyTrendDays = 7

	// alertLookback 是警报判定需要的最近筛查条数
	alertLookback = 2
)

// GenerateDashboard 是生成用户仪表盘的统一入口。
// Redis健康时优先读缓存；完整生成成功后异步写回缓存。
func GenerateDashboard(userID string) (*Dashboard, error) {
	useCache := database.IsRedisHealthy()

	if useCache {
		cached, err := GetDashboardCache(userID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	dashboard, complete, err := buildDashboard(userID)
	if err != nil {
		return nil, err
	}

	// 只缓存完整生成的仪表盘；降级负载（筛查查询失败）不值得缓存
	if useCache && complete {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Printf("严重错误: 缓存仪表盘的goroutine发生panic: %v\n", r)
				}
			}()
			_ = SetDashboardCache(userID, dashboard, CacheTTL)
		}()
	}

	return dashboard, nil
}

// buildDashboard 从SQL生成仪表盘。
// 平均值查询失败是致命的；筛查查询失败只会把screening/screeningAlert
// 降级为null，绝不拖垮整个仪表盘读取。
func buildDashboard(userID string) (*Dashboard, bool, error) {
	avgs, err := fetchAverages(userID)
	if err != nil {
		return nil, false, err
	}

	dashboard := &Dashboard{Averages: avgs}

	records, err := fetchLatestScreenings(userID, alertLookback)
	if err != nil {
		fmt.Printf("警告: 用户 %s 的筛查查询失败，仪表盘降级返回: %v\n", userID, err)
		return dashboard, false, nil
	}

	if len(records) > 0 {
		dashboard.Screening = &ScreeningSummary{
			Score:     records[0].Score,
			Level:     records[0].Level,
			CreatedAt: records[0].CreatedAt,
		}
	}
	dashboard.ScreeningAlert = evaluateConsultAlert(records)

	return dashboard, true, nil
}

// WeeklyTrend 返回某用户最近7天的签到指标，按日期降序。
func WeeklyTrend(userID string) ([]TrendPoint, error) {
	return fetchRecentTrend(userID, weeklyTrendDays)
}
