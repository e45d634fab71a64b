package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

const (
	// CacheKey 是一个 Redis Hash 的键，用于缓存序列化后的仪表盘。
	// Field: 用户的UUID
	// Value: Dashboard 结构体的JSON序列化字符串
	CacheKey = "report:dashboard"
)

// screeningRecord 是一个内部结构体，用于从screening_results表中
// 仅查询警报判定所需的最小字段。
type screeningRecord struct {
	Score     int
	Level     string
	CreatedAt time.Time
}

// fetchAverages 用一条聚合查询计算某用户全部签到指标的平均值。
// 没有任何行时，数据库返回NULL，对应的指针保持为nil。
func fetchAverages(userID string) (Averages, error) {
	var avgs Averages
	err := database.DB.Table("daily_checkins").
		Select("AVG(mood) AS avg_mood, AVG(stress) AS avg_stress, AVG(energy) AS avg_energy, AVG(sleep) AS avg_sleep").
		Where("user_id = ?", userID).
		Scan(&avgs).Error
	if err != nil {
		return Averages{}, fmt.Errorf("无法计算签到平均值: %w", err)
	}
	return avgs, nil
}

// fetchLatestScreenings 按创建时间降序返回某用户最近的limit条筛查记录。
func fetchLatestScreenings(userID string, limit int) ([]screeningRecord, error) {
	var records []screeningRecord
	err := database.DB.Table("screening_results").
		Select("score, level, created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询筛查记录: %w", err)
	}
	return records, nil
}

// fetchRecentTrend 按日期降序返回某用户最近limit天的签到指标。
func fetchRecentTrend(userID string, limit int) ([]TrendPoint, error) {
	var points []TrendPoint
	err := database.DB.Table("daily_checkins").
		Select("date, mood, stress, energy, sleep").
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询周趋势: %w", err)
	}
	return points, nil
}

// --- Redis 仪表盘缓存 ---

// GetDashboardCache 从Redis缓存中获取某用户的仪表盘。
func GetDashboardCache(userID string) (*Dashboard, error) {
	result, err := database.RDB.HGet(database.Ctx, CacheKey, userID).Result()
	if err == redis.Nil {
		return nil, nil // 缓存未命中，是正常情况，不返回错误
	}
	if err != nil {
		return nil, err // 其他Redis错误
	}

	var dashboard Dashboard
	if err := json.Unmarshal([]byte(result), &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// SetDashboardCache 将仪表盘存入Redis缓存。
func SetDashboardCache(userID string, dashboard *Dashboard, expire time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}

	// 使用Pipeline来原子地设置值和过期时间
	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, CacheKey, userID, data)
	pipe.HExpire(database.Ctx, CacheKey, expire, userID)
	_, err = pipe.Exec(database.Ctx)
	return err
}

// InvalidateDashboardCache 在签到或筛查写入成功后删除该用户的缓存条目。
// 缓存不可用时静默跳过，下一次读取会直接走SQL。
func InvalidateDashboardCache(userID string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.HDel(database.Ctx, CacheKey, userID).Err(); err != nil {
		fmt.Printf("警告: 无法删除用户 %s 的仪表盘缓存: %v\n", userID, err)
	}
}
