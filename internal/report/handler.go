package report

import (
	"net/http"

	"github.com/mindbridge/mindbridge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// GetDashboard 返回当前用户的仪表盘：指标平均值、最近一次筛查和持续性警报
func GetDashboard(c *gin.Context) {
	dashboard, err := GenerateDashboard(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetWeeklyTrend 返回当前用户最近7天的签到指标
func GetWeeklyTrend(c *gin.Context) {
	points, err := WeeklyTrend(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch weekly data"})
		return
	}
	c.JSON(http.StatusOK, points)
}
