package checkin

import (
	"errors"
	"net/http"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/report"
	"github.com/mindbridge/mindbridge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SubmitRequestBody 定义了提交签到时请求体的JSON结构。
// 四项指标使用指针以区分"未提供"和合法的0值。
type SubmitRequestBody struct {
	Mood   *int   `json:"mood"`
	Stress *int   `json:"stress"`
	Energy *int   `json:"energy"`
	Sleep  *int   `json:"sleep"`
	Note   string `json:"note"`
}

// CheckInResponse 是签到行在API边界上的表示
type CheckInResponse struct {
	Date      string `json:"date"`
	Mood      int    `json:"mood"`
	Stress    int    `json:"stress"`
	Energy    int    `json:"energy"`
	Sleep     int    `json:"sleep"`
	Note      string `json:"note,omitempty"`
	EditCount int    `json:"edit_count"`
}

func formatCheckIn(row *CheckIn) CheckInResponse {
	return CheckInResponse{
		Date:      row.Date,
		Mood:      row.Mood,
		Stress:    row.Stress,
		Energy:    row.Energy,
		Sleep:     row.Sleep,
		Note:      row.Note,
		EditCount: row.EditCount,
	}
}

// SubmitTodayCheckIn 处理当天签到的创建或唯一一次编辑
func SubmitTodayCheckIn(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	// 四项指标缺一不可，在触碰存储之前就拒绝
	if body.Mood == nil || body.Stress == nil || body.Energy == nil || body.Sleep == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	userID := user.CurrentUserID(c)
	result, err := SubmitCheckIn(userID, time.Now(), Metrics{
		Mood:   *body.Mood,
		Stress: *body.Stress,
		Energy: *body.Energy,
		Sleep:  *body.Sleep,
		Note:   body.Note,
	})
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
		case errors.Is(err, ErrEditLimitExceeded):
			c.JSON(http.StatusForbidden, gin.H{"message": "Today's check-in can only be edited once"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save check-in"})
		}
		return
	}

	// 写入成功后让该用户的仪表盘缓存失效
	report.InvalidateDashboardCache(userID)

	if result.Edited {
		c.JSON(http.StatusOK, gin.H{"message": "Check-in updated successfully", "edited": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-in saved successfully", "edited": false})
}

// GetCheckIns 按日期升序返回当前用户的全部签到（用于图表）
func GetCheckIns(c *gin.Context) {
	rows, err := List(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}

	resp := make([]CheckInResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, formatCheckIn(&rows[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetTodayStatus 检查当天签到是否存在（用于引导提示）
func GetTodayStatus(c *gin.Context) {
	exists, err := HasCheckInToday(user.CurrentUserID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// GetLatestCheckIn 返回最近一条签到（用于仪表盘卡片）
func GetLatestCheckIn(c *gin.Context) {
	row, err := Latest(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
		return
	}
	if row == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, formatCheckIn(row))
}
