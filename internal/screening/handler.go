package screening

import (
	"errors"
	"net/http"
	"time"

	"github.com/mindbridge/mindbridge-backend/internal/report"
	"github.com/mindbridge/mindbridge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SubmitRequestBody 定义了提交筛查时请求体的JSON结构
type SubmitRequestBody struct {
	Answers []int `json:"answers"`
}

// LatestResultResponse 是最近一次筛查结果在API边界上的表示
type LatestResultResponse struct {
	Score     int       `json:"score"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

// GetLatestResult 返回当前用户最近一次的筛查结果（用于展示上次结果）
func GetLatestResult(c *gin.Context) {
	row, err := Latest(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch latest screening result"})
		return
	}
	if row == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, LatestResultResponse{
		Score:     row.Score,
		Level:     row.Level,
		CreatedAt: row.CreatedAt,
	})
}

// GetEligibility 返回当前用户的提交资格（用于仪表盘按钮）
func GetEligibility(c *gin.Context) {
	decision, err := Eligibility(user.CurrentUserID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check screening eligibility"})
		return
	}
	c.JSON(http.StatusOK, decision)
}

// SubmitScreening 处理筛查提交
func SubmitScreening(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Answers must be an array of 7 values"})
		return
	}

	userID := user.CurrentUserID(c)
	outcome, err := Submit(userID, body.Answers, time.Now())
	if err != nil {
		var ve *ValidationError
		var ne *NotEligibleError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message})
		case errors.As(err, &ne):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":        "You can take the screening test only once every 7 days.",
				"nextEligibleAt": ne.NextEligibleAt.Format(time.RFC3339),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save screening result"})
		}
		return
	}

	// 写入成功后让该用户的仪表盘缓存失效
	report.InvalidateDashboardCache(userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Screening submitted",
		"score":   outcome.Score,
		"level":   outcome.Level,
	})
}
