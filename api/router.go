package api

import (
	"github.com/mindbridge/mindbridge-backend/internal/checkin"
	"github.com/mindbridge/mindbridge-backend/internal/report"
	"github.com/mindbridge/mindbridge-backend/internal/screening"
	"github.com/mindbridge/mindbridge-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证相关的路由组 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", user.RegisterUser)
			authRoutes.POST("/login", user.LoginUser)
			authRoutes.POST("/change-password", user.RequireAuthMiddleware(), user.ChangeUserPassword)
			authRoutes.GET("/me", user.RequireAuthMiddleware(), user.GetProfile)
		}

		// 每日签到相关的路由组 /api/checkin
		checkinRoutes := api.Group("/checkin", user.RequireAuthMiddleware())
		{
			checkinRoutes.POST("", checkin.SubmitTodayCheckIn)
			checkinRoutes.GET("", checkin.GetCheckIns)
			checkinRoutes.GET("/today", checkin.GetTodayStatus)
			checkinRoutes.GET("/latest", checkin.GetLatestCheckIn)
		}

		// 筛查相关的路由组 /api/screening
		screeningRoutes := api.Group("/screening", user.RequireAuthMiddleware())
		{
			screeningRoutes.GET("/latest", screening.GetLatestResult)
			screeningRoutes.GET("/eligibility", screening.GetEligibility)
			screeningRoutes.POST("/submit", screening.SubmitScreening)
		}

		// 统计相关的路由组 /api/stats
		statsRoutes := api.Group("/stats", user.RequireAuthMiddleware())
		{
			statsRoutes.GET("/dashboard", report.GetDashboard)
			statsRoutes.GET("/weekly", report.GetWeeklyTrend)
		}
	}
}
