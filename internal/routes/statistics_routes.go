package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func StatisticsRoutes(r *gin.Engine) {
	stats := r.Group("/statistics")
	{
		stats.GET("", middleware.Authorize(middleware.OpStatsRead), controllers.GetStatistics)
	}
}
