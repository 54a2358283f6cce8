package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(r *gin.Engine) {
	reports := r.Group("/reports")
	{
		reports.GET("", controllers.ListReports)
		reports.GET("/export", middleware.Authorize(middleware.OpReportExport), controllers.ExportReports)
		reports.GET("/:id", controllers.GetReport)
		reports.POST("", controllers.CreateReport)
		reports.PUT("/:id", middleware.Authorize(middleware.OpReportManage), controllers.UpdateReport)
		reports.PATCH("/:id", middleware.Authorize(middleware.OpReportManage), controllers.UpdateReport)
		reports.DELETE("/:id", middleware.Authorize(middleware.OpReportManage), controllers.DeleteReport)
		reports.PATCH("/:id/assign", middleware.Authorize(middleware.OpReportManage), controllers.AssignReport)
		reports.PATCH("/:id/resolve", middleware.Authorize(middleware.OpReportManage), controllers.ResolveReport)
	}
}
