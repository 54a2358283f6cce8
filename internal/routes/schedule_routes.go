package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ScheduleRoutes(r *gin.Engine) {
	schedules := r.Group("/schedules")
	{
		schedules.GET("", controllers.ListSchedules)
		schedules.GET("/:id", controllers.GetSchedule)
		schedules.POST("", middleware.Authorize(middleware.OpScheduleWrite), controllers.CreateSchedule)
		schedules.PUT("/:id", middleware.Authorize(middleware.OpScheduleWrite), controllers.UpdateSchedule)
		schedules.PATCH("/:id", middleware.Authorize(middleware.OpScheduleWrite), controllers.UpdateSchedule)
		schedules.DELETE("/:id", middleware.Authorize(middleware.OpScheduleWrite), controllers.DeleteSchedule)
		schedules.PATCH("/:id/start", middleware.Authorize(middleware.OpScheduleWrite), controllers.StartSchedule)
		schedules.PATCH("/:id/complete", middleware.Authorize(middleware.OpScheduleWrite), controllers.CompleteSchedule)
	}
}
