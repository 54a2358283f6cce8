package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ScheduleRouteRoutes(r *gin.Engine) {
	stops := r.Group("/schedule-routes")
	{
		stops.GET("", middleware.RequireAuth(), controllers.ListScheduleRoutes)
		stops.GET("/:id", middleware.RequireAuth(), controllers.GetScheduleRoute)
		stops.POST("", middleware.Authorize(middleware.OpStopWrite), controllers.CreateScheduleRoute)
		stops.PUT("/:id", middleware.Authorize(middleware.OpStopWrite), controllers.UpdateScheduleRoute)
		stops.PATCH("/:id", middleware.Authorize(middleware.OpStopWrite), controllers.UpdateScheduleRoute)
		stops.DELETE("/:id", middleware.Authorize(middleware.OpStopWrite), controllers.DeleteScheduleRoute)
		stops.PATCH("/:id/mark_completed", middleware.Authorize(middleware.OpStopComplete), controllers.MarkStopCompleted)
		stops.PATCH("/:id/mark_incomplete", middleware.Authorize(middleware.OpStopComplete), controllers.MarkStopIncomplete)
	}
}
