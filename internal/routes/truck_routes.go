package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TruckRoutes(r *gin.Engine) {
	trucks := r.Group("/trucks")
	{
		trucks.GET("", controllers.ListTrucks)
		trucks.GET("/:id", controllers.GetTruck)
		trucks.GET("/:id/route", controllers.GetTruckRoute)
		trucks.POST("", middleware.Authorize(middleware.OpTruckWrite), controllers.CreateTruck)
		trucks.PUT("/:id", middleware.Authorize(middleware.OpTruckWrite), controllers.UpdateTruck)
		trucks.PATCH("/:id", middleware.Authorize(middleware.OpTruckWrite), controllers.UpdateTruck)
		trucks.DELETE("/:id", middleware.Authorize(middleware.OpTruckWrite), controllers.DeleteTruck)
		trucks.GET("/:id/locations", middleware.Authorize(middleware.OpTruckTrack), controllers.ListTruckLocations)
		trucks.PATCH("/:id/update-location", middleware.Authorize(middleware.OpTruckField), controllers.UpdateTruckLocation)
		trucks.PATCH("/:id/update-status", middleware.Authorize(middleware.OpTruckField), controllers.UpdateTruckStatus)
		trucks.PATCH("/:id/estimated-time", middleware.Authorize(middleware.OpTruckField), controllers.UpdateTruckEstimatedTime)
	}
}
