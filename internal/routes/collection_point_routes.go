package routes

import (
	"dechets_ko/internal/controllers"
	"dechets_ko/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CollectionPointRoutes(r *gin.Engine) {
	points := r.Group("/collection-points")
	{
		points.GET("", controllers.ListCollectionPoints)
		points.GET("/:id", controllers.GetCollectionPoint)
		points.POST("", middleware.Authorize(middleware.OpPointWrite), controllers.CreateCollectionPoint)
		points.PUT("/:id", middleware.Authorize(middleware.OpPointWrite), controllers.UpdateCollectionPoint)
		points.PATCH("/:id", middleware.Authorize(middleware.OpPointWrite), controllers.UpdateCollectionPoint)
		points.DELETE("/:id", middleware.Authorize(middleware.OpPointWrite), controllers.DeleteCollectionPoint)
		points.PATCH("/:id/update-status", middleware.Authorize(middleware.OpPointStatus), controllers.UpdateCollectionPointStatus)
	}
}
